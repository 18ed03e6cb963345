package status

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 Reporter gives user-friendly feedback about the run on the console,
// next to (not instead of) the structured zerolog output.
type Reporter struct {
	log zerolog.Logger
}

// 🎯 NewReporter creates a reporter bound to the context logger
func NewReporter(ctx context.Context) *Reporter {
	return &Reporter{log: *zerolog.Ctx(ctx)}
}

// 📝 Stage announces that a pipeline stage is starting
func (r *Reporter) Stage(name, detail string) {
	msg := name
	if detail != "" {
		msg = fmt.Sprintf("%s (%s)", name, detail)
	}
	pterm.Info.WithPrefix(pterm.Prefix{Text: "⏳"}).Println(msg)
	r.log.Debug().Str("stage", name).Str("detail", detail).Msg("stage started")
}

// ✅ StageDone announces that a pipeline stage finished
func (r *Reporter) StageDone(name, detail string) {
	msg := name
	if detail != "" {
		msg = fmt.Sprintf("%s (%s)", name, detail)
	}
	pterm.Success.WithPrefix(pterm.Prefix{Text: "✨"}).Println(msg)
	r.log.Debug().Str("stage", name).Str("detail", detail).Msg("stage finished")
}

// ❌ Fail announces a failed stage
func (r *Reporter) Fail(name string, err error) {
	pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Printfln("%s: %v", name, err)
	r.log.Error().Err(err).Str("stage", name).Msg("stage failed")
}

// 🎉 Summary prints the final one-line result of the run
func (r *Reporter) Summary(remotePath string, kept, total int, elapsed time.Duration) {
	line := fmt.Sprintf("uploaded %s: kept %d of %d rows in %s",
		remotePath, kept, total, elapsed.Round(time.Millisecond))
	color.New(color.FgGreen, color.Bold).Println(line)
	r.log.Info().
		Str("remote_path", remotePath).
		Int("rows_kept", kept).
		Int("rows_total", total).
		Dur("elapsed", elapsed).
		Msg("run complete")
}
