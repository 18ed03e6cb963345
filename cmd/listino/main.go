// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/walteh/listino/pkg/config"
	"github.com/walteh/listino/pkg/operation"
	"github.com/walteh/listino/pkg/status"
	"github.com/walteh/listino/pkg/transfer"
)

func main() {
	// .env is a convenience for local runs, absence is fine
	envLoadErr := godotenv.Load()

	setupLogging()
	ctx := log.Logger.WithContext(context.Background())
	if envLoadErr != nil {
		log.Logger.Debug().Err(envLoadErr).Msg(".env file not loaded")
	}

	rootCmd := &cobra.Command{
		Use:   "listino",
		Short: "Extract one price list from a remote CSV export",
		Long: `listino downloads a CSV price-list export from an FTP/FTPS server,
keeps only the rows belonging to one price list, and uploads the filtered
file back to the server. All configuration comes from the environment.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Logger.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	reporter := status.NewReporter(ctx)

	cfg, err := config.FromEnv(ctx)
	if err != nil {
		return err
	}

	client, err := transfer.Dial(ctx, transfer.DialConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		User:     cfg.User,
		Password: cfg.Password,
		Secure:   cfg.Secure,
	})
	if err != nil {
		return err
	}
	defer client.Close()

	exporter, err := operation.New(operation.Options{
		Config:   cfg,
		Client:   client,
		Reporter: reporter,
	})
	if err != nil {
		return err
	}

	_, err = exporter.Export(ctx)
	return err
}

// setupLogging configures zerolog from the LOG_LEVEL environment variable
func setupLogging() {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && parsed != zerolog.NoLevel {
		level = parsed
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log.Logger
}
