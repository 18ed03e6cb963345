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

package transfer

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DialTimeout bounds the control connection dial and its reads/writes.
const DialTimeout = 60 * time.Second

// DialConfig holds what is needed to reach the remote endpoint.
type DialConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Secure   bool
}

type ftpClient struct {
	conn *ftp.ServerConn
}

// swappable in tests
var dialFTP = dial

// Dial connects and authenticates, preferring explicit FTPS when secure is
// requested and falling back to plain FTP if the secure attempt fails.
func Dial(ctx context.Context, cfg DialConfig) (Client, error) {
	logger := zerolog.Ctx(ctx)
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	if cfg.Secure {
		conn, err := dialFTP(ctx, addr, cfg, true)
		if err == nil {
			logger.Info().Str("host", cfg.Host).Msg("connected via FTPS")
			return &ftpClient{conn: conn}, nil
		}
		logger.Warn().Err(err).Msg("FTPS failed, falling back to plain FTP")
	}

	conn, err := dialFTP(ctx, addr, cfg, false)
	if err != nil {
		return nil, &TransferError{Op: OpConnect, Path: addr, Err: errors.Errorf("connecting: %w", err)}
	}
	logger.Info().Str("host", cfg.Host).Msg("connected via FTP")
	return &ftpClient{conn: conn}, nil
}

func dial(ctx context.Context, addr string, cfg DialConfig, secure bool) (*ftp.ServerConn, error) {
	opts := []ftp.DialOption{
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(DialTimeout),
	}
	if secure {
		opts = append(opts, ftp.DialWithExplicitTLS(&tls.Config{ServerName: cfg.Host}))
	}

	conn, err := ftp.Dial(addr, opts...)
	if err != nil {
		return nil, errors.Errorf("dialing %s: %w", addr, err)
	}
	if err := conn.Login(cfg.User, cfg.Password); err != nil {
		_ = conn.Quit()
		return nil, errors.Errorf("logging in as %s: %w", cfg.User, err)
	}
	return conn, nil
}

// Fetch downloads one remote file into memory. When the file name part of
// the path contains glob metacharacters the directory is listed and the
// lexically greatest match is taken.
func (c *ftpClient) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &TransferError{Op: OpFetch, Path: path, Err: err}
	}

	dir, name := SplitPath(path)
	if err := c.changeDir(dir); err != nil {
		return nil, &TransferError{Op: OpFetch, Path: path, Err: err}
	}

	if HasGlob(name) {
		entries, err := c.conn.NameList("")
		if err != nil {
			return nil, &TransferError{Op: OpFetch, Path: path, Err: errors.Errorf("listing %s: %w", dir, err)}
		}
		resolved := ResolveGlob(entries, name)
		if resolved == "" {
			return nil, &TransferError{Op: OpFetch, Path: path, Err: errors.New("no remote file matches pattern")}
		}
		zerolog.Ctx(ctx).Debug().Str("pattern", name).Str("resolved", resolved).Msg("resolved input pattern")
		name = resolved
	}

	resp, err := c.conn.Retr(name)
	if err != nil {
		return nil, &TransferError{Op: OpFetch, Path: path, Err: errors.Errorf("retrieving %s: %w", name, err)}
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, &TransferError{Op: OpFetch, Path: path, Err: errors.Errorf("reading %s: %w", name, err)}
	}
	return data, nil
}

// Store uploads data into dir under the given name, overwriting any
// existing file. Missing directory segments are created on the way.
func (c *ftpClient) Store(ctx context.Context, dir, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return &TransferError{Op: OpPublish, Path: dir + "/" + name, Err: err}
	}

	if err := c.ensureDir(dir); err != nil {
		return &TransferError{Op: OpPublish, Path: dir, Err: err}
	}
	if err := c.conn.Stor(name, bytes.NewReader(data)); err != nil {
		return &TransferError{Op: OpPublish, Path: dir + "/" + name, Err: errors.Errorf("storing %s: %w", name, err)}
	}
	return nil
}

// Close quits the control connection. Quit errors are not interesting once
// the transfers are done.
func (c *ftpClient) Close() error {
	_ = c.conn.Quit()
	return nil
}

func (c *ftpClient) changeDir(dir string) error {
	if err := c.conn.ChangeDir(cleanDir(dir)); err != nil {
		return errors.Errorf("changing to %s: %w", dir, err)
	}
	return nil
}

// ensureDir walks into dir one segment at a time, creating segments that do
// not exist yet. MakeDir failures are tolerated as long as the following
// ChangeDir succeeds (another client may have raced us, or the server may
// report an existing directory as an error).
func (c *ftpClient) ensureDir(dir string) error {
	if err := c.conn.ChangeDir("/"); err != nil {
		return errors.Errorf("changing to /: %w", err)
	}
	for _, seg := range strings.Split(strings.Trim(cleanDir(dir), "/"), "/") {
		if seg == "" {
			continue
		}
		if err := c.conn.ChangeDir(seg); err != nil {
			_ = c.conn.MakeDir(seg)
			if err := c.conn.ChangeDir(seg); err != nil {
				return errors.Errorf("creating %s: %w", seg, err)
			}
		}
	}
	return nil
}

func cleanDir(dir string) string {
	dir = strings.ReplaceAll(dir, `\`, "/")
	if dir == "" {
		return "/"
	}
	return dir
}
