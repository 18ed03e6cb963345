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

// Package transfer is the FTP/FTPS client used to fetch the source export
// and publish the filtered result. The tool is a protocol client only.
package transfer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Op identifies which half of the transfer an error belongs to.
type Op string

const (
	OpConnect Op = "connect"
	OpFetch   Op = "fetch"
	OpPublish Op = "publish"
)

// TransferError is any connection, authentication, read, or write failure
// against the remote endpoint.
type TransferError struct {
	Op   Op
	Path string
	Err  error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

// Client is the remote endpoint seen by the pipeline. Fetch reads one file
// into memory, Store writes one file into a directory, overwriting any
// existing file of the same name. Neither call ever deletes or mutates the
// source file.
type Client interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
	Store(ctx context.Context, dir, name string, data []byte) error
	Close() error
}

// SplitPath splits a remote path into its directory and file name,
// normalizing backslashes. An undirected name maps to the root directory.
func SplitPath(path string) (dir, name string) {
	path = strings.ReplaceAll(path, `\`, "/")
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return "/", path
	}
	dir = path[:idx]
	if dir == "" {
		dir = "/"
	}
	return dir, path[idx+1:]
}

// HasGlob reports whether a file name contains glob metacharacters.
func HasGlob(name string) bool {
	return strings.ContainsAny(name, "*?[")
}

// ResolveGlob picks the file an input pattern refers to from a directory
// listing: the lexically greatest matching name, which for timestamped
// exports is the most recent one. Returns "" when nothing matches.
func ResolveGlob(names []string, pattern string) string {
	matches := make([]string, 0, len(names))
	for _, name := range names {
		ok, err := doublestar.Match(pattern, name)
		if err != nil {
			// invalid pattern matches nothing
			return ""
		}
		if ok {
			matches = append(matches, name)
		}
	}
	if len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)
	return matches[len(matches)-1]
}
