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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantDir  string
		wantName string
	}{
		{name: "nested", path: "/export/listini/LISTINI.csv", wantDir: "/export/listini", wantName: "LISTINI.csv"},
		{name: "root", path: "/LISTINI.csv", wantDir: "/", wantName: "LISTINI.csv"},
		{name: "bare_name", path: "LISTINI.csv", wantDir: "/", wantName: "LISTINI.csv"},
		{name: "relative_dir", path: "export/LISTINI.csv", wantDir: "export", wantName: "LISTINI.csv"},
		{name: "backslashes", path: `export\LISTINI.csv`, wantDir: "export", wantName: "LISTINI.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, name := SplitPath(tt.path)
			assert.Equal(t, tt.wantDir, dir, "directory should match")
			assert.Equal(t, tt.wantName, name, "file name should match")
		})
	}
}

func TestHasGlob(t *testing.T) {
	assert.False(t, HasGlob("LISTINI.csv"), "plain name has no glob")
	assert.True(t, HasGlob("LISTINI_*.csv"), "star is a glob")
	assert.True(t, HasGlob("LISTINI_?.csv"), "question mark is a glob")
	assert.True(t, HasGlob("LISTINI_[0-9].csv"), "character class is a glob")
}

func TestResolveGlob(t *testing.T) {
	names := []string{
		"LISTINI_20250101.csv",
		"LISTINI_20250301.csv",
		"LISTINI_20250201.csv",
		"other.txt",
	}

	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{name: "latest_match_wins", pattern: "LISTINI_*.csv", want: "LISTINI_20250301.csv"},
		{name: "exact_name", pattern: "other.txt", want: "other.txt"},
		{name: "no_match", pattern: "EXPORT_*.csv", want: ""},
		{name: "invalid_pattern", pattern: "LISTINI_[.csv", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveGlob(names, tt.pattern)
			assert.Equal(t, tt.want, got, "resolved name should match")
		})
	}
}

func TestTransferError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &TransferError{Op: OpFetch, Path: "/export/LISTINI.csv", Err: cause}

	assert.Contains(t, err.Error(), "fetch", "message should carry the operation")
	assert.Contains(t, err.Error(), "/export/LISTINI.csv", "message should carry the path")
	assert.Contains(t, err.Error(), "connection refused", "message should carry the cause")
	require.True(t, errors.Is(err, cause), "cause should unwrap")

	var transferErr *TransferError
	require.True(t, errors.As(error(err), &transferErr), "errors.As should find the type")
}
