// SPDX-License-Identifier: MIT

package epg

import (
	"bufio"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
)

// ParseManifest reads a merge manifest: one relative path per line, in merge
// order. Blank lines and lines starting with '#' are ignored.
func ParseManifest(r io.Reader) ([]string, error) {
	var entries []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return entries, nil
}

// SourcePath resolves a manifest entry to the grabbed document inside dir. Only
// the entry's base name is used; grabbers write all outputs into one directory.
func SourcePath(dir, entry string) string {
	return filepath.Join(dir, path.Base(filepath.ToSlash(entry)))
}
