package server

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// snapshot walks paths and returns a coarse fingerprint of their mtimes and
// sizes. Missing paths and the skipped file are left out.
func snapshot(paths []string, skip string) string {
	skip = filepath.Clean(skip)
	var b strings.Builder
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			if filepath.Clean(p) != skip {
				fmt.Fprintf(&b, "%s|%d|%d\n", p, info.ModTime().UnixNano(), info.Size())
			}
			continue
		}
		filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || filepath.Clean(path) == skip {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			fmt.Fprintf(&b, "%s|%d|%d\n", path, info.ModTime().UnixNano(), info.Size())
			return nil
		})
	}
	return b.String()
}
