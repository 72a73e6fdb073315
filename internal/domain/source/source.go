// Package source locates the acquired media file after a download
// completes. The downloader cannot always predict the final container
// extension, so it writes to a fixed stem and the pipeline disambiguates
// afterwards.
package source

import (
	"errors"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Stem is the reserved basename the downloader writes the source file to.
const Stem = "source"

// ErrNoSource reports that acquisition left no usable file behind.
var ErrNoSource = errors.New("no downloaded source file found (expected source.<ext>)")

// Extensions the downloader uses for incomplete transfers: partial data,
// temp files, and resume control files.
var incompleteExts = map[string]bool{
	".part": true,
	".tmp":  true,
	".ytdl": true,
}

// Pick returns the filename of the downloaded source inside fsys: the
// largest file named stem.<ext> whose extension is not an
// incomplete-transfer marker. Largest-by-size is a heuristic: the fully
// merged artifact outweighs leftover partial siblings from earlier runs.
// Ties go to the lexicographically first name.
func Pick(fsys fs.FS, stem string) (string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return "", err
	}

	names := make([]string, 0, len(entries))
	sizes := make(map[string]int64, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, stem+".") {
			continue
		}
		if incompleteExts[strings.ToLower(path.Ext(name))] {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return "", err
		}
		names = append(names, name)
		sizes[name] = info.Size()
	}
	if len(names) == 0 {
		return "", ErrNoSource
	}

	sort.Strings(names)
	best := names[0]
	for _, name := range names[1:] {
		if sizes[name] > sizes[best] {
			best = name
		}
	}
	return best, nil
}
