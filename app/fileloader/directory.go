package fileloader

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/minio/highwayhash"

	"themecoder/app/interfaces"
)

// DirectoryInfo contains metadata about a discovered directory
type DirectoryInfo struct {
	RootPath   string   // Absolute path to directory
	Files      []string // Discovered file paths (absolute, sorted)
	TotalFiles int      // Total files found
	TotalSize  int64    // Total size in bytes
	Truncated  bool     // MaxFiles cut the listing short
}

// IsDirectory checks if the path is a directory
func IsDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// DiscoverFiles finds all regular files under dirPath matching pattern.
// Patterns use doublestar syntax, so "**/*.csv" recurses. Files are returned
// in lexical order; maxFiles > 0 caps the listing.
func DiscoverFiles(dirPath, pattern string, maxFiles int) (*DirectoryInfo, error) {
	if pattern == "" {
		return nil, ErrPatternRequired
	}

	absPath, err := filepath.Abs(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	matches, err := doublestar.FilepathGlob(filepath.Join(absPath, pattern))
	if err != nil {
		return nil, fmt.Errorf("pattern matching failed: %w", err)
	}
	sort.Strings(matches)

	info := &DirectoryInfo{RootPath: absPath}
	for _, match := range matches {
		st, err := os.Stat(match)
		if err != nil || st.IsDir() {
			continue
		}
		if maxFiles > 0 && len(info.Files) >= maxFiles {
			info.Truncated = true
			break
		}
		info.Files = append(info.Files, match)
		info.TotalSize += st.Size()
	}
	info.TotalFiles = len(info.Files)
	return info, nil
}

// loadDirectory loads every discovered file and merges them into one grid
// whose header is the union of the file headers in order of first appearance.
// The optional source column comes last so column 0 stays a data column.
func loadDirectory(dirPath string, opts FileOptions, progress interfaces.ProgressCallback) (*interfaces.Grid, error) {
	info, err := DiscoverFiles(dirPath, opts.FilePattern, opts.MaxFiles)
	if err != nil {
		return nil, err
	}
	if info.TotalFiles == 0 {
		return nil, fmt.Errorf("no files matching %q in %s", opts.FilePattern, dirPath)
	}

	var (
		header    []string
		headerIdx = make(map[string]int)
		rows      [][]string
		sources   []string
		warnings  []string
	)
	addColumn := func(name string) int {
		if idx, ok := headerIdx[name]; ok {
			return idx
		}
		headerIdx[name] = len(header)
		header = append(header, name)
		return len(header) - 1
	}

	sum, err := highwayhash.New(FingerprintKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create hash: %w", err)
	}

	for i, file := range info.Files {
		rel, err := filepath.Rel(info.RootPath, file)
		if err != nil {
			rel = filepath.Base(file)
		}
		rel = filepath.ToSlash(rel)
		if progress != nil {
			progress("loading", int64(i), int64(info.TotalFiles), rel)
		}

		loaded, err := loadFile(file, opts)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", rel, err))
			continue
		}
		if loaded.warning != "" {
			warnings = append(warnings, fmt.Sprintf("%s: %s", rel, loaded.warning))
		}
		sum.Write([]byte(loaded.fingerprint))
		sum.Write([]byte(rel))

		mapping := make([]int, len(loaded.header))
		for c, name := range loaded.header {
			mapping[c] = addColumn(name)
		}
		for _, rec := range loaded.rows {
			out := make([]string, len(header))
			for c, v := range rec {
				if c < len(mapping) {
					out[mapping[c]] = v
				}
			}
			rows = append(rows, out)
			sources = append(sources, rel)
		}
	}

	if progress != nil {
		progress("loading", int64(info.TotalFiles), int64(info.TotalFiles), "done")
	}
	if info.Truncated {
		warnings = append(warnings, fmt.Sprintf("only the first %d matching files were loaded", opts.MaxFiles))
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("no readable files matching %q in %s", opts.FilePattern, dirPath)
	}

	width := len(header)
	if opts.IncludeSourceColumn {
		header = append(header, SourceColumnName)
	}
	rows = padRows(rows, len(header))
	if opts.IncludeSourceColumn {
		for r := range rows {
			rows[r][width] = sources[r]
		}
	}

	return &interfaces.Grid{
		Source:      info.RootPath,
		Fingerprint: hex.EncodeToString(sum.Sum(nil)),
		Header:      header,
		Rows:        rows,
		Warning:     joinWarnings(warnings),
	}, nil
}
