// Package reporting writes run output: the stdout summary, the combined
// results file, and per-address payload files.
package reporting

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// PathKind classifies an --out path.
type PathKind int

const (
	// PathFile means the whole RunResults mapping is written to the path.
	PathFile PathKind = iota
	// PathDirectory means one <address>.json payload file per successful
	// fetch is written inside the path.
	PathDirectory
)

// StatFunc abstracts filesystem existence checks so classification stays a
// pure function in tests.
type StatFunc func(string) (fs.FileInfo, error)

// Classify decides whether an output path is a directory or a file target.
// A path is a directory if it already exists as one, ends with a path
// separator, or carries no file extension.
func Classify(path string, stat StatFunc) PathKind {
	if stat == nil {
		stat = os.Stat
	}
	if info, err := stat(path); err == nil && info.IsDir() {
		return PathDirectory
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, `\`) {
		return PathDirectory
	}
	if filepath.Ext(path) == "" {
		return PathDirectory
	}
	return PathFile
}
