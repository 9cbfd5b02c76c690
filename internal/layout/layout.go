// Package layout resolves the fixed directory convention of a generator project.
package layout

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Directory and file names of the project convention. They are not configurable.
const (
	SourceDirName  = "src"
	IncludeDirName = "include"
	OutputDirName  = "bin"
	SourceFileName = "generator.cpp"
)

// Layout holds the absolute paths of a project. It is derived once per run
// and never modified afterwards.
type Layout struct {
	// Root is the directory that contains the build descriptor.
	Root string

	SourceDir  string
	IncludeDir string
	OutputDir  string
}

// Resolve derives a Layout from root. An empty root means the current
// working directory.
func Resolve(root string) (*Layout, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("invalid project root %q: %w", root, err)
	}
	return &Layout{
		Root:       abs,
		SourceDir:  filepath.Join(abs, SourceDirName),
		IncludeDir: filepath.Join(abs, IncludeDirName),
		OutputDir:  filepath.Join(abs, OutputDirName),
	}, nil
}

// SourceFile returns the path of the single translation unit.
func (l *Layout) SourceFile() string {
	return filepath.Join(l.SourceDir, SourceFileName)
}

// OutputPath returns the path of the executable named name inside OutputDir.
func (l *Layout) OutputPath(name string) string {
	return filepath.Join(l.OutputDir, name)
}

// EnsureOutputDir creates OutputDir if it does not exist yet. An existing
// directory is not an error; anything else (missing root, permissions, a
// regular file in the way) is returned.
func (l *Layout) EnsureOutputDir() error {
	err := os.Mkdir(l.OutputDir, 0755)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrExist) {
		info, statErr := os.Stat(l.OutputDir)
		if statErr != nil {
			return fmt.Errorf("failed to stat output dir: %w", statErr)
		}
		if info.IsDir() {
			return nil
		}
		return fmt.Errorf("output path %s exists and is not a directory", l.OutputDir)
	}
	return fmt.Errorf("failed to create output dir: %w", err)
}
