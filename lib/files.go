package lib

import (
	"os"
	"path/filepath"
	"strings"
)

// FileExists reports if anything exists at filename
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// DirExists reports if path exists and is a directory
func DirExists(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && stat.IsDir()
}

// WorkDir returns dir as absolute path, or the process working directory if dir is empty
func WorkDir(dir string) (string, error) {
	if dir == "" {
		return os.Getwd()
	}
	return filepath.Abs(dir)
}

// ResolvePath splits slashPath on "/" and joins the segments onto base
func ResolvePath(base, slashPath string) string {
	return filepath.Join(append([]string{base}, strings.Split(slashPath, "/")...)...)
}
