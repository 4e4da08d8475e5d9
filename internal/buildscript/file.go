package buildscript

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Names tried by Find, in order.
var scriptNames = []string{"build.gradle.kts", "build.gradle"}

// Find returns the build script inside dir, if any.
func Find(dir string) (string, bool, error) {
	for _, name := range scriptNames {
		p := filepath.Join(dir, name)
		info, err := os.Stat(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return "", false, err
		}
		if info.Mode().IsRegular() {
			return p, true, nil
		}
	}
	return "", false, nil
}

// ReadFile parses the script at path.
func ReadFile(path string) (Script, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("read build script: %w", err)
	}
	return Parse(b), nil
}
