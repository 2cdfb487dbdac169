package utils

import (
	"fmt"
	"io"
	"os"

	"github.com/siyuan-infoblox/php-use-group/pkg/errors"
)

// StdinPath is the path argument meaning standard input
const StdinPath = "-"

// IsStdin checks if a path argument refers to standard input
func IsStdin(path string) bool {
	return path == "" || path == StdinPath
}

// ReadInput reads the whole content of path, or of stdin when path is empty or "-"
func ReadInput(path string, stdin io.Reader) ([]byte, error) {
	if IsStdin(path) {
		return io.ReadAll(stdin)
	}

	isDir, err := IsDirectory(path)
	if err != nil {
		return nil, err
	}
	if isDir {
		return nil, fmt.Errorf("%s: %s", errors.ErrMsgPathIsDirectory, path)
	}
	return os.ReadFile(path)
}

// WriteFile replaces the content of an existing file, keeping its permissions
func WriteFile(path string, content []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, content, info.Mode().Perm())
}

// IsDirectory checks if the given path is a directory
func IsDirectory(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
