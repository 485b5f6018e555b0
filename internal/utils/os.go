package utils

import (
	"os"
	"path/filepath"
)

// ExecutableName returns the base name of the running binary, used in help
// text and error hints
func ExecutableName() string {
	executable, err := os.Executable()
	if err != nil {
		return "duo-pad"
	}
	return filepath.Base(executable)
}
