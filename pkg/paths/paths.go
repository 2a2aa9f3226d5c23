package paths

import (
	"os"
	"path/filepath"
)

// GetDataDir returns the directory holding the splitter's debug log.
//
// If the home directory cannot be determined, it falls back to a directory
// under the system temporary directory.
func GetDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Clean(filepath.Join(os.TempDir(), ".light-splitter"))
	}
	return filepath.Clean(filepath.Join(homeDir, ".light-splitter"))
}

// DefaultLogFile is where --debug writes when --log-file is not given.
func DefaultLogFile() string {
	return filepath.Join(GetDataDir(), "splitter.debug.log")
}
