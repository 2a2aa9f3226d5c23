package browser

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// OpenDir reveals path in the desktop file browser. When path is a file its
// containing directory is opened. The launcher is started and not waited for.
func OpenDir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		path = filepath.Dir(path)
	}

	name, args, err := revealCommand(runtime.GOOS, path)
	if err != nil {
		return err
	}

	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open file browser: %w", err)
	}

	return cmd.Process.Release()
}

func revealCommand(goos, dir string) (string, []string, error) {
	switch goos {
	case "windows":
		return "explorer", []string{dir}, nil
	case "darwin":
		return "open", []string{dir}, nil
	case "linux", "freebsd", "netbsd", "openbsd":
		return "xdg-open", []string{dir}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}
