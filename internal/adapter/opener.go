package adapter

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"

	m "truthcheck.dev/pkg/truthcheck/internal/model"
)

// ReportOpener shows a generated report to the user.
type ReportOpener interface {
	Open(path m.Path) error
}

// BrowserOpener opens files with the platform's default handler.
type BrowserOpener struct {
	goos  string
	start func(name string, args ...string) error
}

// NewBrowserOpener constructs a BrowserOpener for the running platform.
func NewBrowserOpener() *BrowserOpener {
	return &BrowserOpener{
		goos: runtime.GOOS,
		start: func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		},
	}
}

// Open launches the default viewer for path without waiting for it.
func (o *BrowserOpener) Open(path m.Path) error {
	abs, err := filepath.Abs(string(path))
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	name, args := openCommand(o.goos, abs)
	if err := o.start(name, args...); err != nil {
		return fmt.Errorf("open %s: %w", abs, err)
	}

	return nil
}

func openCommand(goos, target string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}
