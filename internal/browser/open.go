// Package browser opens external destinations in the user's default browser.
package browser

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNoURL is returned when asked to open an empty destination.
var ErrNoURL = errors.New("browser: no destination URL")

// Opener hands a URL to something outside the process.
type Opener interface {
	Open(url string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(url string) error

func (f OpenerFunc) Open(url string) error { return f(url) }

// System opens URLs with the platform's default handler.
type System struct{}

func (System) Open(url string) error { return Open(url) }

// Open opens the specified URL in the user's default browser.
func Open(url string) error {
	cmd, err := command(runtime.GOOS, url)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launching %s: %w", cmd.Path, err)
	}
	// Reap the launcher; its exit status says nothing about the page.
	go cmd.Wait() //nolint:errcheck
	return nil
}

func command(goos, url string) (*exec.Cmd, error) {
	if strings.TrimSpace(url) == "" {
		return nil, ErrNoURL
	}
	switch goos {
	case "darwin":
		return exec.Command("open", url), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", url), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url), nil
	default:
		return nil, fmt.Errorf("unsupported OS: %s", goos)
	}
}
