// Package browser opens the preview URL in a desktop browser.
package browser

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"

	"github.com/fredcamaral/slidecast/internal/domain/ports"
)

// ErrNoBrowser is returned when no candidate command is installed
var ErrNoBrowser = errors.New("no supported browsers found on this system")

// Launcher implements ports.BrowserLauncher
type Launcher struct {
	browsers []Browser
	logger   *slog.Logger
}

// Browser is one way of opening a URL
type Browser struct {
	Name    string
	Command string
	Args    func(url string) []string
}

// NewLauncher creates a launcher. A non-empty preferred command is tried
// before the platform defaults.
func NewLauncher(preferred string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}

	browsers := detectBrowsers(runtime.GOOS)
	if preferred != "" {
		browsers = append([]Browser{{
			Name:    preferred,
			Command: preferred,
			Args:    func(url string) []string { return []string{url} },
		}}, browsers...)
	}

	return &Launcher{
		browsers: browsers,
		logger:   logger.With("service", "browser_launcher"),
	}
}

// Launch opens url without waiting for the browser to exit
func (l *Launcher) Launch(url string) error {
	browser, err := l.selectBrowser()
	if err != nil {
		return fmt.Errorf("browser selection: %w", err)
	}

	cmd := exec.Command(browser.Command, browser.Args(url)...) // #nosec G204 - command comes from the candidate list
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	l.logger.Debug("Browser launched",
		slog.String("browser", browser.Name),
		slog.String("url", url),
	)

	go func() {
		_ = cmd.Wait()
	}()

	return nil
}

// Detect returns the name of the browser Launch would use
func (l *Launcher) Detect() (string, error) {
	browser, err := l.selectBrowser()
	if err != nil {
		return "", err
	}
	return browser.Name, nil
}

// selectBrowser returns the first candidate whose command is on PATH
func (l *Launcher) selectBrowser() (*Browser, error) {
	for _, candidate := range l.browsers {
		if _, err := exec.LookPath(candidate.Command); err == nil {
			return &candidate, nil
		}
	}
	return nil, ErrNoBrowser
}

func urlOnly(url string) []string { return []string{url} }

// detectBrowsers lists the platform's candidates in order of preference
func detectBrowsers(goos string) []Browser {
	switch goos {
	case "darwin":
		return []Browser{
			{Name: "Default", Command: "open", Args: urlOnly},
		}
	case "linux", "freebsd", "openbsd":
		return []Browser{
			{Name: "xdg-open", Command: "xdg-open", Args: urlOnly},
			{Name: "Chrome", Command: "google-chrome", Args: urlOnly},
			{Name: "Chromium", Command: "chromium", Args: urlOnly},
			{Name: "Firefox", Command: "firefox", Args: urlOnly},
		}
	case "windows":
		return []Browser{
			{
				Name:    "Default",
				Command: "rundll32",
				Args: func(url string) []string {
					return []string{"url.dll,FileProtocolHandler", url}
				},
			},
		}
	default:
		return nil
	}
}

var _ ports.BrowserLauncher = (*Launcher)(nil)
