package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/fredcamaral/slidecast/internal/domain/entities"
	"github.com/fredcamaral/slidecast/internal/domain/ports"
)

// ChromeConfig configures the headless browser backend
type ChromeConfig struct {
	ExecutablePath string
	TempDir        string
	Timeout        time.Duration
}

// ChromeScreenshotter captures slides with headless Chrome or Chromium
type ChromeScreenshotter struct {
	executablePath  string
	tempDir         string
	timeout         time.Duration
	activeProcesses map[string]*exec.Cmd
	processMutex    sync.RWMutex
	logger          *slog.Logger
}

// NewChromeScreenshotter locates the browser. A missing browser is
// reported as ports.ErrBrowserNotFound.
func NewChromeScreenshotter(cfg ChromeConfig, logger *slog.Logger) (*ChromeScreenshotter, error) {
	if logger == nil {
		logger = slog.Default()
	}

	execPath := cfg.ExecutablePath
	if execPath == "" {
		var err error
		execPath, err = FindChrome()
		if err != nil {
			return nil, err
		}
	} else if !isExecutableFile(execPath) {
		return nil, fmt.Errorf("%w: %s is not an executable file", ports.ErrBrowserNotFound, execPath)
	}

	tempDir := cfg.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &ChromeScreenshotter{
		executablePath:  execPath,
		tempDir:         tempDir,
		timeout:         timeout,
		activeProcesses: make(map[string]*exec.Cmd),
		logger:          logger.With("service", "chrome_capture"),
	}, nil
}

// Name identifies the backend
func (c *ChromeScreenshotter) Name() string {
	return "chrome"
}

// Screenshot loads the deck with ?capture#N so the slide shows without a
// transition, and returns the decoded screenshot.
func (c *ChromeScreenshotter) Screenshot(ctx context.Context, markupPath string, slide entities.SlideTiming, width, height int) (image.Image, error) {
	target, err := SlideURL(markupPath, slide.Index)
	if err != nil {
		return nil, err
	}

	shot, err := os.CreateTemp(c.tempDir, "slidecast-shot-*.png")
	if err != nil {
		return nil, fmt.Errorf("creating screenshot file: %w", err)
	}
	shotPath := shot.Name()
	_ = shot.Close()
	defer func() { _ = os.Remove(shotPath) }()

	args := []string{
		"--headless",
		"--disable-gpu",
		"--hide-scrollbars",
		"--disable-background-timer-throttling",
		"--disable-backgrounding-occluded-windows",
		"--disable-renderer-backgrounding",
		"--no-sandbox",
		"--disable-dev-shm-usage",
		"--allow-file-access-from-files",
		"--virtual-time-budget=2000",
		"--run-all-compositor-stages-before-draw",
		"--screenshot=" + shotPath,
		"--window-size=" + strconv.Itoa(width) + "," + strconv.Itoa(height),
		target,
	}

	cmdCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// #nosec G204 - executable resolved at construction, arguments are fixed
	cmd := exec.CommandContext(cmdCtx, c.executablePath, args...)
	cmd.Dir = c.tempDir

	processID := fmt.Sprintf("shot-%d-%d", slide.Index, time.Now().UnixNano())
	c.processMutex.Lock()
	c.activeProcesses[processID] = cmd
	c.processMutex.Unlock()

	defer func() {
		c.processMutex.Lock()
		delete(c.activeProcesses, processID)
		c.processMutex.Unlock()
	}()

	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctxErr := cmdCtx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("browser screenshot: %w", ctxErr)
		}
		return nil, fmt.Errorf("browser screenshot failed: %w (output: %s)", err, string(output))
	}

	f, err := os.Open(shotPath) // #nosec G304 - temp file created above
	if err != nil {
		return nil, fmt.Errorf("opening screenshot: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding screenshot: %w", err)
	}

	return img, nil
}

// ActiveProcessCount returns the number of running browser processes
func (c *ChromeScreenshotter) ActiveProcessCount() int {
	c.processMutex.RLock()
	defer c.processMutex.RUnlock()
	return len(c.activeProcesses)
}

// KillActiveProcesses terminates every running browser process
func (c *ChromeScreenshotter) KillActiveProcesses() error {
	c.processMutex.Lock()
	defer c.processMutex.Unlock()

	var errs []error
	for processID, cmd := range c.activeProcesses {
		if cmd != nil && cmd.Process != nil {
			if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
				errs = append(errs, fmt.Errorf("killing process %s: %w", processID, err))
			}
		}
		delete(c.activeProcesses, processID)
	}

	return errors.Join(errs...)
}

// SlideURL returns the file URL that opens the deck on slide index in
// capture mode.
func SlideURL(markupPath string, index int) (string, error) {
	abs, err := filepath.Abs(markupPath)
	if err != nil {
		return "", fmt.Errorf("resolving deck path: %w", err)
	}

	u := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(abs),
		RawQuery: "capture",
		Fragment: strconv.Itoa(index + 1),
	}
	if runtime.GOOS == "windows" {
		u.Path = "/" + u.Path
	}
	return u.String(), nil
}

// FindChrome looks for Chrome or Chromium in the usual install locations
// and on PATH.
func FindChrome() (string, error) {
	var candidates []string

	switch runtime.GOOS {
	case "darwin":
		candidates = []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
		}
	case "linux":
		candidates = []string{
			"/usr/bin/google-chrome",
			"/usr/bin/google-chrome-stable",
			"/usr/bin/chromium",
			"/usr/bin/chromium-browser",
			"/snap/bin/chromium",
		}
	case "windows":
		candidates = []string{
			"C:\\Program Files\\Google\\Chrome\\Application\\chrome.exe",
			"C:\\Program Files (x86)\\Google\\Chrome\\Application\\chrome.exe",
		}
	}

	for _, candidate := range candidates {
		if isExecutableFile(candidate) {
			return candidate, nil
		}
	}

	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "chrome"} {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: install Chrome or Chromium, or set capture.browser_path", ports.ErrBrowserNotFound)
}

func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	if runtime.GOOS == "windows" {
		return !info.IsDir()
	}

	return !info.IsDir() && (info.Mode()&0o111) != 0
}

var _ ports.Screenshotter = (*ChromeScreenshotter)(nil)
