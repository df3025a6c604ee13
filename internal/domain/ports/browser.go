package ports

// BrowserLauncher opens the preview in the user's browser
type BrowserLauncher interface {
	// Launch opens a URL in the default browser
	Launch(url string) error
	// Detect returns the command used to open URLs on this platform
	Detect() (string, error)
}
