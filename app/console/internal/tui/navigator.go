package tui

import (
	"os/exec"
	"runtime"
)

// Browser opens URLs with the desktop's default handler.
type Browser struct {
	goos string
	run  func(name string, args ...string) error
}

// NewBrowser creates a Browser for the running OS.
func NewBrowser() *Browser {
	return &Browser{
		goos: runtime.GOOS,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		},
	}
}

// Open implements view.Navigator.
func (b *Browser) Open(url string) error {
	name, args := openCommand(b.goos, url)
	return b.run(name, args...)
}

func openCommand(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}
