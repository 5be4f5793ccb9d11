package session

import (
	"os/exec"
	"runtime"
	"sync"

	"github.com/atotto/clipboard"
)

// Clipboard defines the interface for clipboard operations.
type Clipboard interface {
	Copy(text string) error
}

// Browser opens URLs in the user's browser.
type Browser interface {
	Open(url string) error
}

// SystemClipboard implements Clipboard using the system clipboard.
type SystemClipboard struct{}

// Copy copies text to the system clipboard.
func (SystemClipboard) Copy(text string) error {
	return clipboard.WriteAll(text)
}

// SystemBrowser implements Browser using the platform opener.
type SystemBrowser struct{}

// Open launches the default browser on the URL.
func (SystemBrowser) Open(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}

// MockClipboard records copied text for testing.
type MockClipboard struct {
	mu     sync.Mutex
	Copied []string
	Err    error
}

func (m *MockClipboard) Copy(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Copied = append(m.Copied, text)
	return nil
}

// MockBrowser records opened URLs for testing.
type MockBrowser struct {
	mu     sync.Mutex
	Opened []string
	Err    error
}

func (m *MockBrowser) Open(url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Opened = append(m.Opened, url)
	return nil
}
