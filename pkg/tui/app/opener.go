package app

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
)

// Method tells how an activation target was delivered.
type Method string

const (
	MethodBrowser   Method = "opened"
	MethodClipboard Method = "copied"
)

// Opener delivers an activation target to the user.
type Opener interface {
	Open(target string) (Method, error)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(target string) (Method, error)

func (f OpenerFunc) Open(target string) (Method, error) { return f(target) }

// BrowserOpener hands the target to the platform URL handler.
type BrowserOpener struct {
	// GOOS overrides runtime.GOOS.
	GOOS string
	// Run executes the command. Defaults to exec.Command(...).Run.
	Run func(name string, args ...string) error
}

// BrowserCommand returns the command that opens target on goos.
func BrowserCommand(goos, target string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	}
	return "xdg-open", []string{target}
}

func (b BrowserOpener) Open(target string) (Method, error) {
	goos := b.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	run := b.Run
	if run == nil {
		run = func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		}
	}
	name, args := BrowserCommand(goos, target)
	if err := run(name, args...); err != nil {
		return "", fmt.Errorf("open %s: %w", name, err)
	}
	return MethodBrowser, nil
}

// ClipboardOpener copies the target to the system clipboard.
type ClipboardOpener struct{}

func (ClipboardOpener) Open(target string) (Method, error) {
	if clipboard.Unsupported {
		return "", errors.New("clipboard unsupported")
	}
	if err := clipboard.WriteAll(target); err != nil {
		return "", fmt.Errorf("copy: %w", err)
	}
	return MethodClipboard, nil
}

// Fallback tries each opener in turn and returns the first success.
type Fallback []Opener

func (f Fallback) Open(target string) (Method, error) {
	var errs []error
	for _, o := range f {
		m, err := o.Open(target)
		if err == nil {
			return m, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return "", errors.New("no opener configured")
	}
	return "", errors.Join(errs...)
}

// DefaultOpener opens the browser and falls back to the clipboard.
func DefaultOpener() Opener {
	return Fallback{BrowserOpener{}, ClipboardOpener{}}
}
