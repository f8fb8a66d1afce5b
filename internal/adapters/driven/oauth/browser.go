package oauth

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// browserCommands launch the default browser per platform.
var browserCommands = map[string][]string{
	"darwin":  {"open"},
	"linux":   {"xdg-open"},
	"freebsd": {"xdg-open"},
	"windows": {"rundll32", "url.dll,FileProtocolHandler"},
}

// OpenBrowser opens url in the user's browser. $BROWSER takes precedence
// over the platform default.
func OpenBrowser(url string) error {
	if browser := os.Getenv("BROWSER"); browser != "" {
		return exec.Command(browser, url).Start()
	}

	args, ok := browserCommands[runtime.GOOS]
	if !ok {
		return fmt.Errorf("no browser launcher for %s", runtime.GOOS)
	}
	return exec.Command(args[0], append(args[1:], url)...).Start() //nolint:gosec // fixed launcher
}
