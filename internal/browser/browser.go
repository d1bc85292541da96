package browser

import (
	"fmt"
	"os/exec"
	"runtime"

	"awsps/internal/config"

	"github.com/pkg/browser"
)

var (
	openDefault = browser.OpenURL
	startCmd    = func(cmd *exec.Cmd) error { return cmd.Start() }
)

// OpenURL opens url in the default browser, or in the given Chrome profile.
// It takes the friendly alias name as input.
func OpenURL(url, chromeProfileAlias string) error {
	if chromeProfileAlias == "" {
		return openDefault(url)
	}

	// Look up the alias to get the real directory name from the config file.
	profileDirectory := config.GetChromeProfileDirectory(chromeProfileAlias)

	cmd := chromeCommand(runtime.GOOS, profileDirectory, url)
	if cmd == nil {
		// Unsupported OS for Chrome profiles.
		return openDefault(url)
	}
	if err := startCmd(cmd); err != nil {
		return fmt.Errorf("failed to start chrome: %w", err)
	}
	return nil
}

func chromeCommand(goos, profileDirectory, url string) *exec.Cmd {
	profileArg := fmt.Sprintf("--profile-directory=%s", profileDirectory)

	switch goos {
	case "darwin":
		return exec.Command("/Applications/Google Chrome.app/Contents/MacOS/Google Chrome", profileArg, url)
	case "windows":
		return exec.Command("C:\\Program Files\\Google\\Chrome\\Application\\chrome.exe", profileArg, url)
	case "linux":
		// Assumes 'google-chrome' is in the user's PATH
		return exec.Command("google-chrome", profileArg, url)
	default:
		return nil
	}
}
