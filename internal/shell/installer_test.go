package shell

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

const testHome = "/home/user"

func newTestInstaller(t *testing.T) (*Installer, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return NewInstallerWithFs(fs, testHome, "linux"), fs
}

func TestInstaller_ConfigFile(t *testing.T) {
	tests := []struct {
		goos     string
		shell    Shell
		expected string
	}{
		{"linux", Bash, filepath.Join(testHome, ".bashrc")},
		{"linux", Zsh, filepath.Join(testHome, ".zshrc")},
		{"linux", Fish, filepath.Join(testHome, ".config", "fish", "config.fish")},
		{"linux", Nushell, filepath.Join(testHome, ".config", "nushell", "config.nu")},
		{"darwin", Nushell, filepath.Join(testHome, "Library", "Application Support", "nushell", "config.nu")},
		{"linux", PowerShell, filepath.Join(testHome, ".config", "powershell", "Microsoft.PowerShell_profile.ps1")},
		{"windows", PowerShell, filepath.Join(testHome, "Documents", "PowerShell", "Microsoft.PowerShell_profile.ps1")},
	}

	for _, test := range tests {
		in := NewInstallerWithFs(afero.NewMemMapFs(), testHome, test.goos)
		if got := in.ConfigFile(test.shell); got != test.expected {
			t.Errorf("ConfigFile(%s) on %s = %s, expected %s", test.shell, test.goos, got, test.expected)
		}
	}
}

func TestInstaller_Install(t *testing.T) {
	in, fs := newTestInstaller(t)
	rc := filepath.Join(testHome, ".zshrc")
	original := "export PATH=$HOME/bin:$PATH\n"
	if err := afero.WriteFile(fs, rc, []byte(original), 0600); err != nil {
		t.Fatal(err)
	}

	err := in.Install(InstallOptions{Shell: Zsh, StatePath: "/tmp/state", Backup: true})
	if err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	content, err := afero.ReadFile(fs, rc)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(content), original) {
		t.Errorf("Install should keep existing content, got:\n%s", content)
	}
	if !strings.Contains(string(content), blockStart) || !strings.Contains(string(content), "add-zsh-hook") {
		t.Errorf("Install did not write the hook block:\n%s", content)
	}

	info, err := fs.Stat(rc)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected mode 0600 to be kept, got %o", info.Mode().Perm())
	}

	backup, err := afero.ReadFile(fs, rc+backupSuffix)
	if err != nil {
		t.Fatalf("Expected backup file: %v", err)
	}
	if string(backup) != original {
		t.Errorf("Backup = %q, expected %q", backup, original)
	}
}

func TestInstaller_InstallCreatesDirectories(t *testing.T) {
	in, fs := newTestInstaller(t)

	if err := in.Install(InstallOptions{Shell: Fish, StatePath: "/tmp/state"}); err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	content, err := afero.ReadFile(fs, in.ConfigFile(Fish))
	if err != nil {
		t.Fatalf("Expected fish config to be created: %v", err)
	}
	if string(content) != Block(Fish, "/tmp/state") {
		t.Errorf("New file should contain only the block, got:\n%s", content)
	}
}

func TestInstaller_InstallTwice(t *testing.T) {
	in, fs := newTestInstaller(t)
	opts := InstallOptions{Shell: Bash, StatePath: "/tmp/state"}

	if err := in.Install(opts); err != nil {
		t.Fatalf("First install failed: %v", err)
	}

	err := in.Install(opts)
	if !errors.Is(err, ErrAlreadyInstalled) {
		t.Fatalf("Expected ErrAlreadyInstalled, got %v", err)
	}
	var hookErr *HookError
	if !errors.As(err, &hookErr) {
		t.Fatalf("Expected *HookError, got %T", err)
	}
	if len(hookErr.Suggestions) == 0 {
		t.Error("Expected suggestions on HookError")
	}

	opts.Force = true
	opts.StatePath = "/tmp/other"
	if err := in.Install(opts); err != nil {
		t.Fatalf("Forced install failed: %v", err)
	}

	content, _ := afero.ReadFile(fs, in.ConfigFile(Bash))
	if strings.Count(string(content), blockStart) != 1 {
		t.Errorf("Expected exactly one block after forced install:\n%s", content)
	}
	if !strings.Contains(string(content), "/tmp/other") || strings.Contains(string(content), `"/tmp/state"`) {
		t.Errorf("Forced install should replace the old block:\n%s", content)
	}
}

func TestInstaller_Uninstall(t *testing.T) {
	in, fs := newTestInstaller(t)
	rc := in.ConfigFile(Bash)
	original := "alias ll='ls -l'\n"
	if err := afero.WriteFile(fs, rc, []byte(original), 0644); err != nil {
		t.Fatal(err)
	}

	if err := in.Install(InstallOptions{Shell: Bash, StatePath: "/tmp/state"}); err != nil {
		t.Fatal(err)
	}
	if err := in.Uninstall(Bash); err != nil {
		t.Fatalf("Uninstall failed: %v", err)
	}

	content, _ := afero.ReadFile(fs, rc)
	if string(content) != original {
		t.Errorf("Uninstall should restore original content\nexpected: %q\ngot:      %q", original, content)
	}

	err := in.Uninstall(Bash)
	if !errors.Is(err, ErrNotInstalled) {
		t.Errorf("Expected ErrNotInstalled on second uninstall, got %v", err)
	}
}

func TestInstaller_UninstallKeepsTrailingContent(t *testing.T) {
	in, fs := newTestInstaller(t)
	rc := in.ConfigFile(Zsh)
	content := "before\n\n" + Block(Zsh, "/tmp/state") + "after\n"
	if err := afero.WriteFile(fs, rc, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if err := in.Uninstall(Zsh); err != nil {
		t.Fatalf("Uninstall failed: %v", err)
	}

	got, _ := afero.ReadFile(fs, rc)
	if string(got) != "before\nafter\n" {
		t.Errorf("Unexpected content after uninstall: %q", got)
	}
}

func TestInstaller_DamagedBlock(t *testing.T) {
	in, fs := newTestInstaller(t)
	rc := in.ConfigFile(Bash)
	if err := afero.WriteFile(fs, rc, []byte(blockStart+"\nexport FOO=1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := in.Install(InstallOptions{Shell: Bash, Force: true}); !errors.Is(err, ErrInvalidShellConfig) {
		t.Errorf("Install: expected ErrInvalidShellConfig, got %v", err)
	}
	if err := in.Uninstall(Bash); !errors.Is(err, ErrInvalidShellConfig) {
		t.Errorf("Uninstall: expected ErrInvalidShellConfig, got %v", err)
	}
}

func TestInstaller_ReadOnlyFilesystem(t *testing.T) {
	base := afero.NewMemMapFs()
	in := NewInstallerWithFs(afero.NewReadOnlyFs(base), testHome, "linux")

	err := in.Install(InstallOptions{Shell: Zsh, StatePath: "/tmp/state"})
	if err == nil {
		t.Fatal("Expected install to fail on a read-only filesystem")
	}
	var hookErr *HookError
	if !errors.As(err, &hookErr) {
		t.Fatalf("Expected *HookError, got %T", err)
	}
	if hookErr.Op != "install" || hookErr.Shell != "zsh" {
		t.Errorf("Unexpected HookError fields: %+v", hookErr)
	}
}

func TestInstaller_Status(t *testing.T) {
	in, _ := newTestInstaller(t)
	if err := in.Install(InstallOptions{Shell: Fish, StatePath: "/tmp/state"}); err != nil {
		t.Fatal(err)
	}

	statuses := in.Status()
	if len(statuses) != len(Supported()) {
		t.Fatalf("Expected %d statuses, got %d", len(Supported()), len(statuses))
	}
	for _, status := range statuses {
		want := status.Shell == Fish
		if status.Installed != want {
			t.Errorf("Status for %s: installed = %v, expected %v", status.Shell, status.Installed, want)
		}
		if status.Path != in.ConfigFile(status.Shell) {
			t.Errorf("Status for %s: path = %s", status.Shell, status.Path)
		}
		if status.Error != "" {
			t.Errorf("Status for %s: unexpected error %s", status.Shell, status.Error)
		}
	}
}

func TestHookError(t *testing.T) {
	err := NewHookError("zsh", "install", ErrAlreadyInstalled, "custom message")

	expected := "hook install for zsh: custom message (hook already installed)"
	if err.Error() != expected {
		t.Errorf("Expected error string %q, got %q", expected, err.Error())
	}
	if !errors.Is(err, ErrAlreadyInstalled) {
		t.Error("HookError should unwrap to its cause")
	}

	msg := err.UserFriendlyMessage()
	if !strings.Contains(msg, "Suggested solutions:") || !strings.Contains(msg, "--force") {
		t.Errorf("Unexpected friendly message:\n%s", msg)
	}

	perm := NewHookError("bash", "install", os.ErrPermission, "")
	if !strings.Contains(perm.Suggestions[0], "write permissions") {
		t.Errorf("Unexpected permission suggestions: %v", perm.Suggestions)
	}

	other := NewHookError("fish", "install", errors.New("boom"), "")
	if len(other.Suggestions) != 2 {
		t.Errorf("Expected generic suggestions, got %v", other.Suggestions)
	}
}
