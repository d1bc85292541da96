package shell

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/afero"
)

const backupSuffix = ".awsps-backup"

// Status is the hook installation state for one shell.
type Status struct {
	Shell     Shell  `json:"shell"`
	Installed bool   `json:"installed"`
	Path      string `json:"path"`
	Error     string `json:"error,omitempty"`
}

// Installer adds and removes the hook block in shell rc files.
type Installer struct {
	fs   afero.Fs
	home string
	goos string
}

// NewInstaller creates an Installer for the current user on the OS filesystem.
func NewInstaller() (*Installer, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewInstallerWithFs(afero.NewOsFs(), home, runtime.GOOS), nil
}

// NewInstallerWithFs creates an Installer rooted at home on fs.
func NewInstallerWithFs(fs afero.Fs, home, goos string) *Installer {
	return &Installer{fs: fs, home: home, goos: goos}
}

// ConfigFile returns the rc file the hook is written to.
func (in *Installer) ConfigFile(s Shell) string {
	switch s {
	case Zsh:
		return filepath.Join(in.home, ".zshrc")
	case Fish:
		return filepath.Join(in.home, ".config", "fish", "config.fish")
	case Nushell:
		if in.goos == "darwin" {
			return filepath.Join(in.home, "Library", "Application Support", "nushell", "config.nu")
		}
		if in.goos == "windows" {
			return filepath.Join(in.home, "AppData", "Roaming", "nushell", "config.nu")
		}
		return filepath.Join(in.home, ".config", "nushell", "config.nu")
	case PowerShell:
		if in.goos == "windows" {
			return filepath.Join(in.home, "Documents", "PowerShell", "Microsoft.PowerShell_profile.ps1")
		}
		return filepath.Join(in.home, ".config", "powershell", "Microsoft.PowerShell_profile.ps1")
	default:
		return filepath.Join(in.home, ".bashrc")
	}
}

// InstallOptions contains options for hook installation
type InstallOptions struct {
	Shell     Shell
	StatePath string
	Force     bool // Replace an existing hook block
	Backup    bool // Copy the rc file to <file>.awsps-backup first
}

// Install appends the hook block to the shell's rc file.
func (in *Installer) Install(opts InstallOptions) error {
	name := string(opts.Shell)
	path := in.ConfigFile(opts.Shell)

	content, existed, err := in.read(path)
	if err != nil {
		return NewHookError(name, "install", err, fmt.Sprintf("failed to read %s", path))
	}

	stripped, found, err := removeBlock(content)
	if err != nil {
		return NewHookError(name, "install", err, fmt.Sprintf("damaged hook block in %s", path))
	}
	if found && !opts.Force {
		return NewHookError(name, "install", ErrAlreadyInstalled, "hook is already installed")
	}

	dir := filepath.Dir(path)
	if err := in.fs.MkdirAll(dir, 0755); err != nil {
		return NewHookError(name, "install", err, fmt.Sprintf("failed to create directory: %s", dir))
	}

	if opts.Backup && existed {
		if err := afero.WriteFile(in.fs, path+backupSuffix, []byte(content), 0644); err != nil {
			return NewHookError(name, "install", fmt.Errorf("%w: %v", ErrBackupFailed, err),
				fmt.Sprintf("failed to create backup of %s", path))
		}
	}

	updated := appendBlock(stripped, Block(opts.Shell, opts.StatePath))
	if err := in.write(path, updated); err != nil {
		return NewHookError(name, "install", err, fmt.Sprintf("failed to write %s", path))
	}
	return nil
}

// Uninstall removes the hook block from the shell's rc file.
func (in *Installer) Uninstall(s Shell) error {
	name := string(s)
	path := in.ConfigFile(s)

	content, _, err := in.read(path)
	if err != nil {
		return NewHookError(name, "uninstall", err, fmt.Sprintf("failed to read %s", path))
	}

	stripped, found, err := removeBlock(content)
	if err != nil {
		return NewHookError(name, "uninstall", err, fmt.Sprintf("damaged hook block in %s", path))
	}
	if !found {
		return NewHookError(name, "uninstall", ErrNotInstalled, "hook is not installed")
	}

	if err := in.write(path, stripped); err != nil {
		return NewHookError(name, "uninstall", err, fmt.Sprintf("failed to write %s", path))
	}
	return nil
}

// IsInstalled reports whether the rc file for s contains the hook block.
func (in *Installer) IsInstalled(s Shell) (bool, error) {
	content, _, err := in.read(in.ConfigFile(s))
	if err != nil {
		return false, err
	}
	_, found, err := removeBlock(content)
	return found, err
}

// Status returns the installation status for every supported shell.
func (in *Installer) Status() []Status {
	statuses := make([]Status, 0, len(Supported()))
	for _, s := range Supported() {
		status := Status{Shell: s, Path: in.ConfigFile(s)}
		installed, err := in.IsInstalled(s)
		if err != nil {
			status.Error = err.Error()
		}
		status.Installed = installed
		statuses = append(statuses, status)
	}
	return statuses
}

func (in *Installer) read(path string) (string, bool, error) {
	data, err := afero.ReadFile(in.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

// write keeps the mode of an existing file.
func (in *Installer) write(path, content string) error {
	perm := os.FileMode(0644)
	if info, err := in.fs.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	return afero.WriteFile(in.fs, path, []byte(content), perm)
}

// removeBlock cuts the marked hook block out of content.
func removeBlock(content string) (string, bool, error) {
	start := strings.Index(content, blockStart)
	if start < 0 {
		if strings.Contains(content, blockEnd) {
			return content, false, ErrInvalidShellConfig
		}
		return content, false, nil
	}

	rel := strings.Index(content[start:], blockEnd)
	if rel < 0 {
		return content, false, ErrInvalidShellConfig
	}
	end := start + rel + len(blockEnd)
	if end < len(content) && content[end] == '\n' {
		end++
	}

	before := content[:start]
	// Drop the blank separator line added on install.
	if strings.HasSuffix(before, "\n\n") {
		before = before[:len(before)-1]
	}
	return before + content[end:], true, nil
}

func appendBlock(content, block string) string {
	if content == "" {
		return block
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + "\n" + block
}
