package main

import (
	"testing"
)

func TestVersionDefaults(t *testing.T) {
	// main() exits the process, so only the ldflags defaults are checked.
	if version != "dev" {
		t.Errorf("Expected default version 'dev', got %q", version)
	}
	if commit != "none" {
		t.Errorf("Expected default commit 'none', got %q", commit)
	}
	if date != "unknown" {
		t.Errorf("Expected default date 'unknown', got %q", date)
	}
}
