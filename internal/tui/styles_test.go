package tui

import (
	"testing"
)

func TestStyles(t *testing.T) {
	// Test that styles are initialized by checking if they can render content
	if InfoStyle.Render("test") == "" {
		t.Error("InfoStyle should be able to render content")
	}
	if SuccessStyle.Render("test") == "" {
		t.Error("SuccessStyle should be able to render content")
	}
	if ErrorStyle.Render("test") == "" {
		t.Error("ErrorStyle should be able to render content")
	}
	if WarningStyle.Render("test") == "" {
		t.Error("WarningStyle should be able to render content")
	}
	if PromptStyle.Render("test") == "" {
		t.Error("PromptStyle should be able to render content")
	}
	if SelectedStyle.Render("test") == "" {
		t.Error("SelectedStyle should be able to render content")
	}
}
