package util

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, []string{"Profile", "Region"}, [][]string{
		{"dev", "eu-west-1"},
		{"prod", "us-east-1"},
	})

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header and 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "PROFILE") {
		t.Errorf("Expected formatted header, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "dev") || !strings.Contains(lines[1], "eu-west-1") {
		t.Errorf("Unexpected first row %q", lines[1])
	}
	if strings.ContainsAny(out, "|+") {
		t.Errorf("Table should have no borders:\n%s", out)
	}
}

func TestColors(t *testing.T) {
	if InfoColor == nil {
		t.Error("InfoColor should not be nil")
	}
	if SuccessColor == nil {
		t.Error("SuccessColor should not be nil")
	}
	if ErrorColor == nil {
		t.Error("ErrorColor should not be nil")
	}
	if WarnColor == nil {
		t.Error("WarnColor should not be nil")
	}
	if BoldColor == nil {
		t.Error("BoldColor should not be nil")
	}
}
