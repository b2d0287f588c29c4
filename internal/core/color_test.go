package core

import "testing"

func TestColorEmpty(t *testing.T) {
	if !ColorNone.Empty() {
		t.Error("ColorNone should be empty")
	}
	if ColorPurple.Empty() {
		t.Error("ColorPurple should not be empty")
	}
	if Color(200).String() != "unknown" {
		t.Errorf("out-of-palette color should stringify as unknown, got %q", Color(200).String())
	}
}
