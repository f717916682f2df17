package debug

import "testing"

func TestVerboseToggle(t *testing.T) {
	SetVerbose(true)
	defer SetVerbose(false)
	if !Enabled() {
		t.Error("expected Enabled() after SetVerbose(true)")
	}
}

func TestQuietToggle(t *testing.T) {
	SetQuiet(true)
	defer SetQuiet(false)
	if !IsQuiet() {
		t.Error("expected IsQuiet() after SetQuiet(true)")
	}
}
