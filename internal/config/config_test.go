package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileMissingIsNotAnError(t *testing.T) {
	d, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), Defaults{TurdSize: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.TurdSize != 2 {
		t.Errorf("TurdSize = %d, want base value 2 preserved", d.TurdSize)
	}
}

func TestLoadFileOverridesBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opts.yaml")
	content := "turd_size: 5\nalpha_max: 1.2\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	d, err := LoadFile(path, Defaults{TurdSize: 2, CurveTolerance: 0.2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.TurdSize != 5 {
		t.Errorf("TurdSize = %d, want 5", d.TurdSize)
	}
	if d.AlphaMax != 1.2 {
		t.Errorf("AlphaMax = %v, want 1.2", d.AlphaMax)
	}
	if d.CurveTolerance != 0.2 {
		t.Errorf("CurveTolerance = %v, want base value 0.2 preserved", d.CurveTolerance)
	}
}

func TestLoadEnvAppliesRecognizedKeys(t *testing.T) {
	t.Setenv("VTRACE_TURD_SIZE", "7")
	t.Setenv("VTRACE_TURN_POLICY", "majority")
	d, err := LoadEnv("", Defaults{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.TurdSize != 7 {
		t.Errorf("TurdSize = %d, want 7", d.TurdSize)
	}
	if d.TurnPolicy != "majority" {
		t.Errorf("TurnPolicy = %q, want majority", d.TurnPolicy)
	}
}

func TestLoadEnvInvalidValueErrors(t *testing.T) {
	t.Setenv("VTRACE_TURD_SIZE", "not-a-number")
	if _, err := LoadEnv("", Defaults{}); err == nil {
		t.Error("expected an error for a malformed VTRACE_TURD_SIZE")
	}
}
