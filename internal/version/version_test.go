package version

import (
	"strings"
	"testing"
)

func TestVersionDefault(t *testing.T) {
	if Version == "" {
		t.Fatalf("Version should have a default value")
	}
	if !strings.Contains(Version, ".") {
		t.Fatalf("Version should look semantic, got %q", Version)
	}
}

func TestVersionOverride(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	// Simulates a -ldflags override.
	Version = "1.2.3"
	if Version != "1.2.3" {
		t.Fatalf("Version = %q, want 1.2.3", Version)
	}
}
