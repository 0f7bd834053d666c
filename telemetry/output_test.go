package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("", "run")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	// A nil manager swallows every write.
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.WritePopulation(PopulationSample{}); err != nil {
		t.Error(err)
	}
	if om.Dir() != "" || om.Close() != nil {
		t.Error("nil manager should report no dir and close cleanly")
	}
}

func TestOutputManagerWritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	om, err := NewOutputManager(dir, "run-42")
	if err != nil {
		t.Fatal(err)
	}

	for turn := 1; turn <= 3; turn++ {
		if err := om.WritePopulation(PopulationSample{Turn: turn, Prey: 10 * turn, Predators: turn, Grass: 7}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WriteBookmark(Bookmark{RunID: "run-42", Type: BookmarkExtinction, Turn: 3, Description: "predators extinct"}); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "population.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("population.csv has %d lines, want header + 3:\n%s", len(lines), data)
	}
	if lines[0] != "turn,prey,predators,grass" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[3] != "3,30,3,7" {
		t.Errorf("last row = %q", lines[3])
	}

	data, err = os.ReadFile(filepath.Join(dir, "bookmarks.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "run-42,extinction,3,predators extinct") {
		t.Errorf("bookmarks.csv = %q", data)
	}
}

func TestOutputManagerWritesConfig(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir, NewRunID())
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()

	w := newPerfWorld(t)
	cfg := w.Config()
	if err := om.WriteConfig(&cfg); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml not written: %v", err)
	}
}
