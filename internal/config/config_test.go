package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file errored: %v", err)
	}
	want := Default()
	if got.World.TileSize != want.World.TileSize || got.Server.Port != want.Server.Port {
		t.Fatalf("defaults not applied: %+v", got.World)
	}
}

func TestLoadOverlaysPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	data := []byte("world:\n  tree_density: 0.2\nserver:\n  port: 9090\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.World.TreeDensity != 0.2 {
		t.Fatalf("tree_density = %v, want 0.2", got.World.TreeDensity)
	}
	if got.Server.Port != 9090 {
		t.Fatalf("port = %d, want 9090", got.Server.Port)
	}
	// Untouched fields keep defaults, including repaired zero values.
	if got.World.TileSize != Default().World.TileSize {
		t.Fatalf("tile_size = %d", got.World.TileSize)
	}
	if len(got.Spawns.NPCTypes) == 0 {
		t.Fatal("npc types not defaulted")
	}
}

func TestLoadMalformedFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("world: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err == nil {
		t.Fatal("malformed yaml did not error")
	}
	if got.World.TileSize != Default().World.TileSize {
		t.Fatal("malformed yaml did not fall back to defaults")
	}
}
