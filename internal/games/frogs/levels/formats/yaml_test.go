package formats_test

import (
	"strings"
	"testing"

	"github.com/vovakirdan/frogpond/internal/games/frogs/level"
	"github.com/vovakirdan/frogpond/internal/games/frogs/levels/formats"
)

func TestParseYAML(t *testing.T) {
	data := []byte(`id: tiny
name: Tiny
description: two by two
pixels_per_size: 4
palette:
  - {key: R, rgb: [200, 0, 0]}
  - {key: G, rgb: [0, 200, 0]}
rows:
  - "RG"
  - "g."
rules:
  slot_count: 2
  victory_mode_speedup: 1.5
metadata:
  author: test
`)

	lvl, err := formats.ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if lvl.ID != "tiny" || lvl.Name != "Tiny" || lvl.PixelsPerSize != 4 {
		t.Errorf("header = %+v", lvl)
	}
	if lvl.Grid.Width != 2 || lvl.Grid.Height != 2 {
		t.Fatalf("grid = %dx%d", lvl.Grid.Width, lvl.Grid.Height)
	}

	green := level.MakeColorID(0, 200, 0, 255)
	red := level.MakeColorID(200, 0, 0, 255)
	px := lvl.Grid.Pixels
	if !px[0][0].Alive || px[0][0].ColorID != red {
		t.Errorf("(0,0) = %+v", px[0][0])
	}
	// Lower-case key is a dead pixel of that colour
	if px[1][0].Alive || px[1][0].ColorID != green {
		t.Errorf("(1,0) = %+v", px[1][0])
	}
	// '.' is a dead pixel of the first colour
	if px[1][1].Alive || px[1][1].ColorID != red {
		t.Errorf("(1,1) = %+v", px[1][1])
	}

	if lvl.Rules.SlotCount == nil || *lvl.Rules.SlotCount != 2 {
		t.Errorf("slot count override = %v", lvl.Rules.SlotCount)
	}
	if lvl.Rules.VictoryModeSpeedup == nil || *lvl.Rules.VictoryModeSpeedup != 1.5 {
		t.Errorf("speedup override = %v", lvl.Rules.VictoryModeSpeedup)
	}
	if lvl.Rules.ConveyorCapacity != nil {
		t.Error("unset override should stay nil")
	}
	if lvl.Metadata["author"] != "test" {
		t.Errorf("metadata = %v", lvl.Metadata)
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"missing id", "name: x\npalette: [{key: A, rgb: [1,1,1]}]\nrows: [\"A\"]\n", "missing id"},
		{"empty palette", "id: x\nrows: [\"A\"]\n", "empty palette"},
		{"bad key", "id: x\npalette: [{key: ab, rgb: [1,1,1]}]\nrows: [\"A\"]\n", "upper-case"},
		{"duplicate key", "id: x\npalette: [{key: A, rgb: [1,1,1]}, {key: A, rgb: [2,2,2]}]\nrows: [\"A\"]\n", "duplicate palette key"},
		{"unknown pixel", "id: x\npalette: [{key: A, rgb: [1,1,1]}]\nrows: [\"AZ\"]\n", "unknown key"},
		{"ragged rows", "id: x\npalette: [{key: A, rgb: [1,1,1]}]\nrows: [\"AA\", \"A\"]\n", "grid"},
		{"no rows", "id: x\npalette: [{key: A, rgb: [1,1,1]}]\n", "grid"},
		{"invalid yaml", "id: [\n", "yaml unmarshal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := formats.ParseYAML([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}
