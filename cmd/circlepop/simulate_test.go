package main

import (
	"testing"

	"github.com/vovakirdan/circlepop/internal/games/circlepop/board"
)

func TestStrategies(t *testing.T) {
	grid, err := board.ParseRows(3,
		"BBBB",
		"ACCA",
		"AACB",
	)
	if err != nil {
		t.Fatalf("ParseRows() failed: %v", err)
	}

	tests := []struct {
		name     string
		minGroup int
		wantLen  int
		wantOK   bool
	}{
		{"largest", 3, 4, true},
		{"first", 3, 3, true},
		{"largest", 5, 0, false},
		{"first", 5, 0, false},
	}

	for _, tt := range tests {
		pick, err := strategyFor(tt.name)
		if err != nil {
			t.Fatalf("strategyFor(%q) failed: %v", tt.name, err)
		}
		r, ok := pick(grid, tt.minGroup)
		if ok != tt.wantOK {
			t.Errorf("%s(min %d) ok = %v, want %v", tt.name, tt.minGroup, ok, tt.wantOK)
			continue
		}
		if ok && r.Len() != tt.wantLen {
			t.Errorf("%s(min %d) picked %d cells, want %d", tt.name, tt.minGroup, r.Len(), tt.wantLen)
		}
	}
}

func TestUnknownStrategy(t *testing.T) {
	if _, err := strategyFor("random"); err == nil {
		t.Error("strategyFor() should reject unknown names")
	}
}
