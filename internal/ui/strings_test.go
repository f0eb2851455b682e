package ui

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"Spain", 10, "Spain"},
		{"  Spain  ", 10, "Spain"},
		{"United Kingdom", 8, "Unite..."},
		{"España", 3, "Esp"},
		{"Any", 0, "Any"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ES", 4); got != "ES  " {
		t.Fatalf("padRight = %q", got)
	}
	if got := padRight("ESPANA", 4); got != "ESPANA" {
		t.Fatalf("padRight long = %q", got)
	}
}

func TestFormatArea(t *testing.T) {
	tests := map[float64]string{
		505992: "505,992 km²",
		1580.5: "1,580.5 km²",
		0:      "unknown",
	}
	for in, want := range tests {
		if got := formatArea(in); got != want {
			t.Fatalf("formatArea(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		selected, total, rows int
		start, end            int
	}{
		{0, 100, 10, 0, 10},
		{9, 100, 10, 0, 10},
		{10, 100, 10, 1, 11},
		{99, 100, 10, 90, 100},
		{2, 3, 10, 0, 3},
		{0, 0, 10, 0, 0},
	}
	for _, tt := range tests {
		start, end := visibleRange(tt.selected, tt.total, tt.rows)
		if start != tt.start || end != tt.end {
			t.Fatalf("visibleRange(%d,%d,%d) = %d,%d want %d,%d",
				tt.selected, tt.total, tt.rows, start, end, tt.start, tt.end)
		}
	}
}
