package ui

import (
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short string untouched", "hat", 10, "hat"},
		{"exact length untouched", "boots", 5, "boots"},
		{"long string gets ellipsis", "leather boots", 10, "leather..."},
		{"tiny max returns input", "boots", 3, "boots"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.max); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestPadString(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		width int
		align string
		want  string
	}{
		{"left pads right side", "ab", 4, "left", "ab  "},
		{"right pads left side", "ab", 4, "right", "  ab"},
		{"center splits padding", "ab", 4, "center", " ab "},
		{"wider than width unchanged", "abcdef", 4, "left", "abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := padString(tt.s, tt.width, tt.align); got != tt.want {
				t.Errorf("padString = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable([]TableColumn{
		{Header: "NAME", Width: 10},
		{Header: "SIZE", Width: 6, Align: "right"},
	})
	table.AddRow([]string{"hat", "1.0 KB"})
	table.AddRow([]string{"boots", "8.0 KB"})

	out := table.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, separator and 2 rows, got %d lines", len(lines))
	}
	if !strings.Contains(lines[0], "NAME") || !strings.Contains(lines[0], "SIZE") {
		t.Errorf("header line missing column names: %q", lines[0])
	}
	if !strings.Contains(lines[1], "─") {
		t.Errorf("separator line missing: %q", lines[1])
	}
	if !strings.Contains(lines[2], "hat") || !strings.Contains(lines[3], "boots") {
		t.Errorf("rows not rendered in order: %q / %q", lines[2], lines[3])
	}
}

func TestTableRenderEmptyColumns(t *testing.T) {
	table := &Table{}
	if out := table.Render(); out != "" {
		t.Errorf("expected empty render, got %q", out)
	}
}

func TestRenderKeyValueEndsWithNewline(t *testing.T) {
	out := RenderKeyValue("Name", "hat")
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("expected trailing newline, got %q", out)
	}
	if !strings.Contains(out, "hat") {
		t.Errorf("value missing from output: %q", out)
	}
}

func TestRenderSimpleList(t *testing.T) {
	out := RenderSimpleList([]string{"cute", "winter"})
	if strings.Count(out, "•") != 2 {
		t.Errorf("expected two bullets, got %q", out)
	}
	if !strings.Contains(out, "cute") || !strings.Contains(out, "winter") {
		t.Errorf("items missing from output: %q", out)
	}
}
