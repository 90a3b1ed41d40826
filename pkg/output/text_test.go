package output

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ccollicutt/chatretro/pkg/analyzer"
	"github.com/ccollicutt/chatretro/pkg/parser"
)

func TestNewTextFormatter(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})
	if f == nil {
		t.Fatal("NewTextFormatter() returned nil")
	}
	if f.Name() != "text" {
		t.Errorf("Name() = %q, want %q", f.Name(), "text")
	}
}

func TestTextFormatter_Format_Empty(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})
	report := NewReport(parser.New().Parse(""), analyzer.New(), ReportOptions{})

	var buf bytes.Buffer
	err := f.Format(context.Background(), report, &buf)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "ChatRetro Report") {
		t.Error("Output missing header")
	}
	if !strings.Contains(output, "No messages found") {
		t.Error("Output missing empty notice")
	}
	if strings.Contains(output, "[HEATMAP]") {
		t.Error("Empty report should not render sections")
	}
}

func TestTextFormatter_Format_Full(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})
	report := createTestReport()

	var buf bytes.Buffer
	err := f.Format(context.Background(), report, &buf)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()

	for _, section := range []string{"[AUTHORS]", "[PODIUM] Messages", "[PODIUM] Spam-O-Meter", "[VOCABULARY]", "[SPAM]", "[HEATMAP]"} {
		if !strings.Contains(output, section) {
			t.Errorf("Output missing section %q", section)
		}
	}

	if !strings.Contains(output, "Source: chat.txt") {
		t.Error("Output missing source")
	}
	if !strings.Contains(output, "0 bursts (0%)") {
		t.Error("Output missing spam label")
	}
	if !strings.Contains(output, "4 messages from 2 authors, 1 media, spanning 1.6 days") {
		t.Error("Output missing summary")
	}
	if strings.Contains(output, "Duration:") {
		t.Error("Non-verbose output should not contain duration")
	}
}

func TestTextFormatter_Format_Quiet(t *testing.T) {
	f := NewTextFormatter(FormatOptions{Quiet: true})
	report := createTestReport()

	var buf bytes.Buffer
	err := f.Format(context.Background(), report, &buf)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()

	// Quiet mode should be a single line
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 1 {
		t.Errorf("Quiet mode produced %d lines, want 1", len(lines))
	}

	if !strings.Contains(output, "4 messages, 2 authors") {
		t.Errorf("Quiet output = %q", output)
	}
}

func TestTextFormatter_Format_Verbose(t *testing.T) {
	f := NewTextFormatter(FormatOptions{Verbose: true})
	report := createTestReport()

	var buf bytes.Buffer
	err := f.Format(context.Background(), report, &buf)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "Duration:") {
		t.Error("Verbose output should contain duration")
	}
	if !strings.Contains(output, "Lines read: 5") {
		t.Error("Verbose output should contain lines read")
	}
	if !strings.Contains(output, "Skipped (not_header): 1") {
		t.Error("Verbose output should contain skip counts")
	}
	if !strings.Contains(output, "sessions") {
		t.Error("Verbose output should contain session starters")
	}
}

func TestTextFormatter_HeatmapGrid(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})
	report := createTestReport()

	var buf bytes.Buffer
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	// 01/01/2024 is a Monday: three messages at 09h make it the peak cell.
	var monday string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), analyzer.DefaultDayLabels[0]) {
			monday = line
			break
		}
	}
	if monday == "" {
		t.Fatal("heatmap row for Monday not found")
	}
	grid := monday[len(monday)-24:]
	if grid[9] != '@' {
		t.Errorf("Monday 09h = %q, want '@' in %q", grid[9], grid)
	}
	if grid[10] != ' ' {
		t.Errorf("Monday 10h = %q, want blank", grid[10])
	}
}

func TestShade(t *testing.T) {
	tests := []struct {
		count, peak int
		want        byte
	}{
		{0, 0, ' '},
		{0, 10, ' '},
		{1, 10, '.'},
		{5, 10, '+'},
		{10, 10, '@'},
	}

	for _, tt := range tests {
		if got := shade(tt.count, tt.peak); got != tt.want {
			t.Errorf("shade(%d, %d) = %q, want %q", tt.count, tt.peak, got, tt.want)
		}
	}
}

func TestPadAuthor(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  string
	}{
		{"Bob", 5, "Bob  "},
		{"Zoë", 4, "Zoë "},
		{"李雷", 6, "李雷  "},
		{"Alexandra", 5, "Alex…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := padAuthor(tt.name, tt.width); got != tt.want {
				t.Errorf("padAuthor(%q, %d) = %q, want %q", tt.name, tt.width, got, tt.want)
			}
		})
	}
}
