package console

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{name: "lowercases first letter", message: "The maximum number", want: "the maximum number"},
		{name: "strips trailing period", message: "try 20.", want: "try 20"},
		{name: "strips trailing question mark", message: "Is it set?", want: "is it set"},
		{name: "strips trailing exclamation", message: "Never do this!", want: "never do this"},
		{name: "trims whitespace", message: "  padded  ", want: "padded"},
		{name: "empty stays empty", message: "", want: ""},
		{name: "single character", message: "X.", want: "x"},
		{name: "already normalized", message: "lowercase already", want: "lowercase already"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.message); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}

func TestFormatMessages(t *testing.T) {
	tests := []struct {
		name   string
		format func(string) string
		symbol string
	}{
		{name: "error", format: FormatErrorMessage, symbol: "✗"},
		{name: "success", format: FormatSuccessMessage, symbol: "✓"},
		{name: "info", format: FormatInfoMessage, symbol: "ℹ"},
		{name: "warning", format: FormatWarningMessage, symbol: "⚠"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.format("something happened")
			if !strings.Contains(got, tt.symbol) {
				t.Errorf("missing %q symbol in %q", tt.symbol, got)
			}
			if !strings.Contains(got, "something happened") {
				t.Errorf("missing message text in %q", got)
			}
		})
	}
}

func TestFormatErrorStack(t *testing.T) {
	inner := errors.New("file does not exist")
	middle := fmt.Errorf("failed to read config: %w", inner)
	outer := fmt.Errorf("failed to load config: %w", middle)

	t.Run("stacked lists every layer", func(t *testing.T) {
		got := FormatErrorStack(outer, StackStacked, ModePlain)
		for _, want := range []string{"failed to load config", "failed to read config", "file does not exist"} {
			if !strings.Contains(got, want) {
				t.Errorf("missing %q in:\n%s", want, got)
			}
		}
		if !strings.Contains(got, "1.") || !strings.Contains(got, "3.") {
			t.Errorf("missing stack numbering in:\n%s", got)
		}
	})

	t.Run("inline is a single line", func(t *testing.T) {
		got := FormatErrorStack(outer, StackInline, ModePlain)
		if strings.Count(strings.TrimRight(got, "\n"), "\n") != 0 {
			t.Errorf("inline stack spans lines:\n%s", got)
		}
		if !strings.Contains(got, "file does not exist") {
			t.Errorf("missing innermost error in %q", got)
		}
	})
}

func TestFormatReport(t *testing.T) {
	err := fmt.Errorf("failed to read config: %w", errors.New("permission denied"))
	got := FormatReport("config lint", err, ModePlain)

	if !strings.HasPrefix(got, "`config lint` reported an error\n") {
		t.Errorf("missing operation line in:\n%s", got)
	}
	if !strings.Contains(got, "permission denied") {
		t.Errorf("missing cause in:\n%s", got)
	}
}

func TestRenderTable(t *testing.T) {
	got := RenderTable(TableConfig{
		Headers: []string{"file", "status"},
		Rows: [][]string{
			{"cfglint.json", "ok"},
			{"settings.json", "failed"},
		},
	}, ModePlain)

	for _, want := range []string{"file", "status", "cfglint.json", "settings.json", "failed"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in table:\n%s", want, got)
		}
	}
	if !strings.Contains(got, "-") {
		t.Errorf("missing header separator in table:\n%s", got)
	}
}

func TestToRelativePath(t *testing.T) {
	if got := ToRelativePath("already/relative.json"); got != "already/relative.json" {
		t.Errorf("relative path changed: %q", got)
	}
}
