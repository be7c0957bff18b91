package ui

import (
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestFormatterWithColor(t *testing.T) {
	os.Unsetenv("NO_COLOR")
	originalNoColor := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = originalNoColor }()

	result := Code.Sprint("envseal --print-none")
	if strings.Contains(result, "`") {
		t.Errorf("Code.Sprint should not contain backticks when color is enabled, got: %s", result)
	}
	if !strings.Contains(result, "\x1b[") {
		t.Errorf("Code.Sprint should contain ANSI escape codes when color is enabled, got: %s", result)
	}
}

func TestFormatterWithNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name      string
		formatter Formatter
		input     string
		want      string
	}{
		{"Code adds backticks", Code, "kubeseal", "`kubeseal`"},
		{"Path has no decoration", Path, "sealed-secret.yaml", "sealed-secret.yaml"},
		{"Flag has no decoration", Flag, "--output", "--output"},
		{"Success has no decoration", Success, "✓", "✓"},
		{"Error has no decoration", Error, "✗", "✗"},
		{"Info has no decoration", Info, "→", "→"},
		{"Highlight adds quotes", Highlight, "mysecret", "'mysecret'"},
		{"Muted adds parentheses", Muted, "3 keys", "(3 keys)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.formatter.Sprint(tt.input)
			if got != tt.want {
				t.Errorf("%s.Sprint(%q) = %q, want %q", tt.name, tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatterSprintf(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	result := Highlight.Sprintf("%s/%s", "default", "mysecret")
	want := "'default/mysecret'"
	if result != want {
		t.Errorf("Highlight.Sprintf() = %q, want %q", result, want)
	}
}

func TestFailureMessage(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	got := FailureMessage("kubeseal not found", "Install kubeseal", "Or pass --kubeseal")
	want := "✗ kubeseal not found\n→ Install kubeseal\n→ Or pass --kubeseal\n"
	if got != want {
		t.Errorf("FailureMessage() = %q, want %q", got, want)
	}
}

func TestSuccessMessage(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	if got := SuccessMessage("sealed"); got != "✓ sealed\n" {
		t.Errorf("SuccessMessage() = %q", got)
	}
}

func TestEnsureNewline(t *testing.T) {
	tests := map[string]string{
		"":     "\n",
		"a":    "a\n",
		"a\n":  "a\n",
		"a\nb": "a\nb\n",
	}
	for in, want := range tests {
		if got := EnsureNewline(in); got != want {
			t.Errorf("EnsureNewline(%q) = %q, want %q", in, got, want)
		}
	}
}
