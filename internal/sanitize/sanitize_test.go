package sanitize

import (
	"strings"
	"testing"
)

func TestField(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"trims whitespace", "  The Black Keys  ", "The Black Keys"},
		{"removes angle brackets", "<script>alert(1)</script>", "scriptalert(1)/script"},
		{"removes javascript protocol", "javascript:alert(1)", "alert(1)"},
		{"removes javascript protocol case-insensitive", "JaVaScRiPt:alert(1)", "alert(1)"},
		{"removes data protocol", "data:text/html;base64,x", "text/html;base64,x"},
		{"removes event handler attributes", "x onload=evil() y", "x evil() y"},
		{"plain text untouched", "The Old Crown, Digbeth", "The Old Crown, Digbeth"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Field(tt.input); got != tt.want {
				t.Errorf("Field(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestField_NoAngleBracketsSurvive(t *testing.T) {
	inputs := []string{
		"<script>alert('x')</script>",
		"a < b > c",
		"<<>>",
		"<img src=x onerror=alert(1)>",
	}
	for _, in := range inputs {
		got := Field(in)
		if strings.ContainsAny(got, "<>") {
			t.Errorf("Field(%q) = %q still contains angle brackets", in, got)
		}
	}
}

func TestField_Truncates(t *testing.T) {
	long := strings.Repeat("a", MaxFieldLength+500)
	got := Field(long)
	if len([]rune(got)) != MaxFieldLength {
		t.Errorf("expected %d runes, got %d", MaxFieldLength, len([]rune(got)))
	}
}

func TestField_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"  hello  ",
		"<script>alert(1)</script>",
		"javascript:javascript:alert(1)",
		"x onclick= y",
		"normal booking enquiry text",
	}
	for _, in := range inputs {
		once := Field(in)
		twice := Field(once)
		if once != twice {
			t.Errorf("Field not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestMessage(t *testing.T) {
	// Free text keeps its markup: only trim and truncate apply.
	if got := Message("  hello <b>there</b>  "); got != "hello <b>there</b>" {
		t.Errorf("Message() = %q", got)
	}
	long := strings.Repeat("m", MaxMessageLength+1)
	if got := Message(long); len([]rune(got)) != MaxMessageLength {
		t.Errorf("expected message capped at %d runes, got %d", MaxMessageLength, len([]rune(got)))
	}
	if got := Message(""); got != "" {
		t.Errorf("Message(\"\") = %q, want empty", got)
	}
}
