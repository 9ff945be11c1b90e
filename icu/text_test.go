package icu

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseEscapes(t *testing.T) {
	tests := []struct {
		input string
		want  Message
	}{
		{"'{1}'", Message{Text{"{1}"}}},
		{"''", Message{Text{"'"}}},
		{"{0} {1} {2}", Message{Variable{ID: "0"}, Text{" "}, Variable{ID: "1"}, Text{" "}, Variable{ID: "2"}}},
		{"{0} '{1}' {2}", Message{Variable{ID: "0"}, Text{" {1} "}, Variable{ID: "2"}}},
		{"{0} ''{1}'' {2}", Message{Variable{ID: "0"}, Text{" '"}, Variable{ID: "1"}, Text{"' "}, Variable{ID: "2"}}},
		{"{0} '''{1}''' {2}", Message{Variable{ID: "0"}, Text{" '{1}' "}, Variable{ID: "2"}}},
		{"{0} '{1} {2}", Message{Variable{ID: "0"}, Text{" {1} {2}"}}},
		{"{0} ''{1} {2}", Message{Variable{ID: "0"}, Text{" '"}, Variable{ID: "1"}, Text{" "}, Variable{ID: "2"}}},
		{"So, '{Mike''s Test}' is real.", Message{Text{"So, {Mike's Test} is real."}}},
		{"You've done it now, {name}.", Message{Text{"You've done it now, "}, Variable{ID: "name"}, Text{"."}}},
		{"trailing '", Message{Text{"trailing '"}}},
		{"'#' stays", Message{Text{"'#' stays"}}},
		{"{'a b'}", Message{Variable{ID: "a b"}}},
		{"{n, number, 'x,y''}", Message{Variable{ID: "n", Type: "number", Format: "'x,y'"}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := mustParse(t, tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParsePlainTextIdentity(t *testing.T) {
	inputs := []string{
		"hello",
		"multi\nline\ttext",
		"punctuation: .;!?",
		"numbers 12345 and # outside plurals",
		"Grüße, 世界",
		"a > b and c / d",
	}

	for _, input := range inputs {
		got := mustParse(t, input)
		if diff := cmp.Diff(Message{Text{input}}, got); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", input, diff)
		}
	}
}

func TestIsSpace(t *testing.T) {
	tests := []struct {
		r    rune
		want bool
	}{
		{' ', true},
		{'\t', true},
		{'\n', true},
		{'\u00A0', true},
		{'\u2008', true},
		{'\u3000', true},
		{'\uFEFF', true},
		{'\u0085', false},
		{'\u200B', false},
		{'x', false},
	}
	for _, tt := range tests {
		if got := IsSpace(tt.r); got != tt.want {
			t.Errorf("IsSpace(%U) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestParseNextLineIsNotSpace(t *testing.T) {
	got := mustParse(t, "{a\u0085}")
	if diff := cmp.Diff(Message{Variable{ID: "a\u0085"}}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
