package icu

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Message
	}{
		{
			name:  "simple",
			input: "<b>hi</b>",
			want:  Message{Tag{Name: "b", Children: Message{Text{"hi"}}}},
		},
		{
			name:  "solitary opener",
			input: "hi <",
			want:  Message{Text{"hi <"}},
		},
		{
			name:  "self-closing",
			input: "hi <user-tag/>!",
			want:  Message{Text{"hi "}, Tag{Name: "user-tag"}, Text{"!"}},
		},
		{
			name:  "self-closing with space",
			input: "hi <user-tag />!",
			want:  Message{Text{"hi "}, Tag{Name: "user-tag"}, Text{"!"}},
		},
		{
			name:  "empty",
			input: "hi <user-tag></user-tag>!",
			want:  Message{Text{"hi "}, Tag{Name: "user-tag"}, Text{"!"}},
		},
		{
			name:  "tag characters in text",
			input: "i <3 you>",
			want:  Message{Text{"i <3 you>"}},
		},
		{
			name:  "spaces in tags",
			input: "<3 >Hi</3>",
			want:  Message{Tag{Name: "3", Children: Message{Text{"Hi"}}}},
		},
		{
			name:  "nested",
			input: "<b><i>hi</i></b>",
			want: Message{Tag{Name: "b", Children: Message{
				Tag{Name: "i", Children: Message{Text{"hi"}}},
			}}},
		},
		{
			name:  "quoted name",
			input: "<'/b' />",
			want:  Message{Tag{Name: "/b"}},
		},
		{
			name:  "escaped tags",
			input: "'<notATag>hello</notATag>'",
			want:  Message{Text{"<notATag>hello</notATag>"}},
		},
		{
			name:  "placeholders inside tags",
			input: "Our price is <boldThis>{price, number, ::currency/USD precision-integer}</boldThis> with <link>{pct, number, ::percent} discount</link>",
			want: Message{
				Text{"Our price is "},
				Tag{Name: "boldThis", Children: Message{
					Variable{ID: "price", Type: "number", Format: "::currency/USD precision-integer"},
				}},
				Text{" with "},
				Tag{Name: "link", Children: Message{
					Variable{ID: "pct", Type: "number", Format: "::percent"},
					Text{" discount"},
				}},
			},
		},
		{
			name:  "tags inside sub-messages",
			input: "{n, plural, one{<b>one</b>} other{<i/> many}}",
			want: Message{Variable{
				ID:   "n",
				Type: "plural",
				Options: Options{
					{"one", Message{Tag{Name: "b", Children: Message{Text{"one"}}}}},
					{"other", Message{Tag{Name: "i"}, Text{" many"}}},
				},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParse(t, tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseTagErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<b>hi there", "expected closing tag at position 11 but found eof"},
		{"<b>hi</b/>", "expected >"},
		{"hi</b>", "unexpected / at position 3"},
		{"<b><i>hi</b></i>", "unexpected tag mismatch at position 8"},
		{"<b>a}b</b>", "expected closing tag at position 4 but found }"},
		{"{n, select, other{</b>}}", "unexpected /"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			var synErr *SyntaxError
			if !errors.As(err, &synErr) {
				t.Fatalf("Parse(%q): expected *SyntaxError, got %v", tt.input, err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse(%q) error = %q, want it to contain %q", tt.input, err.Error(), tt.want)
			}
		})
	}
}
