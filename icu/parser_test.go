package icu

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func intPtr(i int) *int {
	return &i
}

func mustParse(t *testing.T, input string) Message {
	t.Helper()
	msg, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q): %v", input, err)
	}
	return msg
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Message
	}{
		{
			name:  "plain text",
			input: "This is a test.",
			want:  Message{Text{"This is a test."}},
		},
		{
			name:  "unicode",
			input: "中文",
			want:  Message{Text{"中文"}},
		},
		{
			name:  "variable",
			input: "This is a {test}.",
			want:  Message{Text{"This is a "}, Variable{ID: "test"}, Text{"."}},
		},
		{
			name:  "greeting",
			input: "Hello, {name}!",
			want:  Message{Text{"Hello, "}, Variable{ID: "name"}, Text{"!"}},
		},
		{
			name:  "variable with type",
			input: "{test, number}",
			want:  Message{Variable{ID: "test", Type: "number"}},
		},
		{
			name:  "variable with type and format",
			input: "{ test,    number, percent }",
			want:  Message{Variable{ID: "test", Type: "number", Format: "percent"}},
		},
		{
			name:  "format keeps inner spaces",
			input: "{price, number, ::currency/USD precision-integer}",
			want:  Message{Variable{ID: "price", Type: "number", Format: "::currency/USD precision-integer"}},
		},
		{
			name:  "lone closer is text",
			input: "}",
			want:  Message{Text{"}"}},
		},
		{
			name:  "closers merge with text",
			input: "a}b}",
			want:  Message{Text{"a}b}"}},
		},
		{
			name:  "tag opener before space is text",
			input: "a < b",
			want:  Message{Text{"a < b"}},
		},
		{
			name:  "tag opener before tab is text",
			input: "a <\tb",
			want:  Message{Text{"a <\tb"}},
		},
		{
			name:  "tag opener before space in format",
			input: "{n, number, a < b}",
			want:  Message{Variable{ID: "n", Type: "number", Format: "a < b"}},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
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

func TestParseSubmessages(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Message
	}{
		{
			name:  "plural",
			input: "{test, plural, one{one test} other {# test} }",
			want: Message{Variable{
				ID:   "test",
				Type: "plural",
				Options: Options{
					{"one", Message{Text{"one test"}}},
					{"other", Message{NumberRef{"test"}, Text{" test"}}},
				},
			}},
		},
		{
			name:  "plural with offset",
			input: "{test, plural, offset:3 one{one test} other {# test} }",
			want: Message{Variable{
				ID:     "test",
				Type:   "plural",
				Offset: intPtr(3),
				Options: Options{
					{"one", Message{Text{"one test"}}},
					{"other", Message{NumberRef{"test"}, Text{" test"}}},
				},
			}},
		},
		{
			name:  "plural with exact selector and offset",
			input: "{n, plural, offset:1 =0{none} other{# left}}",
			want: Message{Variable{
				ID:     "n",
				Type:   "plural",
				Offset: intPtr(1),
				Options: Options{
					{"=0", Message{Text{"none"}}},
					{"other", Message{NumberRef{"n"}, Text{" left"}}},
				},
			}},
		},
		{
			name:  "negative offset",
			input: "{test, plural, offset:-3 =-2{thingy} other {# test} }",
			want: Message{Variable{
				ID:     "test",
				Type:   "plural",
				Offset: intPtr(-3),
				Options: Options{
					{"=-2", Message{Text{"thingy"}}},
					{"other", Message{NumberRef{"test"}, Text{" test"}}},
				},
			}},
		},
		{
			name:  "zero offset is kept",
			input: "{n, plural, offset:0 other{#}}",
			want: Message{Variable{
				ID:      "n",
				Type:    "plural",
				Offset:  intPtr(0),
				Options: Options{{"other", Message{NumberRef{"n"}}}},
			}},
		},
		{
			name:  "selectordinal",
			input: "{test, selectordinal, one{one test} other {# test} }",
			want: Message{Variable{
				ID:   "test",
				Type: "selectordinal",
				Options: Options{
					{"one", Message{Text{"one test"}}},
					{"other", Message{NumberRef{"test"}, Text{" test"}}},
				},
			}},
		},
		{
			name:  "select",
			input: "{test, select, first {yes} second {false} other {maybe}}",
			want: Message{Variable{
				ID:   "test",
				Type: "select",
				Options: Options{
					{"first", Message{Text{"yes"}}},
					{"second", Message{Text{"false"}}},
					{"other", Message{Text{"maybe"}}},
				},
			}},
		},
		{
			name:  "hash is literal in select",
			input: "{n, select, other{#}}",
			want: Message{Variable{
				ID:      "n",
				Type:    "select",
				Options: Options{{"other", Message{Text{"#"}}}},
			}},
		},
		{
			name:  "quoted hash in plural",
			input: "{n, plural, other{'#'}}",
			want: Message{Variable{
				ID:      "n",
				Type:    "plural",
				Options: Options{{"other", Message{Text{"#"}}}},
			}},
		},
		{
			name:  "duplicate selector keeps first position",
			input: "{g, select, a{1} other{2} a{3}}",
			want: Message{Variable{
				ID:   "g",
				Type: "select",
				Options: Options{
					{"a", Message{Text{"3"}}},
					{"other", Message{Text{"2"}}},
				},
			}},
		},
		{
			name:  "empty sub-message",
			input: "{n, select, other{}}",
			want: Message{Variable{
				ID:      "n",
				Type:    "select",
				Options: Options{{"other", nil}},
			}},
		},
		{
			name:  "unicode whitespace",
			input: "{gender, select,\n\t\t\t\u202Fmale {{He}}\n\t\t\t\u205Ffemale {{She}}\n\t\t\t\u2008other{{They}}}",
			want: Message{Variable{
				ID:   "gender",
				Type: "select",
				Options: Options{
					{"male", Message{Variable{ID: "He"}}},
					{"female", Message{Variable{ID: "She"}}},
					{"other", Message{Variable{ID: "They"}}},
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

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"{}", "expected placeholder id at position 1 but found }"},
		{"{n", "expected , or } at position 2 but found eof"},
		{"{n,number", "expected , or }"},
		{"{n,number,short", "expected } at position 15 but found eof"},
		{"({n,plural,other{# test}", "expected }"},
		{"{n{", "expected , or }"},
		{"{n,{", "expected type"},
		{"{n,n{", "expected , or }"},
		{"{n,n,{", "expected format"},
		{"{n,}", "expected type"},
		{"{n,n,}", "expected format"},
		{"{n,select}", "expected sub-messages"},
		{"{n,selectordinal}", "expected sub-messages"},
		{"{n,plural}", "expected sub-messages"},
		{"{n,select,this thing}", "expected {"},
		{"{n,select,this {thing", "expected }"},
		{"{n,select,=0 {test}}", "expected other sub-message"},
		{"{n,selectordinal,=0 {test}}", "expected other sub-message"},
		{"{n,plural,=0 {test}}", "expected other sub-message"},
		{"{test,plural,one{}}", "expected other sub-message"},
		{"{n,select,x{y}}", "expected other sub-message"},
		{"{n,select,{n}", "expected sub-message selector"},
		{"{n,selectordinal,{n}", "expected sub-message selector"},
		{"{n,plural,{n}", "expected sub-message selector"},
		{"{n,plural,offset: other{n}", "expected number at position 18 but found o"},
		{"{n,plural,offset:- other{n}", "expected number"},
		{"{n, number, 'x,y'}", "expected } at position 18 but found eof"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q): expected error", tt.input)
			}
			var synErr *SyntaxError
			if !errors.As(err, &synErr) {
				t.Fatalf("expected *SyntaxError, got %T", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse(%q) error = %q, want it to contain %q", tt.input, err.Error(), tt.want)
			}
		})
	}
}

func TestParseCoercesInput(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  Message
	}{
		{"float", 12.34, Message{Text{"12.34"}}},
		{"int", 42, Message{Text{"42"}}},
		{"bool", true, Message{Text{"true"}}},
		{"bytes", []byte("{x}"), Message{Variable{ID: "x"}}},
		{"runes", []rune("a{x}"), Message{Text{"a"}, Variable{ID: "x"}}},
		{"error", errors.New("oops"), Message{Text{"oops"}}},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.value)
			if err != nil {
				t.Fatalf("Parse(%v): %v", tt.value, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}

			viaString, err := Parse(Stringify(tt.value))
			if err != nil {
				t.Fatalf("Parse(Stringify(%v)): %v", tt.value, err)
			}
			if diff := cmp.Diff(viaString, got); diff != "" {
				t.Errorf("Parse(x) differs from Parse(Stringify(x)):\n%s", diff)
			}
		})
	}
}

func TestParseNilStringer(t *testing.T) {
	var value *time.Time

	if got, want := Stringify(value), fmt.Sprint(value); got != want {
		t.Errorf("Stringify = %q, fmt.Sprint = %q", got, want)
	}

	s := DefaultSymbols()
	s.AllowTags = false
	p, err := NewParser(s)
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	got, err := p.Parse(value)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if diff := cmp.Diff(Message{Text{"<nil>"}}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	// with tags enabled "<nil>" is an unclosed tag
	if _, err := Parse(value); err == nil {
		t.Error("expected unclosed tag error")
	}
}

func TestParseCustomSymbols(t *testing.T) {
	s := DefaultSymbols()
	s.Open = "("
	s.Close = ")"
	p, err := NewParser(s)
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}

	got, err := p.ParseString("Hello, (name)! {not a var}")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	want := Message{Text{"Hello, "}, Variable{ID: "name"}, Text{"! {not a var}"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseWithoutTags(t *testing.T) {
	s := DefaultSymbols()
	s.AllowTags = false
	p, err := NewParser(s)
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}

	got, err := p.ParseString("<b>hi</b>")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if diff := cmp.Diff(Message{Text{"<b>hi</b>"}}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseNestingLimit(t *testing.T) {
	s := DefaultSymbols()
	s.MaxDepth = 8
	p, err := NewParser(s)
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}

	ok := strings.Repeat("<a>", 8) + "x" + strings.Repeat("</a>", 8)
	if _, err := p.ParseString(ok); err != nil {
		t.Fatalf("ParseString at the limit: %v", err)
	}

	deep := strings.Repeat("<a>", 9) + "x" + strings.Repeat("</a>", 9)
	_, err = p.ParseString(deep)
	if !errors.Is(err, ErrTooDeep) {
		t.Fatalf("expected ErrTooDeep, got %v", err)
	}

	nested := "x"
	for i := 0; i < 9; i++ {
		nested = "{n, select, other{" + nested + "}}"
	}
	if _, err := p.ParseString(nested); !errors.Is(err, ErrTooDeep) {
		t.Fatalf("expected ErrTooDeep for nested placeholders, got %v", err)
	}
}

func TestParserConcurrentUse(t *testing.T) {
	p, err := NewParser(DefaultSymbols())
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}

	input := "{n, plural, offset:1 =0{none} other{<b>#</b> left}}"
	want, err := p.ParseString(input)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				got, err := p.ParseString(input)
				if err != nil {
					errs <- err.Error()
					return
				}
				if diff := cmp.Diff(want, got); diff != "" {
					errs <- diff
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for e := range errs {
		t.Error(e)
	}
}

func TestPlaceholders(t *testing.T) {
	msg := mustParse(t, "{a} <b>{c, number}</b> {n, plural, other{# {d}}} {a}")
	got := Placeholders(msg)
	want := []string{"a", "c", "n", "d"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Placeholders mismatch (-want +got):\n%s", diff)
	}
}
