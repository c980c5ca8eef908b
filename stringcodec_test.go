package toon

import "testing"

func TestNeedsQuoting(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		desc string
		s    string
		want bool
	}{
		{desc: "Empty", s: "", want: true},
		{desc: "Plain", s: "hello", want: false},
		{desc: "LeadingSpace", s: " hello", want: true},
		{desc: "TrailingSpace", s: "hello ", want: true},
		{desc: "ContainsColon", s: "a:b", want: true},
		{desc: "ContainsDelimiter", s: "a,b", want: true},
		{desc: "ContainsBracket", s: "a[b", want: true},
		{desc: "ContainsBrace", s: "a{b", want: true},
		{desc: "ContainsHash", s: "a#b", want: true},
		{desc: "LooksLikeNull", s: "null", want: true},
		{desc: "LooksLikeBool", s: "true", want: true},
		{desc: "LooksLikeNumber", s: "123", want: true},
		{desc: "NotANumber", s: "12a", want: false},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			if got := needsQuoting(tc.s, DelimiterComma); got != tc.want {
				t.Errorf("needsQuoting(%q) = %v, want %v", tc.s, got, tc.want)
			}
		})
	}
}

func TestQuoteAndUnquoteRoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []string{
		"hello",
		"line1\nline2",
		`has "quotes"`,
		"tab\tseparated",
		"Hello 👋 世界",
		`back\slash`,
	} {
		quoted := quoteString(s)
		got, consumed, err := unquoteString(quoted, 1)
		if err != nil {
			t.Fatalf("unquoteString(%q) failed: %s", quoted, err)
		}
		if consumed != len(quoted) {
			t.Errorf("unquoteString(%q) consumed %d, want %d", quoted, consumed, len(quoted))
		}
		if got != s {
			t.Errorf("round-trip of %q via %q produced %q", s, quoted, got)
		}
	}
}

func TestUnquoteStringErrors(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		desc     string
		in       string
		wantKind ErrorKind
	}{
		{desc: "Unterminated", in: `"abc`, wantKind: KindUnterminatedString},
		{desc: "UnterminatedAfterEscape", in: `"abc\`, wantKind: KindUnterminatedString},
		{desc: "InvalidEscape", in: "\"\\u0048\"", wantKind: KindInvalidEscape},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			_, _, err := unquoteString(tc.in, 1)
			if err == nil {
				t.Fatalf("unquoteString(%q) succeeded, want error", tc.in)
			}
			if err.Kind != tc.wantKind {
				t.Errorf("unquoteString(%q) kind = %v, want %v", tc.in, err.Kind, tc.wantKind)
			}
		})
	}
}
