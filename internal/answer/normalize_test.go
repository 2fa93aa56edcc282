package answer

import "testing"

func TestNormalizePercentage(t *testing.T) {
	v := Normalize("14.1%")
	if v.Kind() != KindPercent || v.Value() != 14.1 {
		t.Fatalf("got %#v, want percent 14.1", v)
	}
}

func TestNormalizePercentWord(t *testing.T) {
	v := Normalize("about 6.1 percent")
	if v.Kind() != KindPercent || v.Value() != 6.1 {
		t.Fatalf("got %#v, want percent 6.1", v)
	}
}

func TestNormalizeCurrencyWithScale(t *testing.T) {
	v := Normalize("$1,878 million")
	if v.Kind() != KindNumber || v.Value() != 1878000000 {
		t.Fatalf("got %#v, want number 1878000000", v)
	}
}

func TestNormalizeScaleSuffixes(t *testing.T) {
	cases := map[string]float64{
		"2.5 billion": 2.5e9,
		"3 thousand":  3000,
		"4.2b":        4.2e9,
		"7k":          7000,
	}
	for raw, want := range cases {
		v := Normalize(raw)
		if v.Kind() != KindNumber || v.Value() != want {
			t.Errorf("Normalize(%q) = %#v, want number %v", raw, v, want)
		}
	}
}

func TestNormalizeNegatives(t *testing.T) {
	if v := Normalize("-49.8%"); v.Kind() != KindPercent || v.Value() != -49.8 {
		t.Fatalf("got %#v, want percent -49.8", v)
	}
	if v := Normalize("($1,234)"); v.Kind() != KindNumber || v.Value() != -1234 {
		t.Fatalf("got %#v, want number -1234", v)
	}
}

func TestNormalizeMarkupStripped(t *testing.T) {
	if v := Normalize("**$260,174**"); v.Kind() != KindNumber || v.Value() != 260174 {
		t.Fatalf("got %#v, want number 260174", v)
	}
}

func TestNormalizeFallback(t *testing.T) {
	v := Normalize("  The Company's auditors, at large!  ")
	if v.Kind() != KindText {
		t.Fatalf("got %#v, want text fallback", v)
	}
	if v.Text() != "the companys auditors at large" {
		t.Fatalf("unexpected cleaned text %q", v.Text())
	}
	if Normalize("").Kind() != KindText {
		t.Fatal("empty input must fall back to text")
	}
}

func TestNormalizeNeverPanics(t *testing.T) {
	inputs := []string{"", "%", "$", "()", "((", "million", "-.", "..", "-%"}
	for _, raw := range inputs {
		_ = Normalize(raw)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"14.1%", "$1,878 million", "-49.8%", "260174", "($12.5)",
		"2.5 billion", "no numbers here", "",
	}
	for _, raw := range inputs {
		once := Normalize(raw)
		again := Normalize(once.String())
		if once != again {
			t.Errorf("Normalize(%q): %#v != re-normalized %#v", raw, once, again)
		}
	}
}

func TestDigits(t *testing.T) {
	if got := Digits("1,878.4%"); got != "18784" {
		t.Fatalf("got %q, want 18784", got)
	}
	if got := Digits("no digits"); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}
