package answer

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	numberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
	parenNegative = regexp.MustCompile(`\(\s*\$?\s*\d+(?:\.\d+)?\s*\)`)
	percentWords  = regexp.MustCompile(`\bpercent(age)?\b`)
	scalePattern  = regexp.MustCompile(`^\s*(thousand|million|billion|k|m|b|bn|mm)\b`)
	textCleaner   = regexp.MustCompile(`[^\w\s]`)
	spaceRuns     = regexp.MustCompile(`\s+`)
)

var scaleFactors = map[string]float64{
	"thousand": 1e3,
	"k":        1e3,
	"million":  1e6,
	"m":        1e6,
	"mm":       1e6,
	"billion":  1e9,
	"b":        1e9,
	"bn":       1e9,
}

// Normalize parses a raw answer or ground-truth string into its canonical
// form. Currency symbols, thousands separators, and markup are stripped; a
// percent sign (or the word "percent") tags the value as a percentage; scale
// words multiply the magnitude so "$1,878 million" and "1878000000" normalize
// identically. Input with no numeric content degrades to a text fallback.
func Normalize(raw string) NormalizedValue {
	cleaned := stripMarkup(raw)
	lower := strings.ToLower(cleaned)

	negative := parenNegative.MatchString(cleaned)

	loc := numberPattern.FindStringIndex(lower)
	if loc == nil {
		return Text(cleanText(lower))
	}

	magnitude, err := strconv.ParseFloat(lower[loc[0]:loc[1]], 64)
	if err != nil {
		return Text(cleanText(lower))
	}
	if negative && magnitude > 0 {
		magnitude = -magnitude
	}

	rest := lower[loc[1]:]
	if m := scalePattern.FindStringSubmatch(rest); m != nil {
		magnitude *= scaleFactors[m[1]]
	}

	if isPercent(lower) {
		return Percent(magnitude)
	}
	return Number(magnitude)
}

func isPercent(lower string) bool {
	return strings.Contains(lower, "%") || percentWords.MatchString(lower)
}

// stripMarkup removes currency symbols, thousands separators, and the
// formatting characters models tend to wrap answers in.
func stripMarkup(raw string) string {
	s := strings.TrimSpace(raw)
	replacer := strings.NewReplacer(
		"$", "",
		"€", "",
		"£", "",
		",", "",
		"**", "",
		"`", "",
		"\"", "",
	)
	return replacer.Replace(s)
}

// cleanText is the fallback cleanup: lowercase, punctuation removed,
// whitespace collapsed. Applying it twice yields the same string, which keeps
// normalization idempotent.
func cleanText(lower string) string {
	s := textCleaner.ReplaceAllString(lower, "")
	s = spaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Digits strips a string down to its digit characters. The classifier uses it
// to detect answers that carry the right figures in an unparseable shape.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
