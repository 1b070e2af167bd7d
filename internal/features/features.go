// Package features turns raw text into the symbolic token set the
// classifier trains on. Extraction is deterministic and pure: the same
// text always yields the same set, and no token carries positional meaning.
package features

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	allDigitsRE      = regexp.MustCompile(`^\d+$`)
	dateRE           = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dateCompactRE    = regexp.MustCompile(`^\d{8}$`)
	alnumDashRE      = regexp.MustCompile(`^[A-Z0-9-]+$`)
	alnumRE          = regexp.MustCompile(`^[A-Z0-9]+$`)
	lettersDigitsRE  = regexp.MustCompile(`^[A-Z]+\d+$`)
	digitsLettersRE  = regexp.MustCompile(`^\d+[A-Z]+$`)
	allUpperRE       = regexp.MustCompile(`^[A-Z]+$`)
	allLowerRE       = regexp.MustCompile(`^[a-z]+$`)
	titleCaseRE      = regexp.MustCompile(`^[A-Z][a-z]+$`)
	upperRE          = regexp.MustCompile(`[A-Z]`)
	lowerRE          = regexp.MustCompile(`[a-z]`)
	specialCharsRE   = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
	allChineseRE     = regexp.MustCompile(`^[\x{4e00}-\x{9fa5}]+$`)
	hasChineseRE     = regexp.MustCompile(`[\x{4e00}-\x{9fa5}]`)
	digitRunRE       = regexp.MustCompile(`\d+`)
	wordSplitRE      = regexp.MustCompile(`[\s\-_./\\:,;!?]+`)
)

// Extract returns the deduplicated union of all sub-extractor tokens for a
// text. The result order is unspecified; callers treating it as a set must
// not rely on it.
func Extract(text string) []string {
	set := make(map[string]struct{})
	add := func(tokens []string) {
		for _, t := range tokens {
			set[t] = struct{}{}
		}
	}

	add(characterTokens(text))
	add(ngramTokens(text, 2, 4))
	add(wordTokens(text))
	add(patternTokens(text))
	add(positionTokens(text))

	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	return out
}

// patternTokens covers length buckets and whole-string shape flags.
func patternTokens(text string) []string {
	var features []string
	runes := []rune(text)
	n := len(runes)

	switch {
	case n <= 5:
		features = append(features, "VERY_SHORT")
	case n <= 10:
		features = append(features, "SHORT")
	case n <= 20:
		features = append(features, "MEDIUM")
	case n <= 50:
		features = append(features, "LONG")
	default:
		features = append(features, "VERY_LONG")
	}

	if allDigitsRE.MatchString(text) {
		features = append(features, "ALL_DIGITS")
		if n >= 4 && n <= 20 {
			features = append(features, fmt.Sprintf("DIGITS_%d", n))
		}
	}
	if dateRE.MatchString(text) {
		features = append(features, "DATE_FORMAT")
	}
	if dateCompactRE.MatchString(text) {
		features = append(features, "DATE_COMPACT")
	}

	upper := strings.ToUpper(text)
	if alnumDashRE.MatchString(upper) {
		features = append(features, "ALPHANUMERIC_DASH")
	}
	if alnumRE.MatchString(upper) {
		features = append(features, "ALPHANUMERIC")
	}
	if lettersDigitsRE.MatchString(upper) {
		features = append(features, "LETTERS_THEN_DIGITS")
	}
	if digitsLettersRE.MatchString(upper) {
		features = append(features, "DIGITS_THEN_LETTERS")
	}

	for mark, feature := range map[string]string{
		"-": "HAS_DASH", "_": "HAS_UNDERSCORE", ".": "HAS_DOT",
		"/": "HAS_SLASH", ":": "HAS_COLON", " ": "HAS_SPACE",
	} {
		if strings.Contains(text, mark) {
			features = append(features, feature)
		}
	}

	if allUpperRE.MatchString(text) {
		features = append(features, "ALL_UPPERCASE")
	}
	if allLowerRE.MatchString(text) {
		features = append(features, "ALL_LOWERCASE")
	}
	if titleCaseRE.MatchString(text) {
		features = append(features, "TITLE_CASE")
	}
	if upperRE.MatchString(text) && lowerRE.MatchString(text) {
		features = append(features, "MIXED_CASE")
	}

	// RE2 has no backreferences, so the run and repetition checks are
	// done by hand.
	if hasRepeatedRun(runes, 3) {
		features = append(features, "HAS_REPEATED_CHARS")
	}
	if isWholeRepetition(runes) {
		features = append(features, "REPEATING_PATTERN")
	}

	if specialCharsRE.MatchString(text) {
		features = append(features, "HAS_SPECIAL_CHARS")
	}
	if allChineseRE.MatchString(text) {
		features = append(features, "ALL_CHINESE")
	}
	if hasChineseRE.MatchString(text) {
		features = append(features, "HAS_CHINESE")
	}

	return features
}

// characterTokens covers character-class proportions and the first/last
// character class.
func characterTokens(text string) []string {
	var features []string
	runes := []rune(text)
	total := len(runes)
	if total == 0 {
		return nil
	}

	var digits, letters, spaces, specials int
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r >= 'a' && r <= 'z':
			letters++
		case r == ' ':
			spaces++
		case !unicode.IsSpace(r):
			specials++
		}
	}

	if float64(digits)/float64(total) > 0.5 {
		features = append(features, "MOSTLY_DIGITS")
	}
	if float64(letters)/float64(total) > 0.5 {
		features = append(features, "MOSTLY_LETTERS")
	}
	if float64(spaces)/float64(total) > 0.1 {
		features = append(features, "MANY_SPACES")
	}
	if float64(specials)/float64(total) > 0.1 {
		features = append(features, "MANY_SPECIAL")
	}

	first, last := runes[0], runes[total-1]
	if unicode.IsDigit(first) {
		features = append(features, "STARTS_WITH_DIGIT")
	}
	if isASCIILetter(first) {
		features = append(features, "STARTS_WITH_LETTER")
	}
	if unicode.IsDigit(last) {
		features = append(features, "ENDS_WITH_DIGIT")
	}
	if isASCIILetter(last) {
		features = append(features, "ENDS_WITH_LETTER")
	}

	return features
}

// ngramTokens emits lower-cased character n-grams tagged with their length
// so a 2-gram and a 3-gram sharing a prefix never collide.
func ngramTokens(text string, minN, maxN int) []string {
	var ngrams []string
	runes := []rune(strings.ToLower(text))

	for n := minN; n <= maxN; n++ {
		for i := 0; i+n <= len(runes); i++ {
			ngrams = append(ngrams, fmt.Sprintf("NGRAM_%d_%s", n, string(runes[i:i+n])))
		}
	}
	return ngrams
}

// wordTokens splits on whitespace and common delimiters, keeping words up
// to 15 characters, plus a word-count bucket.
func wordTokens(text string) []string {
	var tokens []string

	var words []string
	for _, w := range wordSplitRE.Split(strings.ToLower(text), -1) {
		if len(w) > 0 {
			words = append(words, w)
		}
	}

	for _, w := range words {
		if len([]rune(w)) <= 15 {
			tokens = append(tokens, "WORD_"+w)
		}
	}

	switch {
	case len(words) == 1:
		tokens = append(tokens, "SINGLE_WORD")
	case len(words) <= 3:
		tokens = append(tokens, "FEW_WORDS")
	case len(words) <= 10:
		tokens = append(tokens, "MANY_WORDS")
	default:
		tokens = append(tokens, "VERY_MANY_WORDS")
	}

	return tokens
}

// positionTokens flags where digits sit in the text and buckets the length
// of every maximal digit run.
func positionTokens(text string) []string {
	var features []string
	runes := []rune(text)

	firstDigit, lastDigit := -1, -1
	for i, r := range runes {
		if unicode.IsDigit(r) {
			if firstDigit == -1 {
				firstDigit = i
			}
			lastDigit = i
		}
	}

	if firstDigit != -1 {
		if firstDigit == 0 {
			features = append(features, "DIGITS_AT_START")
		}
		if lastDigit == len(runes)-1 {
			features = append(features, "DIGITS_AT_END")
		}
		if firstDigit > 0 && lastDigit < len(runes)-1 {
			features = append(features, "DIGITS_IN_MIDDLE")
		}
	}

	for _, run := range digitRunRE.FindAllString(text, -1) {
		switch len(run) {
		case 1:
		case 2:
			features = append(features, "TWO_DIGIT_SEGMENT")
		case 3:
			features = append(features, "THREE_DIGIT_SEGMENT")
		case 4:
			features = append(features, "FOUR_DIGIT_SEGMENT")
		default:
			features = append(features, "LONG_DIGIT_SEGMENT")
		}
	}

	return features
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// hasRepeatedRun reports whether the text contains minRun or more identical
// consecutive runes.
func hasRepeatedRun(runes []rune, minRun int) bool {
	run := 1
	for i := 1; i < len(runes); i++ {
		if runes[i] == runes[i-1] {
			run++
			if run >= minRun {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}

// isWholeRepetition reports whether the text is two or more repetitions of
// one of its prefixes, e.g. "abab" or "aaa".
func isWholeRepetition(runes []rune) bool {
	n := len(runes)
	for period := 1; period <= n/2; period++ {
		if n%period != 0 {
			continue
		}
		match := true
		for i := period; i < n; i++ {
			if runes[i] != runes[i-period] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
