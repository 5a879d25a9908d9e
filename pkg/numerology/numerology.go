// Package numerology derives a display profile from a person's full name
// using the Pythagorean letter table. The three scores are a pure function
// of the letters A-Z in the input; everything else is stripped.
package numerology

import "strings"

// Profile is the derived numerology reading for a name. It is never
// persisted; identical input always produces an identical profile.
type Profile struct {
	ExpressionNumber   int    `json:"expressionNumber"`
	ExpressionMeaning  string `json:"expressionMeaning"`
	SoulUrgeNumber     int    `json:"soulUrgeNumber"`
	SoulUrgeMeaning    string `json:"soulUrgeMeaning"`
	PersonalityNumber  int    `json:"personalityNumber"`
	PersonalityMeaning string `json:"personalityMeaning"`
}

// letterValue maps A-Z to 1-9 using the Pythagorean table: the alphabet
// cycles through 1..9 (A-I, J-R, S-Z with the last group short).
func letterValue(c byte) int {
	return int(c-'A')%9 + 1
}

func isVowel(c byte) bool {
	switch c {
	case 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}

// cleanName uppercases the input and drops every character outside A-Z.
// Non-Latin characters are silently dropped rather than rejected.
func cleanName(fullName string) string {
	upper := strings.ToUpper(fullName)
	var b strings.Builder
	for i := 0; i < len(upper); i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			b.WriteByte(upper[i])
		}
	}
	return b.String()
}

// Reduce folds a sum down to a single digit by repeated digit summing.
// The master numbers 11, 22 and 33 stop the reduction at any point and are
// preserved as final values; they are the only multi-digit outputs.
//
// A sum of zero (name with no letters) reduces to 0, which is outside the
// meaning tables and resolves to the generic fallback text.
func Reduce(n int) int {
	for n > 9 {
		if n == 11 || n == 22 || n == 33 {
			return n
		}
		sum := 0
		for n > 0 {
			sum += n % 10
			n /= 10
		}
		n = sum
	}
	return n
}

// Analyze computes the expression (all letters), soul-urge (vowels) and
// personality (consonants) numbers for a full name, with meaning text for
// each. Case, whitespace and punctuation never affect the result.
func Analyze(fullName string) Profile {
	letters := cleanName(fullName)

	var expressionSum, soulUrgeSum, personalitySum int
	for i := 0; i < len(letters); i++ {
		v := letterValue(letters[i])
		expressionSum += v
		if isVowel(letters[i]) {
			soulUrgeSum += v
		} else {
			personalitySum += v
		}
	}

	expression := Reduce(expressionSum)
	soulUrge := Reduce(soulUrgeSum)
	personality := Reduce(personalitySum)

	return Profile{
		ExpressionNumber:   expression,
		ExpressionMeaning:  meaningFor(expressionMeanings, expression),
		SoulUrgeNumber:     soulUrge,
		SoulUrgeMeaning:    meaningFor(soulUrgeMeanings, soulUrge),
		PersonalityNumber:  personality,
		PersonalityMeaning: meaningFor(personalityMeanings, personality),
	}
}
