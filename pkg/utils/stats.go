/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: stats.go
Description: Numeric and text primitives for the Akaylee Bayes engine. Provides
summation, average, sample variance, overlapping n-gram extraction, and identifier
normalization used by the model and training layers.
*/

package utils

import (
	"strings"
	"unicode"
)

// Sum returns the sum of all values
func Sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// Average returns the arithmetic mean of the values
// Returns 0 for an empty slice
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return Sum(values) / float64(len(values))
}

// Variance returns the sample variance of the values (n-1 denominator)
// Returns 0 when fewer than two values are present
func Variance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Average(values)
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return sq / float64(len(values)-1)
}

// NGrams decomposes a string into its overlapping n-grams with stride 1
// A string of length L yields L-n+1 grams in order; if L < n the result is empty.
// Duplicates are preserved so callers see the full decomposition.
func NGrams(s string, n int) []string {
	if n <= 0 {
		return nil
	}
	runes := []rune(s)
	if len(runes) < n {
		return []string{}
	}
	grams := make([]string, 0, len(runes)-n+1)
	for i := 0; i+n <= len(runes); i++ {
		grams = append(grams, string(runes[i:i+n]))
	}
	return grams
}

// NormalizeName canonicalizes an identifier for use as a variable or state name
// Lowercases the input and collapses runs of non-alphanumeric characters into
// single underscores, trimming any leading or trailing underscore.
func NormalizeName(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore && b.Len() > 0 {
			b.WriteRune('_')
			lastUnderscore = true
		}
	}
	return strings.TrimRight(b.String(), "_")
}
