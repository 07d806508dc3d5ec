/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: stats_test.go
Description: Tests for the numeric and text primitives. Covers summation,
averages, sample variance, overlapping n-gram extraction, and identifier
normalization.
*/

package utils_test

import (
	"testing"

	"github.com/kleascm/akaylee-bayes/pkg/utils"
	"github.com/stretchr/testify/assert"
)

func TestSum(t *testing.T) {
	assert.Equal(t, 0.0, utils.Sum(nil))
	assert.Equal(t, 6.0, utils.Sum([]float64{1, 2, 3}))
	assert.Equal(t, -1.0, utils.Sum([]float64{2, -3}))
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, utils.Average(nil))
	assert.Equal(t, 2.5, utils.Average([]float64{1, 2, 3, 4}))
}

func TestVariance(t *testing.T) {
	assert.Equal(t, 0.0, utils.Variance(nil))
	assert.Equal(t, 0.0, utils.Variance([]float64{5}))

	// sample variance with n-1 denominator
	assert.InDelta(t, 5.0/3.0, utils.Variance([]float64{1, 2, 3, 4}), 1e-9)
	assert.Equal(t, 0.0, utils.Variance([]float64{2, 2, 2}))
}

func TestNGrams(t *testing.T) {
	grams := utils.NGrams("THIS IS A STRING", 2)
	assert.Len(t, grams, 15)
	assert.Equal(t, "TH", grams[0])
	assert.Equal(t, "HI", grams[1])
	assert.Equal(t, "NG", grams[14])

	// duplicates are preserved
	assert.Equal(t, []string{"aa", "aa"}, utils.NGrams("aaa", 2))

	// shorter than n yields an empty decomposition
	assert.Empty(t, utils.NGrams("a", 2))
	assert.Empty(t, utils.NGrams("", 3))

	// whole string when n equals the length
	assert.Equal(t, []string{"abc"}, utils.NGrams("abc", 3))

	// rune-based, not byte-based
	assert.Equal(t, []string{"hél", "éll", "llo"}, utils.NGrams("héllo", 3))

	assert.Nil(t, utils.NGrams("abc", 0))
	assert.Nil(t, utils.NGrams("abc", -1))
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "hello_world", utils.NormalizeName("Hello World"))
	assert.Equal(t, "a_b_c", utils.NormalizeName("a--b__c"))
	assert.Equal(t, "x", utils.NormalizeName("  x  "))
	assert.Equal(t, "", utils.NormalizeName("!!!"))
	assert.Equal(t, "v2", utils.NormalizeName("V2"))
}
