package pptxraster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBulletNumberSequences(t *testing.T) {
	cases := []struct {
		format string
		nums   []int
		want   []string
	}{
		{NumFormatArabicPeriod, []int{1, 2, 3}, []string{"1.", "2.", "3."}},
		{NumFormatArabicParen, []int{1, 2}, []string{"1)", "2)"}},
		{NumFormatAlphaUcPeriod, []int{1, 2, 26}, []string{"A.", "B.", "Z."}},
		{NumFormatAlphaLcPeriod, []int{1, 2, 26}, []string{"a.", "b.", "z."}},
		{NumFormatAlphaLcParen, []int{1, 3}, []string{"a)", "c)"}},
		{NumFormatRomanUcPeriod, []int{1, 4, 9, 14}, []string{"I.", "IV.", "IX.", "XIV."}},
		{NumFormatRomanLcPeriod, []int{1, 4}, []string{"i.", "iv."}},
	}
	for _, tc := range cases {
		for i, n := range tc.nums {
			assert.Equal(t, tc.want[i], formatBulletNumber(n, tc.format), "format=%s n=%d", tc.format, n)
		}
	}
}

func TestToRomanBijectiveWithinRange(t *testing.T) {
	seen := make(map[string]int)
	for n := 1; n <= 200; n++ {
		r := toRoman(n)
		if prev, ok := seen[r]; ok {
			t.Fatalf("roman numeral collision: %d and %d both produced %q", prev, n, r)
		}
		seen[r] = n
	}
}

func TestNewBulletDefaultsToNone(t *testing.T) {
	b := NewBullet()
	assert.Equal(t, BulletTypeNone, b.Type)
}

func TestSetCharBulletSetsFields(t *testing.T) {
	b := NewBullet().SetCharBullet("•", "Wingdings")
	assert.Equal(t, BulletTypeChar, b.Type)
	assert.Equal(t, "•", b.Style)
	assert.Equal(t, "Wingdings", b.Font)
}

func TestSetNumericBulletSetsFields(t *testing.T) {
	b := NewBullet().SetNumericBullet(NumFormatArabicPeriod, 5)
	assert.Equal(t, BulletTypeNumeric, b.Type)
	assert.Equal(t, NumFormatArabicPeriod, b.NumFormat)
	assert.Equal(t, 5, b.StartAt)
}
