package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikePattern(t *testing.T) {
	cases := map[string]string{
		"cats":    `%cats%`,
		"100%":    `%100\%%`,
		"a_b":     `%a\_b%`,
		`back\up`: `%back\\up%`,
		"%_":      `%\%\_%`,
	}
	for keyword, want := range cases {
		assert.Equal(t, want, likePattern(keyword), keyword)
	}
}
