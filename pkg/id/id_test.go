package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProducesUniqueSortedIDs(t *testing.T) {
	seen := make(map[string]bool)
	var prev string
	for i := 0; i < 100; i++ {
		s := New()
		assert.Len(t, s, 26)
		assert.False(t, seen[s], "duplicate id %s", s)
		seen[s] = true
		if prev != "" {
			assert.LessOrEqual(t, prev, s)
		}
		prev = s
	}
}
