package id

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducesUniqueSortedIDs(t *testing.T) {
	const n = 1000
	ids := make([]string, n)
	seen := make(map[string]bool, n)

	for i := 0; i < n; i++ {
		id := New()
		require.Len(t, id, 26, "ULIDs are 26 characters")
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
		ids[i] = id
	}

	// Generation order matches lexicographic order.
	assert.True(t, sort.StringsAreSorted(ids))
}

func TestNewIsSafeForConcurrentUse(t *testing.T) {
	done := make(chan string, 100)
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 10; j++ {
				done <- New()
			}
		}()
	}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := <-done
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
