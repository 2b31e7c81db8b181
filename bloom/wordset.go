// Package bloom provides approximate word-set membership using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// WordSet records which words occur in a text.
type WordSet struct {
	f *bloom.BloomFilter
}

// NewWordSet creates a WordSet sized for n expected words with the given
// false positive rate.
func NewWordSet(n uint, fpRate float64) *WordSet {
	if n == 0 {
		n = 1
	}
	return &WordSet{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a word to the set.
func (s *WordSet) Add(word string) {
	s.f.AddString(word)
}

// Has returns true if the word might be in the set.
// False positives are possible; false negatives are not.
func (s *WordSet) Has(word string) bool {
	return s.f.TestString(word)
}

// EstimatedCount returns the approximate number of distinct words in the set.
func (s *WordSet) EstimatedCount() uint {
	return uint(s.f.ApproximatedSize())
}
