// internal/quiz/matching_test.go
package quiz

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatching_CapsPairs(t *testing.T) {
	m := NewMatching(sampleWords(8), rand.New(rand.NewSource(11)))
	require.Len(t, m.Words, MaxMatchingPairs)
	require.Len(t, m.Meanings, MaxMatchingPairs)

	want := make([]string, 0, len(m.Words))
	for _, w := range m.Words {
		want = append(want, w.Meaning)
	}
	assert.ElementsMatch(t, want, m.Meanings)
}

func TestMatching_Play(t *testing.T) {
	words := sampleWords(3)
	m := NewMatching(words, rand.New(rand.NewSource(2)))
	require.Len(t, m.Words, 3)

	first, second, third := m.Words[0], m.Words[1], m.Words[2]

	assert.False(t, m.Match(first.WordID, second.Meaning), "誤ったペア")
	assert.True(t, m.Match(first.WordID, first.Meaning))
	assert.False(t, m.Match(first.WordID, first.Meaning), "結び済みは再度結べない")
	assert.True(t, m.IsMatched(first.WordID))
	assert.False(t, m.Done())

	assert.True(t, m.Match(second.WordID, second.Meaning))
	assert.True(t, m.Match(third.WordID, third.Meaning))
	assert.True(t, m.Done())
	assert.Equal(t, 3, m.Score())
	assert.Equal(t, 2, m.Attempts(first.WordID))
	assert.Equal(t, 1, m.Attempts(third.WordID))

	outcomes := m.Outcomes()
	require.Len(t, outcomes, 3)
	assert.False(t, outcomes[0].IsCorrect, "1回目で間違えた単語は不正解扱い")
	assert.True(t, outcomes[1].IsCorrect)
	assert.True(t, outcomes[2].IsCorrect)
}

func TestMatching_UnknownWord(t *testing.T) {
	m := NewMatching(sampleWords(2), rand.New(rand.NewSource(1)))
	other := sampleWords(3)[2]
	assert.False(t, m.Match(other.WordID, other.Meaning))
	assert.Equal(t, 0, m.Score())
}
