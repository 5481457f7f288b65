// internal/quiz/quiz_test.go
package quiz

import (
	"math/rand"
	"testing"

	"vocab_srs/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleWords(n int) []*model.Word {
	terms := []string{"apple", "book", "cat", "dog", "egg", "fish", "goat", "hat"}
	meanings := []string{"quả táo", "quyển sách", "con mèo", "con chó", "quả trứng", "con cá", "con dê", "cái mũ"}
	words := make([]*model.Word, 0, n)
	for i := 0; i < n; i++ {
		words = append(words, &model.Word{WordID: uuid.New(), Word: terms[i], Meaning: meanings[i], Level: model.LevelNew})
	}
	return words
}

func TestReadingQuestions(t *testing.T) {
	words := sampleWords(6)
	qs := ReadingQuestions(words, rand.New(rand.NewSource(1)))
	require.Len(t, qs, len(words))

	seen := map[uuid.UUID]bool{}
	for _, q := range qs {
		seen[q.WordID] = true
		assert.Equal(t, ModeReading, q.Mode)
		assert.Len(t, q.Options, OptionCount)
		assert.Contains(t, q.Options, q.Answer)
		assert.ElementsMatch(t, uniq(q.Options), q.Options, "選択肢は重複しない")
		assert.True(t, q.Check(q.Answer))
		assert.False(t, q.Check("sai"))
	}
	assert.Len(t, seen, len(words), "全単語が1回ずつ出題される")
}

func TestReadingQuestions_FewWords(t *testing.T) {
	words := sampleWords(2)
	qs := ReadingQuestions(words, rand.New(rand.NewSource(7)))
	require.Len(t, qs, 2)
	for _, q := range qs {
		assert.Len(t, q.Options, 2)
	}
}

func TestReadingQuestions_Deterministic(t *testing.T) {
	words := sampleWords(8)
	a := ReadingQuestions(words, rand.New(rand.NewSource(42)))
	b := ReadingQuestions(words, rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b, "同じシードなら同じ出題")
}

func TestListeningQuestions(t *testing.T) {
	words := sampleWords(5)
	qs := ListeningQuestions(words, rand.New(rand.NewSource(3)))
	require.Len(t, qs, 5)
	for _, q := range qs {
		assert.Equal(t, ModeListening, q.Mode)
		assert.Equal(t, q.Prompt, q.Answer)
		assert.Len(t, q.Options, OptionCount)
		assert.Contains(t, q.Options, q.Answer)
	}
}

func TestMultipleChoice(t *testing.T) {
	words := sampleWords(3)
	// 同じ意味が重複していても選択肢は重複しない
	words = append(words, &model.Word{WordID: uuid.New(), Word: "kitty", Meaning: "con mèo"})

	q, err := MultipleChoice(words, 0, rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	assert.Equal(t, "apple", q.Prompt)
	assert.Equal(t, "quả táo", q.Answer)
	assert.Len(t, q.Options, 3)
	assert.ElementsMatch(t, []string{"quả táo", "quyển sách", "con mèo"}, q.Options)

	_, err = MultipleChoice(nil, 0, rand.New(rand.NewSource(5)))
	assert.ErrorIs(t, err, ErrNoWords)
	_, err = MultipleChoice(words, 9, rand.New(rand.NewSource(5)))
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestWritingAndCheck(t *testing.T) {
	words := sampleWords(2)
	qs := WritingQuestions(append(words, nil))
	require.Len(t, qs, 2)
	assert.Equal(t, "quả táo", qs[0].Prompt)
	assert.Equal(t, "apple", qs[0].Answer)

	assert.True(t, qs[0].Check("  Apple "))
	assert.False(t, qs[0].Check("apples"))
	assert.True(t, CheckWriting("BOOK", "book"))
}

func TestGrade(t *testing.T) {
	words := sampleWords(3)
	qs := WritingQuestions(words)
	answers := map[uuid.UUID]string{
		words[0].WordID: "apple",
		words[1].WordID: "bok",
		// words[2] は未回答
	}

	outcomes, correct := Grade(qs, answers)
	assert.Equal(t, 1, correct)
	assert.Equal(t, []Outcome{
		{WordID: words[0].WordID, IsCorrect: true},
		{WordID: words[1].WordID, IsCorrect: false},
		{WordID: words[2].WordID, IsCorrect: false},
	}, outcomes)
}

func TestScore10(t *testing.T) {
	assert.Equal(t, 0, Score10(0, 0))
	assert.Equal(t, 7, Score10(7, 10))
	assert.Equal(t, 10, Score10(3, 3))
	assert.Equal(t, 7, Score10(2, 3)) // 6.67 -> 7
	assert.Equal(t, 3, Score10(1, 3)) // 3.33 -> 3
}

func TestLearningFlow(t *testing.T) {
	require.Len(t, LearningFlow, 4)
	assert.Equal(t, "flashcard", LearningFlow[0].Name)
	assert.Equal(t, "matching", LearningFlow[3].Name)

	next, ok := NextStep(0)
	assert.True(t, ok)
	assert.Equal(t, 1, next)
	next, ok = NextStep(3)
	assert.False(t, ok)
	assert.Equal(t, 3, next)
}

func uniq(xs []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, x := range xs {
		if !seen[x] {
			seen[x] = true
			out = append(out, x)
		}
	}
	return out
}
