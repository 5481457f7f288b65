// internal/quiz/matching.go
package quiz

import (
	"math/rand"

	"vocab_srs/internal/model"

	"github.com/google/uuid"
)

// MaxMatchingPairs はマッチングゲーム1回あたりのペア数の上限
const MaxMatchingPairs = 6

// Matching は単語と意味を結びつけるゲームの状態です。
type Matching struct {
	Words    []*model.Word // 左列
	Meanings []string      // 右列 (シャッフル済み)

	matched  map[uuid.UUID]bool
	attempts map[uuid.UUID]int
}

func NewMatching(words []*model.Word, rng *rand.Rand) *Matching {
	picked := shuffleWords(words, rng)
	if len(picked) > MaxMatchingPairs {
		picked = picked[:MaxMatchingPairs]
	}
	meanings := make([]string, len(picked))
	for i, w := range picked {
		meanings[i] = w.Meaning
	}
	rng.Shuffle(len(meanings), func(i, j int) { meanings[i], meanings[j] = meanings[j], meanings[i] })

	return &Matching{
		Words:    picked,
		Meanings: meanings,
		matched:  make(map[uuid.UUID]bool, len(picked)),
		attempts: make(map[uuid.UUID]int, len(picked)),
	}
}

// Match は単語 wordID に meaning を結びつけます。
// 正しく、まだ結ばれていないペアなら true を返します。
func (m *Matching) Match(wordID uuid.UUID, meaning string) bool {
	w := m.word(wordID)
	if w == nil || m.matched[wordID] {
		return false
	}
	m.attempts[wordID]++
	if w.Meaning != meaning {
		return false
	}
	m.matched[wordID] = true
	return true
}

func (m *Matching) IsMatched(wordID uuid.UUID) bool { return m.matched[wordID] }

// Attempts は wordID に対して結びつけを試みた回数を返します。
func (m *Matching) Attempts(wordID uuid.UUID) int { return m.attempts[wordID] }

func (m *Matching) Score() int { return len(m.matched) }

func (m *Matching) Done() bool { return len(m.matched) == len(m.Words) }

// Outcomes は1回目で正しく結べたペアを正解として返します。
func (m *Matching) Outcomes() []Outcome {
	out := make([]Outcome, 0, len(m.Words))
	for _, w := range m.Words {
		out = append(out, Outcome{
			WordID:    w.WordID,
			IsCorrect: m.matched[w.WordID] && m.attempts[w.WordID] == 1,
		})
	}
	return out
}

func (m *Matching) word(id uuid.UUID) *model.Word {
	for _, w := range m.Words {
		if w.WordID == id {
			return w
		}
	}
	return nil
}
