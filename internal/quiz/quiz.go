// internal/quiz/quiz.go
// Package quiz は練習モード(読解・リスニング・選択・書き取り・マッチング)の
// 出題と採点を行います。乱数は呼び出し側から注入します。
package quiz

import (
	"errors"
	"math"
	"math/rand"
	"strings"

	"vocab_srs/internal/model"

	"github.com/google/uuid"
)

type Mode string

const (
	ModeReading        Mode = "reading"         // 単語 -> 意味を選ぶ
	ModeListening      Mode = "listening"       // 音声 -> 単語を選ぶ
	ModeMultipleChoice Mode = "multiple_choice" // 単語 -> 意味を選ぶ (1問ずつ)
	ModeWriting        Mode = "writing"         // 意味 -> 単語を書く
)

// OptionCount は選択式の選択肢数 (正解を含む)
const OptionCount = 4

var ErrNoWords = errors.New("quiz: no words")

// Question は1問分の出題内容です。
type Question struct {
	WordID  uuid.UUID `json:"word_id"`
	Mode    Mode      `json:"mode"`
	Prompt  string    `json:"prompt"`
	Answer  string    `json:"answer"`
	Options []string  `json:"options,omitempty"`
}

// Check は回答が正解かどうかを返します。書き取りは前後の空白と大文字小文字を無視します。
func (q Question) Check(answer string) bool {
	if q.Mode == ModeWriting {
		return CheckWriting(answer, q.Answer)
	}
	return answer == q.Answer
}

// Outcome は1問の採点結果で、そのまま復習結果として使えます。
type Outcome struct {
	WordID    uuid.UUID `json:"word_id"`
	IsCorrect bool      `json:"is_correct"`
}

// ReadingQuestions は各単語について、正しい意味と他の意味(最大3つ)から選ぶ問題を作ります。
// 出題順と選択肢の順はどちらもシャッフルされます。
func ReadingQuestions(words []*model.Word, rng *rand.Rand) []Question {
	shuffled := shuffleWords(words, rng)
	meanings := distinct(shuffled, func(w *model.Word) string { return w.Meaning })

	questions := make([]Question, 0, len(shuffled))
	for _, w := range shuffled {
		questions = append(questions, Question{
			WordID:  w.WordID,
			Mode:    ModeReading,
			Prompt:  w.Word,
			Answer:  w.Meaning,
			Options: options(w.Meaning, meanings, rng),
		})
	}
	return questions
}

// ListeningQuestions は読み上げた単語を、他の単語(最大3つ)と並べて選ばせる問題を作ります。
func ListeningQuestions(words []*model.Word, rng *rand.Rand) []Question {
	shuffled := shuffleWords(words, rng)
	terms := distinct(shuffled, func(w *model.Word) string { return w.Word })

	questions := make([]Question, 0, len(shuffled))
	for _, w := range shuffled {
		questions = append(questions, Question{
			WordID:  w.WordID,
			Mode:    ModeListening,
			Prompt:  w.Word,
			Answer:  w.Word,
			Options: options(w.Word, terms, rng),
		})
	}
	return questions
}

// MultipleChoice は words[idx] の意味を問う1問を作ります。
// 異なる意味が4つ未満しかない場合は、あるだけの選択肢で出題します。
func MultipleChoice(words []*model.Word, idx int, rng *rand.Rand) (Question, error) {
	if len(words) == 0 {
		return Question{}, ErrNoWords
	}
	if idx < 0 || idx >= len(words) || words[idx] == nil {
		return Question{}, model.ErrNotFound
	}
	w := words[idx]
	meanings := distinct(words, func(w *model.Word) string { return w.Meaning })
	return Question{
		WordID:  w.WordID,
		Mode:    ModeMultipleChoice,
		Prompt:  w.Word,
		Answer:  w.Meaning,
		Options: options(w.Meaning, meanings, rng),
	}, nil
}

// WritingQuestions は意味を見て単語を書く問題を、与えられた順で作ります。
func WritingQuestions(words []*model.Word) []Question {
	questions := make([]Question, 0, len(words))
	for _, w := range words {
		if w == nil {
			continue
		}
		questions = append(questions, Question{
			WordID: w.WordID,
			Mode:   ModeWriting,
			Prompt: w.Meaning,
			Answer: w.Word,
		})
	}
	return questions
}

func CheckWriting(answer, want string) bool {
	return strings.ToLower(strings.TrimSpace(answer)) == strings.ToLower(strings.TrimSpace(want))
}

// Grade は WordID ごとの回答を採点します。未回答は不正解です。
func Grade(questions []Question, answers map[uuid.UUID]string) ([]Outcome, int) {
	outcomes := make([]Outcome, 0, len(questions))
	correct := 0
	for _, q := range questions {
		ok := q.Check(answers[q.WordID])
		if ok {
			correct++
		}
		outcomes = append(outcomes, Outcome{WordID: q.WordID, IsCorrect: ok})
	}
	return outcomes, correct
}

// Score10 は正答数を10点満点に換算します (四捨五入)。
func Score10(raw, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(raw) / float64(total) * 10))
}

func options(answer string, pool []string, rng *rand.Rand) []string {
	others := make([]string, 0, len(pool))
	for _, p := range pool {
		if p != answer {
			others = append(others, p)
		}
	}
	rng.Shuffle(len(others), func(i, j int) { others[i], others[j] = others[j], others[i] })
	if len(others) > OptionCount-1 {
		others = others[:OptionCount-1]
	}
	opts := append([]string{answer}, others...)
	rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	return opts
}

func shuffleWords(words []*model.Word, rng *rand.Rand) []*model.Word {
	out := make([]*model.Word, 0, len(words))
	for _, w := range words {
		if w != nil {
			out = append(out, w)
		}
	}
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// distinct は空文字を除いた値を出現順・重複なしで返します。
func distinct(words []*model.Word, field func(*model.Word) string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w == nil {
			continue
		}
		v := field(w)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
