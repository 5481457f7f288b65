// cmd/srs/quiz.go
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"vocab_srs/internal/model"
	"vocab_srs/internal/quiz"

	"github.com/google/uuid"
)

// lineReader は対話入力を1行ずつ読みます。入力が尽きると eof が立ちます。
type lineReader struct {
	sc  *bufio.Scanner
	eof bool
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{sc: bufio.NewScanner(r)}
}

func (r *lineReader) next() (string, bool) {
	if r.eof {
		return "", false
	}
	if !r.sc.Scan() {
		r.eof = true
		return "", false
	}
	return r.sc.Text(), true
}

func (r *lineReader) err() error { return r.sc.Err() }

// quiz は期限の来た単語で出題し、採点結果をまとめて復習結果として記録します。
func (c *cli) quiz(ctx context.Context, args []string) error {
	fs := newFlagSet("quiz", c.out)
	mode := fs.String("mode", string(quiz.ModeWriting), "writing, reading, multiple_choice, listening or matching")
	limit := fs.Int("n", 10, "maximum number of questions (0 = all due words)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !validQuizMode(*mode) {
		return fmt.Errorf("quiz: unknown mode %q: %w", *mode, errUsage)
	}

	words, err := c.dueWords(ctx, *limit)
	if err != nil || len(words) == 0 {
		return err
	}

	in := newLineReader(c.in)
	outcomes, correct, err := c.runStep(in, *mode, words)
	if err != nil {
		return err
	}
	return c.record(ctx, outcomes, correct)
}

// learn はフラッシュカードからマッチングまでの学習フローを順に進めます。
// 単語ごとの結果は、出題されたすべての段階で正解した場合のみ正解として1回記録します。
func (c *cli) learn(ctx context.Context, args []string) error {
	fs := newFlagSet("learn", c.out)
	limit := fs.Int("n", quiz.MaxMatchingPairs, "maximum number of words (0 = all due words)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	words, err := c.dueWords(ctx, *limit)
	if err != nil || len(words) == 0 {
		return err
	}

	in := newLineReader(c.in)
	results := newOutcomeSet()
	step := 0
	for {
		s := quiz.LearningFlow[step]
		fmt.Fprintf(c.out, "== %d/%d %s ==\n", step+1, len(quiz.LearningFlow), s.Title)
		outcomes, _, err := c.runStep(in, s.Name, words)
		if err != nil {
			return err
		}
		results.add(outcomes)

		next, ok := quiz.NextStep(step)
		if !ok || in.eof {
			break
		}
		step = next
	}

	outcomes, correct := results.list()
	return c.record(ctx, outcomes, correct)
}

func (c *cli) dueWords(ctx context.Context, limit int) ([]*model.Word, error) {
	words, err := c.reviews.GetDueWords(ctx)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		fmt.Fprintln(c.out, "nothing to review today")
		return nil, nil
	}
	if limit > 0 && len(words) > limit {
		words = words[:limit]
	}
	return words, nil
}

func validQuizMode(mode string) bool {
	switch mode {
	case string(quiz.ModeWriting), string(quiz.ModeReading), string(quiz.ModeMultipleChoice),
		string(quiz.ModeListening), quiz.StepMatching:
		return true
	}
	return false
}

// runStep はモード(学習フローの段階名)に応じて出題します。
func (c *cli) runStep(in *lineReader, mode string, words []*model.Word) ([]quiz.Outcome, int, error) {
	switch mode {
	case quiz.StepFlashcard:
		return nil, 0, c.flashcards(in, words)
	case string(quiz.ModeWriting):
		return c.ask(in, quiz.WritingQuestions(words), plainPrompt)
	case string(quiz.ModeReading):
		return c.ask(in, quiz.ReadingQuestions(words, c.rng), plainPrompt)
	case string(quiz.ModeMultipleChoice):
		questions, err := multipleChoiceQuestions(words, c.rng)
		if err != nil {
			return nil, 0, err
		}
		return c.ask(in, questions, plainPrompt)
	case string(quiz.ModeListening):
		return c.ask(in, quiz.ListeningQuestions(words, c.rng), listeningPrompt(words))
	case quiz.StepMatching:
		return c.match(in, quiz.NewMatching(words, c.rng))
	default:
		return nil, 0, fmt.Errorf("unknown step %q: %w", mode, errUsage)
	}
}

// multipleChoiceQuestions は1語ずつ選択問題を作ります。
func multipleChoiceQuestions(words []*model.Word, rng *rand.Rand) ([]quiz.Question, error) {
	questions := make([]quiz.Question, 0, len(words))
	for i := range words {
		q, err := quiz.MultipleChoice(words, i, rng)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func plainPrompt(q quiz.Question) string { return q.Prompt }

// listeningPrompt は音声を再生できないため、発音記号と音声URLを手がかりに表示します。
// どちらも無い単語は意味を表示します。
func listeningPrompt(words []*model.Word) func(quiz.Question) string {
	byID := make(map[uuid.UUID]*model.Word, len(words))
	for _, w := range words {
		byID[w.WordID] = w
	}
	return func(q quiz.Question) string {
		w, ok := byID[q.WordID]
		if !ok {
			return "listen"
		}
		var hints []string
		if w.IPA != "" {
			hints = append(hints, w.IPA)
		}
		if w.AudioURL != "" {
			hints = append(hints, w.AudioURL)
		}
		if len(hints) == 0 {
			hints = append(hints, w.Meaning)
		}
		return "listen: " + strings.Join(hints, "  ")
	}
}

func (c *cli) flashcards(in *lineReader, words []*model.Word) error {
	for i, w := range words {
		fmt.Fprintf(c.out, "[%d/%d] %s %s\n  %s\n", i+1, len(words), w.Word, w.IPA, w.Meaning)
		if w.Example != "" {
			fmt.Fprintf(c.out, "  e.g. %s\n", w.Example)
		}
		fmt.Fprint(c.out, "(enter) ")
		if _, ok := in.next(); !ok {
			break
		}
	}
	return in.err()
}

// ask は1問ずつ出題します。入力が尽きたら、それまでに回答した問題だけを採点します。
func (c *cli) ask(in *lineReader, questions []quiz.Question, prompt func(quiz.Question) string) ([]quiz.Outcome, int, error) {
	answers := make(map[uuid.UUID]string, len(questions))
	asked := 0
	for i, q := range questions {
		fmt.Fprintf(c.out, "[%d/%d] %s\n", i+1, len(questions), prompt(q))
		for j, opt := range q.Options {
			fmt.Fprintf(c.out, "  %d) %s\n", j+1, opt)
		}
		fmt.Fprint(c.out, "> ")
		line, ok := in.next()
		if !ok {
			break
		}
		answer := strings.TrimSpace(line)
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(q.Options) {
			answer = q.Options[n-1]
		}
		answers[q.WordID] = answer
		asked++

		if q.Check(answer) {
			fmt.Fprintln(c.out, "correct")
		} else {
			fmt.Fprintf(c.out, "wrong, answer: %s\n", q.Answer)
		}
	}
	if err := in.err(); err != nil {
		return nil, 0, err
	}
	outcomes, correct := quiz.Grade(questions[:asked], answers)
	return outcomes, correct, nil
}

// match は「単語番号 意味番号」の入力でペアを作らせます。
func (c *cli) match(in *lineReader, m *quiz.Matching) ([]quiz.Outcome, int, error) {
	for !m.Done() {
		for i, w := range m.Words {
			mark := " "
			if m.IsMatched(w.WordID) {
				mark = "x"
			}
			meaning := ""
			if i < len(m.Meanings) {
				meaning = m.Meanings[i]
			}
			fmt.Fprintf(c.out, " [%s] %d) %-20s %c) %s\n", mark, i+1, w.Word, 'a'+rune(i), meaning)
		}
		fmt.Fprint(c.out, "> ")
		line, ok := in.next()
		if !ok {
			break
		}
		wi, mi, ok := parsePair(line, len(m.Words), len(m.Meanings))
		if !ok {
			fmt.Fprintln(c.out, "enter a pair like: 1 b")
			continue
		}
		if m.Match(m.Words[wi].WordID, m.Meanings[mi]) {
			fmt.Fprintln(c.out, "correct")
		} else {
			fmt.Fprintln(c.out, "wrong")
		}
	}
	if err := in.err(); err != nil {
		return nil, 0, err
	}
	// 途中で終了した場合は、試した単語だけを記録する
	var outcomes []quiz.Outcome
	correct := 0
	for _, o := range m.Outcomes() {
		if !m.Done() && m.Attempts(o.WordID) == 0 {
			continue
		}
		if o.IsCorrect {
			correct++
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, correct, nil
}

func parsePair(line string, words, meanings int) (int, int, bool) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) != 2 || len(fields[1]) != 1 {
		return 0, 0, false
	}
	wi, err := strconv.Atoi(fields[0])
	if err != nil || wi < 1 || wi > words {
		return 0, 0, false
	}
	mi := int(fields[1][0] - 'a')
	if mi < 0 || mi >= meanings {
		return 0, 0, false
	}
	return wi - 1, mi, true
}

// outcomeSet は複数の段階の結果を単語ごとに1件へまとめます。
type outcomeSet struct {
	order   []uuid.UUID
	correct map[uuid.UUID]bool
}

func newOutcomeSet() *outcomeSet {
	return &outcomeSet{correct: make(map[uuid.UUID]bool)}
}

func (s *outcomeSet) add(outcomes []quiz.Outcome) {
	for _, o := range outcomes {
		prev, seen := s.correct[o.WordID]
		if !seen {
			s.order = append(s.order, o.WordID)
			s.correct[o.WordID] = o.IsCorrect
			continue
		}
		s.correct[o.WordID] = prev && o.IsCorrect
	}
}

func (s *outcomeSet) list() ([]quiz.Outcome, int) {
	outcomes := make([]quiz.Outcome, 0, len(s.order))
	correct := 0
	for _, id := range s.order {
		ok := s.correct[id]
		if ok {
			correct++
		}
		outcomes = append(outcomes, quiz.Outcome{WordID: id, IsCorrect: ok})
	}
	return outcomes, correct
}

func (c *cli) record(ctx context.Context, outcomes []quiz.Outcome, correct int) error {
	if len(outcomes) == 0 {
		fmt.Fprintln(c.out, "no answers, nothing recorded")
		return nil
	}
	summary, err := c.reviews.SubmitQuizResults(ctx, outcomes)
	if err != nil {
		return err
	}
	c.printSummary(summary, correct, len(outcomes))
	return nil
}

func (c *cli) printSummary(s *model.ReviewSummary, correct, total int) {
	fmt.Fprintf(c.out, "score %d/10 (%d/%d correct)\n", quiz.Score10(correct, total), correct, total)
	fmt.Fprintf(c.out, "recorded %d, promoted %d, demoted %d, skipped %d, failed %d\n",
		s.Applied, s.Promoted, s.Demoted, s.Skipped, s.Failed)
	for _, e := range s.Errors {
		fmt.Fprintf(c.out, "  %s: %v\n", e.WordID, e.Err)
	}
}
