// cmd/srs/commands.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"vocab_srs/internal/model"
	"vocab_srs/internal/service"
	"vocab_srs/internal/validation"

	"github.com/google/uuid"
)

type cli struct {
	words   service.WordService
	reviews service.ReviewService
	in      io.Reader
	out     io.Writer
	rng     *rand.Rand
}

type command struct {
	name    string
	summary string
	run     func(c *cli, ctx context.Context, args []string) error
}

var commands = []command{
	{"add", "register a word: add [flags] <word> <meaning>", (*cli).add},
	{"list", "list words in the word table", (*cli).list},
	{"due", "list words due for review today", (*cli).due},
	{"review", "record a review result: review <word_id> <correct|wrong>", (*cli).review},
	{"quiz", "run a quiz on due words and record the results", (*cli).quiz},
	{"learn", "flashcards, multiple choice, writing and matching on due words", (*cli).learn},
	{"groups", "list word groups", (*cli).groups},
	{"favorite", "toggle favorite: favorite <word_id>", (*cli).favorite},
	{"ipa", "set pronunciation: ipa <word_id> <ipa>", (*cli).ipa},
	{"delete", "delete a word: delete <word_id>", (*cli).delete},
	{"seed", "insert a starter set of words", (*cli).seed},
}

var errUsage = errors.New("invalid arguments")

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	for _, cmd := range commands {
		if cmd.name == args[0] {
			return cmd.run(c, ctx, args[1:])
		}
	}
	return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func parseWordID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, model.NewAppError(model.CodeValidation, "word_id must be a UUID", "word_id", model.ErrInvalidInput)
	}
	return id, nil
}

func (c *cli) add(ctx context.Context, args []string) error {
	fs := newFlagSet("add", c.out)
	req := model.CreateWordRequest{}
	fs.StringVar(&req.Example, "example", "", "example sentence")
	fs.StringVar(&req.IPA, "ipa", "", "pronunciation")
	fs.StringVar(&req.Synonym, "synonym", "", "synonyms")
	fs.StringVar(&req.Antonym, "antonym", "", "antonyms")
	fs.StringVar(&req.Phrase, "phrase", "", "phrase")
	fs.StringVar(&req.Group, "group", "", "group name")
	fs.StringVar(&req.Stage, "stage", "", "stage")
	fs.StringVar(&req.Note, "note", "", "note")
	fs.StringVar(&req.AudioURL, "audio", "", "audio URL")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("add: expected <word> <meaning>: %w", errUsage)
	}
	req.Word, req.Meaning = fs.Arg(0), fs.Arg(1)

	word, err := c.words.AddWord(ctx, &req)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "added %s %q\n", word.WordID, word.Word)
	return nil
}

func (c *cli) list(ctx context.Context, args []string) error {
	fs := newFlagSet("list", c.out)
	filter := model.WordFilter{}
	var level string
	var reviewOnly bool
	fs.StringVar(&filter.Group, "group", "", "only this group")
	fs.StringVar(&filter.Stage, "stage", "", "stage contains")
	fs.StringVar(&level, "level", "", "only this level")
	fs.BoolVar(&filter.FavoriteOnly, "favorite", false, "only favorites")
	fs.BoolVar(&reviewOnly, "review", false, "only words in the review stage")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if level != "" {
		parsed, err := model.ParseLevel(level)
		if err != nil {
			return model.NewAppError(model.CodeValidation, err.Error(), "level", err)
		}
		filter.Level = parsed
	}
	if reviewOnly {
		filter.Stage = service.ReviewStage
	}

	words, err := c.words.ListWords(ctx, filter)
	if err != nil {
		return err
	}
	return c.printWords(words)
}

func (c *cli) due(ctx context.Context, args []string) error {
	fs := newFlagSet("due", c.out)
	countOnly := fs.Bool("count", false, "print only the number of due words")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *countOnly {
		n, err := c.reviews.CountDueWords(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, n)
		return nil
	}

	words, err := c.reviews.GetDueWords(ctx)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		fmt.Fprintln(c.out, "nothing to review today")
		return nil
	}
	return c.printWords(words)
}

func (c *cli) review(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("review: expected <word_id> <correct|wrong>: %w", errUsage)
	}
	id, err := parseWordID(args[0])
	if err != nil {
		return err
	}
	var isCorrect bool
	switch strings.ToLower(args[1]) {
	case "correct", "ok", "true", "1":
		isCorrect = true
	case "wrong", "ng", "false", "0":
		isCorrect = false
	default:
		return fmt.Errorf("review: result must be correct or wrong: %w", errUsage)
	}
	req := model.SubmitReviewRequest{WordID: id, IsCorrect: &isCorrect}
	if err := validation.Struct(&req); err != nil {
		return err
	}

	word, err := c.reviews.SubmitReviewResult(ctx, req.WordID, *req.IsCorrect)
	if errors.Is(err, model.ErrNotFound) {
		// 見つからない単語は何も記録しない
		fmt.Fprintf(c.out, "word %s not found, nothing recorded\n", id)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s -> %s, next review %s\n", word.Word, word.Level, formatDate(word.NextReviewDate))
	return nil
}

func (c *cli) groups(ctx context.Context, args []string) error {
	fs := newFlagSet("groups", c.out)
	reviewOnly := fs.Bool("review", false, "only groups with words in the review stage")
	if err := fs.Parse(args); err != nil {
		return err
	}
	groups, err := c.words.Groups(ctx, *reviewOnly)
	if err != nil {
		return err
	}
	for _, g := range groups {
		fmt.Fprintln(c.out, g)
	}
	return nil
}

func (c *cli) favorite(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("favorite: expected <word_id>: %w", errUsage)
	}
	id, err := parseWordID(args[0])
	if err != nil {
		return err
	}
	word, err := c.words.ToggleFavorite(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s favorite=%t\n", word.Word, word.Favorite)
	return nil
}

func (c *cli) ipa(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("ipa: expected <word_id> <ipa>: %w", errUsage)
	}
	id, err := parseWordID(args[0])
	if err != nil {
		return err
	}
	return c.words.UpdateIPA(ctx, id, args[1])
}

func (c *cli) delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("delete: expected <word_id>: %w", errUsage)
	}
	id, err := parseWordID(args[0])
	if err != nil {
		return err
	}
	if err := c.words.DeleteWord(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "deleted %s\n", id)
	return nil
}

func (c *cli) printWords(words []*model.Word) error {
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tWORD\tMEANING\tLEVEL\tNEXT REVIEW\tOK/NG\tFAV")
	for _, w := range words {
		fav := ""
		if w.Favorite {
			fav = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d/%d\t%s\n",
			w.WordID, w.Word, w.Meaning, w.Level.Normalize(), formatDate(w.NextReviewDate), w.CorrectCount, w.WrongCount, fav)
	}
	return tw.Flush()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format("2006-01-02")
}

// printError はエラーを表示します。入力検証エラーはフィールドごとのメッセージも表示します。
func printError(w io.Writer, err error) {
	var appErr *model.AppError
	if !errors.As(err, &appErr) {
		fmt.Fprintln(w, "error:", err)
		return
	}
	fmt.Fprintf(w, "error: %s\n", appErr.Detail.Message)
	msgs := validation.Messages(err)
	if len(msgs) < 2 {
		return
	}
	fields := make([]string, 0, len(msgs))
	for f := range msgs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(w, "  %s: %s\n", f, msgs[f])
	}
}
