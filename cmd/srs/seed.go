// cmd/srs/seed.go
package main

import (
	"context"
	"errors"
	"fmt"

	"vocab_srs/internal/logging"
	"vocab_srs/internal/model"
)

// starterWords は動作確認用の単語セット
var starterWords = []model.CreateWordRequest{
	{Word: "apple", Meaning: "quả táo", IPA: "/ˈæp.əl/", Group: "food", Example: "She ate an apple."},
	{Word: "bread", Meaning: "bánh mì", IPA: "/bred/", Group: "food"},
	{Word: "river", Meaning: "dòng sông", IPA: "/ˈrɪv.ər/", Group: "nature"},
	{Word: "mountain", Meaning: "ngọn núi", IPA: "/ˈmaʊn.tən/", Group: "nature"},
	{Word: "borrow", Meaning: "mượn", IPA: "/ˈbɒr.əʊ/", Group: "verbs", Antonym: "lend"},
	{Word: "remember", Meaning: "nhớ", IPA: "/rɪˈmem.bər/", Group: "verbs", Synonym: "recall"},
}

// seed は単語を登録します。既に登録済みの単語はスキップします。
func (c *cli) seed(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("seed: takes no arguments: %w", errUsage)
	}
	logger := logging.GetLogger(ctx)

	created, skipped := 0, 0
	for i := range starterWords {
		req := starterWords[i]
		word, err := c.words.AddWord(ctx, &req)
		if errors.Is(err, model.ErrConflict) {
			skipped++
			continue
		}
		if err != nil {
			logger.Error("Failed to seed word", "word", req.Word, "error", err)
			return err
		}
		created++
		fmt.Fprintf(c.out, "added %s %q\n", word.WordID, word.Word)
	}
	fmt.Fprintf(c.out, "seeded %d words (%d already present)\n", created, skipped)
	return nil
}
