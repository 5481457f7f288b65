// internal/model/level.go
package model

import (
	"fmt"
	"strings"
)

// Level は単語の習熟度を表します。文字列で永続化するため、
// ストアから壊れた値が返ってきた場合もそのまま保持して検出できます。
type Level string

const (
	LevelNew    Level = "new"
	LevelWeak   Level = "weak"
	LevelMedium Level = "medium"
	LevelStrong Level = "strong"
	LevelMaster Level = "master"
	LevelLegend Level = "legend"
)

// Levels は弱い順に並んだ全レベルです。隣接するレベル間でのみ遷移します。
var Levels = [...]Level{LevelNew, LevelWeak, LevelMedium, LevelStrong, LevelMaster, LevelLegend}

// Normalize は未設定(空文字)のレベルを new として扱います。
func (l Level) Normalize() Level {
	if strings.TrimSpace(string(l)) == "" {
		return LevelNew
	}
	return l
}

// Rank は new=0 ... legend=5 の順位を返します。
func (l Level) Rank() (int, bool) {
	l = l.Normalize()
	for i, v := range Levels {
		if v == l {
			return i, true
		}
	}
	return -1, false
}

func (l Level) IsValid() bool {
	_, ok := l.Rank()
	return ok
}

func (l Level) String() string {
	return string(l.Normalize())
}

// ParseLevel は大文字小文字を区別せずにレベル名を解釈します。
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s))).Normalize()
	if !l.IsValid() {
		return "", fmt.Errorf("unknown level %q: %w", s, ErrInvalidInput)
	}
	return l, nil
}
