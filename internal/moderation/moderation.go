// Package moderation rejects comment text containing blocklisted words.
package moderation

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Warning is shown to the author when a comment is rejected.
const Warning = "Не ругайтесь!"

// BadWords is the default blocklist.
var BadWords = []string{
	"редиска",
	"негодяй",
}

// ErrBadWords is returned by Check when the text contains a blocklisted word.
var ErrBadWords = errors.New(Warning)

// Filter matches text against a fixed list of banned substrings.
// Matching is case-sensitive.
type Filter struct {
	words []string
}

// NewFilter builds a filter over words. Empty entries are ignored.
func NewFilter(words []string) *Filter {
	f := &Filter{}
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			f.words = append(f.words, w)
		}
	}
	return f
}

// Default returns a filter over BadWords.
func Default() *Filter {
	return NewFilter(BadWords)
}

// Words returns a copy of the banned words.
func (f *Filter) Words() []string {
	return append([]string(nil), f.words...)
}

// Check returns ErrBadWords if text contains any banned word.
func (f *Filter) Check(text string) error {
	for _, w := range f.words {
		if strings.Contains(text, w) {
			return ErrBadWords
		}
	}
	return nil
}

type wordFile struct {
	BadWords []string `yaml:"bad_words"`
}

// LoadFile reads a YAML document of the form
//
//	bad_words:
//	  - word
//
// and returns a filter over its entries.
func LoadFile(path string) (*Filter, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bad words file: %w", err)
	}
	var wf wordFile
	if err := yaml.Unmarshal(raw, &wf); err != nil {
		return nil, fmt.Errorf("failed to parse bad words file: %w", err)
	}
	if len(wf.BadWords) == 0 {
		return nil, fmt.Errorf("bad words file %s has no entries", path)
	}
	return NewFilter(wf.BadWords), nil
}
