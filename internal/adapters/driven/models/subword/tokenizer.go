// Package subword segments text into subword pieces with a greedy
// longest-match over a vocabulary file, one piece per line. Pieces
// starting a word carry the "▁" boundary marker, following the
// sentencepiece convention.
package subword

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/veldt-labs/winnow-cli/internal/core/ports/driven"
)

// boundary marks the start of a word in vocabulary pieces.
const boundary = "▁"

// Ensure Tokenizer implements the interface.
var _ driven.Tokenizer = (*Tokenizer)(nil)

// Tokenizer is a vocabulary-driven subword segmenter. The vocabulary
// file is read on Load, not construction.
type Tokenizer struct {
	path     string
	vocab    map[string]struct{}
	maxPiece int
}

// New creates a tokenizer for the vocabulary at path.
func New(path string) *Tokenizer {
	return &Tokenizer{path: path}
}

// Load reads the vocabulary file.
func (t *Tokenizer) Load() error {
	f, err := os.Open(t.path)
	if err != nil {
		return fmt.Errorf("open vocabulary: %w", err)
	}
	defer f.Close()

	t.vocab = make(map[string]struct{})
	t.maxPiece = 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		piece := strings.TrimSpace(scanner.Text())
		if piece == "" {
			continue
		}
		t.vocab[piece] = struct{}{}
		if n := len([]rune(piece)); n > t.maxPiece {
			t.maxPiece = n
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read vocabulary: %w", err)
	}
	if len(t.vocab) == 0 {
		return fmt.Errorf("vocabulary %s is empty", t.path)
	}
	return nil
}

// Tokenize segments text into vocabulary pieces. Characters no piece
// covers are emitted as single-rune tokens so no input is ever lost.
func (t *Tokenizer) Tokenize(text string, normalize bool) ([]string, error) {
	if t.vocab == nil {
		return nil, fmt.Errorf("vocabulary not loaded")
	}

	if normalize {
		text = strings.Join(strings.Fields(strings.ToLower(text)), " ")
	}

	var tokens []string
	for _, word := range strings.Fields(text) {
		tokens = append(tokens, t.segmentWord(boundary+word)...)
	}
	return tokens, nil
}

// segmentWord greedily matches the longest vocabulary piece at each
// position of one boundary-marked word.
func (t *Tokenizer) segmentWord(word string) []string {
	runes := []rune(word)
	var pieces []string

	for i := 0; i < len(runes); {
		longest := 0
		max := t.maxPiece
		if rest := len(runes) - i; rest < max {
			max = rest
		}
		for n := max; n >= 1; n-- {
			if _, ok := t.vocab[string(runes[i:i+n])]; ok {
				longest = n
				break
			}
		}
		if longest == 0 {
			// unknown character, emit bare
			pieces = append(pieces, string(runes[i]))
			i++
			continue
		}
		pieces = append(pieces, string(runes[i:i+longest]))
		i += longest
	}
	return pieces
}
