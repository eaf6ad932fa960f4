// Package ngramlm scores token sequences under a back-off n-gram
// language model in the ARPA text format.
package ngramlm

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/veldt-labs/winnow-cli/internal/core/ports/driven"
)

// unkLogProb is the floor log10 probability for tokens the model has
// never seen and that have no <unk> entry.
const unkLogProb = -7.0

// unkToken is the conventional out-of-vocabulary token.
const unkToken = "<unk>"

type entry struct {
	logProb float64
	backoff float64
}

// Ensure Model implements the interface.
var _ driven.Scorer = (*Model)(nil)

// Model is an ARPA back-off language model. The model file is read on
// Load, not construction.
type Model struct {
	path    string
	order   int
	entries map[string]entry
}

// New creates a model for the ARPA file at path.
func New(path string) *Model {
	return &Model{path: path}
}

// Load parses the ARPA file.
func (m *Model) Load() error {
	f, err := os.Open(m.path)
	if err != nil {
		return fmt.Errorf("open language model: %w", err)
	}
	defer f.Close()

	m.entries = make(map[string]entry)
	m.order = 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	inGrams := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || line == `\data\`:
			continue
		case line == `\end\`:
			inGrams = false
		case strings.HasPrefix(line, "ngram "):
			continue
		case strings.HasPrefix(line, `\`) && strings.HasSuffix(line, "-grams:"):
			n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(line, `\`), "-grams:"))
			if err != nil {
				return fmt.Errorf("parse language model: bad section %q", line)
			}
			if n > m.order {
				m.order = n
			}
			inGrams = true
		case inGrams:
			if err := m.parseGramLine(line); err != nil {
				return fmt.Errorf("parse language model: %w", err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read language model: %w", err)
	}
	if len(m.entries) == 0 {
		return fmt.Errorf("language model %s has no n-grams", m.path)
	}
	return nil
}

// parseGramLine parses "logprob word1 ... wordN [backoff]".
func (m *Model) parseGramLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return fmt.Errorf("bad n-gram line %q", line)
	}

	logProb, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return fmt.Errorf("bad log probability in %q", line)
	}

	words := fields[1:]
	backoff := 0.0
	// A trailing numeric field is the backoff weight.
	if len(words) > 1 {
		if bw, err := strconv.ParseFloat(words[len(words)-1], 64); err == nil {
			backoff = bw
			words = words[:len(words)-1]
		}
	}

	m.entries[strings.Join(words, " ")] = entry{logProb: logProb, backoff: backoff}
	return nil
}

// Score returns the total log10 likelihood of the token sequence and
// the number of tokens scored. Each token is conditioned on up to
// order-1 preceding tokens, backing off through shorter contexts.
func (m *Model) Score(tokens []string) (float64, int, error) {
	if m.entries == nil {
		return 0, 0, fmt.Errorf("language model not loaded")
	}
	if len(tokens) == 0 {
		return 0, 0, nil
	}

	var total float64
	for i := range tokens {
		start := i - (m.order - 1)
		if start < 0 {
			start = 0
		}
		total += m.logProb(tokens[start : i+1])
	}
	return total, len(tokens), nil
}

// logProb resolves one token in context with standard back-off:
// use the full n-gram if present, otherwise the context's backoff
// weight plus the probability under the shortened context.
func (m *Model) logProb(words []string) float64 {
	if e, ok := m.entries[strings.Join(words, " ")]; ok {
		return e.logProb
	}
	if len(words) == 1 {
		if e, ok := m.entries[unkToken]; ok {
			return e.logProb
		}
		return unkLogProb
	}

	backoff := 0.0
	if e, ok := m.entries[strings.Join(words[:len(words)-1], " ")]; ok {
		backoff = e.backoff
	}
	return backoff + m.logProb(words[1:])
}
