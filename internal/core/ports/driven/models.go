package driven

// Prediction is one ranked language guess.
type Prediction struct {
	// Label is the language code (e.g. "tr").
	Label string

	// Score is the model confidence, higher is better.
	Score float64
}

// LanguageIdentifier classifies text by language.
// Backed by an external model loaded from a path; the pipeline only
// depends on this capability, not on the model format.
type LanguageIdentifier interface {
	// Classify returns predictions ranked best first.
	// An empty slice means the model has no opinion.
	Classify(text string) ([]Prediction, error)
}

// Tokenizer segments text into subword pieces.
type Tokenizer interface {
	// Tokenize splits text into tokens. When normalize is true the text
	// is normalised before segmentation.
	Tokenize(text string, normalize bool) ([]string, error)
}

// Scorer scores a token sequence under a language model.
type Scorer interface {
	// Score returns the total log10 likelihood of the sequence and the
	// number of tokens scored.
	Score(tokens []string) (logLikelihood float64, count int, err error)
}

// CutoffTable maps a (language, perplexity) pair to a quality bucket.
type CutoffTable interface {
	// Bucket returns the bucket label for a perplexity value.
	// Returns domain.ErrNoCutoffEntry if the language has no row.
	Bucket(language string, perplexity float64) (string, error)
}
