package domain

// Field names the pipeline reads or writes. Passthrough metadata fields
// (url, title, source_domain, ...) are never interpreted, only projected.
const (
	FieldRawContent = "raw_content"
	FieldDigest     = "digest"
	FieldLanguage   = "language"
	FieldLangScore  = "language_score"
	FieldTokenized  = "tokenized"
	FieldPerplexity = "perplexity"
	FieldBucket     = "bucket"
)

// Document is one corpus record: a mapping from field name to value.
// Field presence is meaningful: a missing field is distinct from an
// empty value, and stages must tolerate documents lacking fields they
// do not themselves require.
type Document map[string]any

// Has reports whether the field is present, regardless of its value.
func (d Document) Has(field string) bool {
	_, ok := d[field]
	return ok
}

// String returns the field's value as a string.
// The second return is false if the field is absent or not a string.
func (d Document) String(field string) (string, bool) {
	v, ok := d[field]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Float returns the field's value as a float64.
// JSON numbers decode as float64; ints set by stages are widened.
func (d Document) Float(field string) (float64, bool) {
	v, ok := d[field]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Set stores a field value, replacing any existing value.
func (d Document) Set(field string, value any) {
	d[field] = value
}

// Clone returns a shallow copy of the document.
// Nested values are shared; stages only ever replace top-level fields.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
