// Package csv wraps encoding/csv as a row reader with input text options.
//
// The reader deliberately does not enforce a uniform field count: ragged rows
// are the mapping engine's concern, which knows which columns it needs and
// reports the first missing one.
package csv

import (
	"encoding/csv"
	"io"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Option configures a Reader.
type Option func(*config)

type config struct {
	comma rune
	nfc   bool
}

// WithComma sets the field delimiter. The default is ','.
func WithComma(c rune) Option { return func(cfg *config) { cfg.comma = c } }

// WithNFCNormalization folds input text into Unicode NFC before tokenizing.
// Useful when sources mix composed and decomposed forms of the same header
// names, which would otherwise miss the engine's exact-match column lookup.
func WithNFCNormalization() Option { return func(cfg *config) { cfg.nfc = true } }

// Reader yields one CSV record per ReadNext call.
type Reader struct {
	cr *csv.Reader
}

// NewReader wraps r as a CSV record reader.
func NewReader(r io.Reader, opts ...Option) *Reader {
	cfg := config{comma: ','}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.nfc {
		r = transform.NewReader(r, norm.NFC)
	}
	cr := csv.NewReader(r)
	cr.Comma = cfg.comma
	cr.FieldsPerRecord = -1
	return &Reader{cr: cr}
}

// ReadNext returns the field values of the next record, or io.EOF when the
// input is exhausted. Malformed input (unbalanced quoting and the like)
// surfaces as the underlying parse error.
func (r *Reader) ReadNext() ([]string, error) {
	rec, err := r.cr.Read()
	if err != nil {
		return nil, err
	}
	return rec, nil
}
