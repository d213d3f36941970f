// Package dos decodes the legacy pipe-delimited chart notation into
// model.Chart values. Every notation revision seen in saved charts is
// accepted: full labels, the abbreviated labels used before 3.3.0, an
// optional authoring-tool prefix, and per-page block counts.
package dos

import (
	"strings"

	"github.com/jsphweid/dosrevive/keyconfig"
	"github.com/jsphweid/dosrevive/model"
	"github.com/pkg/errors"
)

// ErrInvalidChart is wrapped by every decode failure.
var ErrInvalidChart = errors.New("invalid chart")

func invalid(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidChart, format, args...)
}

// Notation describes how a chart text was written.
type Notation struct {
	// Prefix is the authoring-tool identifier in front of the field table.
	Prefix  string
	Version string
	// Legacy is set when any abbreviated label was used.
	Legacy  bool
	Labels  []string
	Unknown []string
}

type Document struct {
	Notation Notation
	fields   []field
}

// Parse tokenizes chart text and recognizes its fields without building a
// chart. It fails when no field label is recognized at all.
func Parse(text string) (*Document, error) {
	lead, segments := tokenize(text)

	doc := &Document{}
	var prefix []string
	if lead != "" {
		prefix = append(prefix, lead)
	}

	for _, s := range segments {
		if s.bare {
			if len(doc.fields) == 0 {
				prefix = append(prefix, s.raw)
			} else {
				doc.Notation.Unknown = append(doc.Notation.Unknown, s.raw)
			}
			continue
		}

		f, ok, err := classify(s)
		if err != nil {
			return nil, errors.Wrapf(err, "field %s", s.label)
		}
		if !ok {
			doc.Notation.Unknown = append(doc.Notation.Unknown, s.label)
			continue
		}
		doc.fields = append(doc.fields, f)
		doc.Notation.Labels = append(doc.Notation.Labels, f.label)
		if f.legacy {
			doc.Notation.Legacy = true
		}
		if f.kind == fieldVersion {
			doc.Notation.Version = f.value
		}
	}

	if len(doc.fields) == 0 {
		return nil, invalid("no recognizable field labels")
	}
	doc.Notation.Prefix = strings.Join(prefix, " ")
	return doc, nil
}

type Decoder struct {
	Keys *keyconfig.KeyConfig
	// KeyKind is used when the text does not declare one. Empty means the
	// key config's default.
	KeyKind string
}

func NewDecoder(keys *keyconfig.KeyConfig) *Decoder {
	if keys == nil {
		keys = keyconfig.Default()
	}
	return &Decoder{Keys: keys}
}

// Build turns a parsed document into a chart. On failure the chart is nil.
func (d *Decoder) Build(doc *Document) (*model.Chart, error) {
	b := newBuilder(d.Keys, d.KeyKind)
	for _, f := range doc.fields {
		if err := b.apply(f); err != nil {
			return nil, err
		}
	}
	return b.build()
}

// Decode parses chart text and builds the chart. Any failure returns a nil
// chart and an error wrapping ErrInvalidChart.
func (d *Decoder) Decode(text string) (*model.Chart, error) {
	doc, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return d.Build(doc)
}

// Decode uses the built-in key layouts.
func Decode(text string) (*model.Chart, error) {
	return NewDecoder(nil).Decode(text)
}
