package dos

import (
	"fmt"
	"strconv"

	"github.com/jsphweid/dosrevive/constants"
)

type fieldKind int

const (
	fieldVersion fieldKind = iota
	fieldKeyKind
	fieldBlankFrame
	fieldScoreNumber
	fieldTimings
	fieldPage
	fieldPageBlockNum
)

var fieldNames = map[fieldKind]string{
	fieldVersion:      "editorVersion",
	fieldKeyKind:      "keyKind",
	fieldBlankFrame:   "blankFrame",
	fieldScoreNumber:  "scoreNumber",
	fieldTimings:      "timings",
	fieldPage:         "page",
	fieldPageBlockNum: "pageBlockNum",
}

func (k fieldKind) String() string {
	return fieldNames[k]
}

func (k fieldKind) indexed() bool {
	return k == fieldPage || k == fieldPageBlockNum
}

// field is one recognized segment. index is the zero-based page index for
// page fields and 0 otherwise.
type field struct {
	kind   fieldKind
	index  int
	value  string
	label  string
	legacy bool
}

// key identifies a field for duplicate detection, merging label synonyms.
func (f field) key() string {
	if f.kind.indexed() {
		return fmt.Sprintf("%v%d", f.kind, f.index+1)
	}
	return f.kind.String()
}

// splitIndex separates trailing digits from a label, so "pbn12" gives "pbn", "12".
func splitIndex(label string) (string, string) {
	i := len(label)
	for i > 0 && label[i-1] >= '0' && label[i-1] <= '9' {
		i--
	}
	return label[:i], label[i:]
}

// lookupLabel maps a label spelling to its field kind. Spellings are a fixed
// grammar: the abbreviated forms predate 3.3.0 and must stay accepted as-is.
func lookupLabel(base string) (kind fieldKind, legacy bool, ok bool) {
	switch base {
	case "editorVersion":
		return fieldVersion, false, true
	case "ev":
		return fieldVersion, true, true
	case "keyKind":
		return fieldKeyKind, false, true
	case "kk":
		return fieldKeyKind, true, true
	case "blankFrame":
		return fieldBlankFrame, false, true
	case "bf":
		return fieldBlankFrame, true, true
	case "scoreNumber":
		return fieldScoreNumber, false, true
	case "sn":
		return fieldScoreNumber, true, true
	case "timings":
		return fieldTimings, false, true
	case "tm":
		return fieldTimings, true, true
	case "page":
		return fieldPage, false, true
	case "p":
		return fieldPage, true, true
	case "pageBlockNum":
		return fieldPageBlockNum, false, true
	case "pbn":
		return fieldPageBlockNum, true, true
	}
	return 0, false, false
}

// classify recognizes a labeled segment. ok is false for labels outside the
// grammar; err is set for recognized labels with a bad page number.
func classify(s segment) (f field, ok bool, err error) {
	base, digits := splitIndex(s.label)
	kind, legacy, ok := lookupLabel(base)
	if !ok || kind.indexed() != (digits != "") {
		return field{}, false, nil
	}

	f = field{kind: kind, value: s.value, label: s.label, legacy: legacy}
	if digits != "" {
		n, err := strconv.Atoi(digits)
		if err != nil || n < 1 || n > constants.MaxPages {
			return field{}, true, invalid("page number %q out of range", digits)
		}
		f.index = n - 1
	}
	return f, true, nil
}
