package dos

import "strings"

const delimiter = "|"

type segment struct {
	label string
	value string
	// bare segments carry no "label=value" pair
	bare bool
	raw  string
}

// tokenize splits chart text on the delimiter. Text before the first
// delimiter is returned separately; it can only ever be a prefix.
func tokenize(text string) (lead string, segments []segment) {
	parts := strings.Split(text, delimiter)
	lead = strings.TrimSpace(parts[0])
	for _, part := range parts[1:] {
		raw := strings.TrimSpace(part)
		if raw == "" {
			continue
		}
		label, value, found := strings.Cut(raw, "=")
		label = strings.TrimSpace(label)
		if !found || label == "" {
			segments = append(segments, segment{bare: true, raw: raw})
			continue
		}
		segments = append(segments, segment{
			label: label,
			value: strings.TrimSpace(value),
			raw:   raw,
		})
	}
	return lead, segments
}

// splitList splits on sep, trims every item and drops empty ones.
func splitList(s string, sep string) []string {
	var res []string
	for _, item := range strings.Split(s, sep) {
		item = strings.TrimSpace(item)
		if item != "" {
			res = append(res, item)
		}
	}
	return res
}
