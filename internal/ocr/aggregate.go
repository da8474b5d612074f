package ocr

import "strings"

// Aggregate strips geometry and confidence from observations and cleans the
// text, yielding one token per observation. The source slice is never
// mutated and observation order is preserved: len(out) == len(obs).
func Aggregate(obs []Observation) []string {
	out := make([]string, len(obs))
	for i, o := range obs {
		out[i] = strings.TrimSpace(strings.ReplaceAll(o.Text, `"`, ""))
	}
	return out
}
