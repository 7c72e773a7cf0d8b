package model

import (
	"slices"
	"strings"
)

// NormalizeLabels trims labels, drops empties and collapses duplicates. The result is sorted.
func NormalizeLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		out = append(out, l)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
