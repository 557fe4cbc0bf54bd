package core

import (
	"slices"
	"strings"
)

// Placeholders maps template keys (without braces) to their values.
// "{version}" in a template is replaced by Placeholders["version"].
type Placeholders map[string]string

// Expand replaces every known {key} in s. Unknown placeholders are left as-is.
func (p Placeholders) Expand(s string) string {
	if len(p) == 0 || !strings.Contains(s, "{") {
		return s
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", p[k])
	}
	return strings.NewReplacer(pairs...).Replace(s)
}

// ExpandAll applies Expand to every element of args and returns a new slice.
func (p Placeholders) ExpandAll(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = p.Expand(a)
	}
	return out
}
