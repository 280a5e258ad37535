package metrics

import (
	"sort"
	"strings"
)

// Labels maps label keys to values for one series. Order is irrelevant;
// two Labels with the same key/value pairs identify the same series.
type Labels map[string]string

// clone returns a defensive copy so callers cannot mutate stored labels.
func (l Labels) clone() Labels {
	if l == nil {
		return nil
	}
	out := make(Labels, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

// signature produces the canonical series key: values joined in sorted key
// order with a separator that cannot occur in label names.
func (l Labels) signature() string {
	if len(l) == 0 {
		return ""
	}
	keys := make([]string, 0, len(l))
	for k := range l {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('\xff')
		}
		sb.WriteString(k)
		sb.WriteByte('\xfe')
		sb.WriteString(l[k])
	}
	return sb.String()
}

// matchesKeys reports whether the label set supplies exactly the declared
// keys, no more and no fewer.
func (l Labels) matchesKeys(declared []string) bool {
	if len(l) != len(declared) {
		return false
	}
	for _, k := range declared {
		if _, ok := l[k]; !ok {
			return false
		}
	}
	return true
}

// sortedKeys returns the declared keys in lexical order for rendering.
func sortedKeys(keys []string) []string {
	out := make([]string, len(keys))
	copy(out, keys)
	sort.Strings(out)
	return out
}
