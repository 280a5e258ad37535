package metrics

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// TextContentType is the Content-Type for the plaintext exposition format.
const TextContentType = "text/plain; version=0.0.4; charset=utf-8"

// Expose renders every registered metric to w in the plaintext exposition
// format. It is side-effect-free with respect to metric state; metrics
// appear in registration order and series in label-signature order.
func (r *Registry) Expose(w io.Writer) error {
	r.mu.RLock()
	fams := make([]*family, 0, len(r.order))
	for _, name := range r.order {
		fams = append(fams, r.families[name])
	}
	r.mu.RUnlock()

	for _, fam := range fams {
		if err := exposeFamily(w, fam); err != nil {
			return err
		}
	}
	return nil
}

// Render returns the full exposition text as a string.
func (r *Registry) Render() string {
	var sb strings.Builder
	_ = r.Expose(&sb)
	return sb.String()
}

func exposeFamily(w io.Writer, fam *family) error {
	samples := fam.collect()

	if fam.help != "" {
		if _, err := fmt.Fprintf(w, "# HELP %s %s\n", fam.name, escapeHelp(fam.help)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "# TYPE %s %s\n", fam.name, fam.kind); err != nil {
		return err
	}

	for _, sample := range samples {
		if err := exposeSample(w, fam, sample); err != nil {
			return err
		}
	}
	return nil
}

func exposeSample(w io.Writer, fam *family, sample Sample) error {
	if sample.Histogram == nil {
		_, err := fmt.Fprintf(w, "%s%s %s\n", fam.name, labelBlock(fam.labelKeys, sample.Labels, "", ""), formatValue(sample.Value))
		return err
	}

	snap := sample.Histogram
	for i, bound := range snap.Bounds {
		le := formatValue(bound)
		if _, err := fmt.Fprintf(w, "%s_bucket%s %d\n", fam.name, labelBlock(fam.labelKeys, sample.Labels, "le", le), snap.Counts[i]); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%s_bucket%s %d\n", fam.name, labelBlock(fam.labelKeys, sample.Labels, "le", "+Inf"), snap.Counts[len(snap.Bounds)]); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s_sum%s %s\n", fam.name, labelBlock(fam.labelKeys, sample.Labels, "", ""), formatValue(snap.Sum)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s_count%s %d\n", fam.name, labelBlock(fam.labelKeys, sample.Labels, "", ""), snap.Count)
	return err
}

// labelBlock renders {k1="v1",k2="v2"} in sorted key order, appending an
// extra pair (used for histogram le) when extraKey is non-empty. Returns ""
// for an empty block.
func labelBlock(declared []string, labels Labels, extraKey, extraVal string) string {
	if len(declared) == 0 && extraKey == "" {
		return ""
	}
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for _, k := range sortedKeys(declared) {
		if !first {
			sb.WriteByte(',')
		}
		first = false
		sb.WriteString(k)
		sb.WriteString(`="`)
		sb.WriteString(escapeLabelValue(labels[k]))
		sb.WriteByte('"')
	}
	if extraKey != "" {
		if !first {
			sb.WriteByte(',')
		}
		sb.WriteString(extraKey)
		sb.WriteString(`="`)
		sb.WriteString(extraVal)
		sb.WriteByte('"')
	}
	sb.WriteByte('}')
	return sb.String()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

var helpEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`)

func escapeLabelValue(v string) string { return labelEscaper.Replace(v) }

func escapeHelp(v string) string { return helpEscaper.Replace(v) }
