package definition

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Encode writes d in the tagged-record format, one record per line, so that
// Parse reproduces d exactly. Pairs that Parse would normalize fail the call:
// values containing '>' or line breaks, values with leading or trailing
// whitespace, and tags not in canonical upper-case spelling.
func Encode(w io.Writer, d *Definition) error {
	bw := bufio.NewWriter(w)
	for i, rec := range d.Records {
		if rec.Kind != KindNode && rec.Kind != KindEdge {
			return fmt.Errorf("record %d: unknown kind %q", i, rec.Kind)
		}
		fmt.Fprintf(bw, "<%s:%s>", TagType, rec.Kind)
		for _, p := range rec.Pairs {
			if err := encodable(p); err != nil {
				return fmt.Errorf("record %d: %w", i, err)
			}
			fmt.Fprintf(bw, "<%s:%s>", p.Tag, p.Value)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func encodable(p Pair) error {
	canonical := strings.ToUpper(strings.TrimSpace(p.Tag))
	if alias, ok := tagAliases[canonical]; ok {
		canonical = alias
	}
	switch {
	case p.Tag == "" || p.Tag != canonical || strings.ContainsAny(p.Tag, "<>:\r\n"):
		return fmt.Errorf("tag %q cannot be encoded", p.Tag)
	case strings.ContainsAny(p.Value, ">\r\n"):
		return fmt.Errorf("%s value %q cannot be encoded", p.Tag, p.Value)
	case p.Value != strings.TrimSpace(p.Value):
		return fmt.Errorf("%s value %q has surrounding whitespace", p.Tag, p.Value)
	}
	return nil
}

// String renders the definition, or an error marker when it cannot be encoded.
func (d *Definition) String() string {
	var sb strings.Builder
	if err := Encode(&sb, d); err != nil {
		return fmt.Sprintf("<invalid definition: %v>", err)
	}
	return sb.String()
}
