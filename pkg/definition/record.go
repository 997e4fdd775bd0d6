package definition

import (
	"strconv"
	"strings"
)

// Kind distinguishes node records from edge records.
type Kind string

const (
	KindNode Kind = "NODE"
	KindEdge Kind = "EDGE"
)

// Well-known tags.
const (
	TagType    = "TYPE"
	TagID      = "ID"
	TagAnswer  = "ANSWER"
	TagParent  = "PARENT"
	TagChild   = "CHILD"
	TagKeyword = "KEYWORD"
)

// tagAliases maps accepted spellings to their canonical tag.
var tagAliases = map[string]string{
	"SOURCE":      TagParent,
	"DESTINATION": TagChild,
}

// Pair is one <TAG:value> token.
type Pair struct {
	Tag   string
	Value string
}

// Record is one typed line of a definition.
type Record struct {
	Line  int // 1-based source line, 0 for records built in code
	Kind  Kind
	Pairs []Pair
}

// Values returns every value of tag, in order.
func (r Record) Values(tag string) []string {
	var out []string
	for _, p := range r.Pairs {
		if p.Tag == tag {
			out = append(out, p.Value)
		}
	}
	return out
}

// Value returns the first value of tag.
func (r Record) Value(tag string) (string, bool) {
	for _, p := range r.Pairs {
		if p.Tag == tag {
			return p.Value, true
		}
	}
	return "", false
}

// Int returns the first value of tag parsed as an integer.
func (r Record) Int(tag string) (int, bool) {
	v, ok := r.Value(tag)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return n, true
}

// mandatory lists the integer tags each kind requires.
func (k Kind) mandatory() []string {
	switch k {
	case KindNode:
		return []string{TagID}
	case KindEdge:
		return []string{TagID, TagParent, TagChild}
	}
	return nil
}

// Definition is an ordered sequence of records.
type Definition struct {
	Records []Record
}

// Nodes returns the node records in file order.
func (d *Definition) Nodes() []Record { return d.filter(KindNode) }

// Edges returns the edge records in file order.
func (d *Definition) Edges() []Record { return d.filter(KindEdge) }

func (d *Definition) filter(kind Kind) []Record {
	var out []Record
	for _, r := range d.Records {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}
