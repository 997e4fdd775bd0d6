package definition

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/chatgraph/pkg/domain"
)

// maxLineSize bounds a single record; long answers are common.
const maxLineSize = 1 << 20

// Parse reads a whole definition. Any syntax error or missing mandatory field
// fails the call with a *domain.DefinitionError wrapping ErrMalformedDefinition.
func Parse(r io.Reader) (*Definition, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	def := &Definition{}
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		rec, err := parseRecord(text)
		if err != nil {
			return nil, &domain.DefinitionError{Kind: domain.ErrMalformedDefinition, Line: line, Detail: err.Error()}
		}
		rec.Line = line
		def.Records = append(def.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, &domain.DefinitionError{
			Kind:   domain.ErrMalformedDefinition,
			Line:   line + 1,
			Detail: fmt.Sprintf("read failed: %v", err),
		}
	}
	return def, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string) (*Definition, error) {
	return Parse(strings.NewReader(s))
}

func parseRecord(text string) (Record, error) {
	pairs, err := tokenize(text)
	if err != nil {
		return Record{}, err
	}

	rec := Record{}
	for _, p := range pairs {
		if p.Tag != TagType {
			rec.Pairs = append(rec.Pairs, p)
			continue
		}
		if rec.Kind != "" {
			return Record{}, fmt.Errorf("record has more than one TYPE tag")
		}
		kind := Kind(strings.ToUpper(strings.TrimSpace(p.Value)))
		if kind != KindNode && kind != KindEdge {
			return Record{}, fmt.Errorf("unknown record type %q", p.Value)
		}
		rec.Kind = kind
	}
	if rec.Kind == "" {
		return Record{}, fmt.Errorf("record has no TYPE tag")
	}

	for _, tag := range rec.Kind.mandatory() {
		raw, ok := rec.Value(tag)
		if !ok {
			return Record{}, fmt.Errorf("%s record is missing %s", strings.ToLower(string(rec.Kind)), tag)
		}
		if _, ok := rec.Int(tag); !ok {
			return Record{}, fmt.Errorf("%s %q is not an integer", tag, raw)
		}
	}
	return rec, nil
}

// tokenize splits a line into <TAG:value> pairs. Whitespace between tokens
// is allowed; any other text outside angle brackets is an error.
func tokenize(text string) ([]Pair, error) {
	var pairs []Pair
	rest := text
	for {
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" {
			return pairs, nil
		}
		if rest[0] != '<' {
			return nil, fmt.Errorf("unexpected text %q outside of a tag", clip(rest))
		}
		end := strings.IndexByte(rest, '>')
		if end < 0 {
			return nil, fmt.Errorf("unterminated tag %q", clip(rest))
		}
		body := rest[1:end]
		rest = rest[end+1:]

		tag, value, ok := strings.Cut(body, ":")
		if !ok {
			return nil, fmt.Errorf("tag %q has no value separator", clip(body))
		}
		tag = strings.ToUpper(strings.TrimSpace(tag))
		if tag == "" {
			return nil, fmt.Errorf("empty tag name in %q", clip(body))
		}
		if canonical, ok := tagAliases[tag]; ok {
			tag = canonical
		}
		pairs = append(pairs, Pair{Tag: tag, Value: strings.TrimSpace(value)})
	}
}

func clip(s string) string {
	const n = 32
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
