package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lattice-wm/lattice/internal/stack"
)

// decodeFunc parses a layout's own fields (the tag word has already been
// consumed) from p.
type decodeFunc func(p *parser) (stack.Layout, error)

// registry maps a layout's encode tag to its decoder, so that restart can
// round-trip any built-in or user-registered layout through Encode/Decode.
// Analogous to the teacher's small-registry style (wm's action table)
// generalised to a name -> constructor map.
var registry = map[string]decodeFunc{
	"tall":   decodeTall,
	"mirror": decodeMirror,
	"full":   decodeFull,
	"grid":   decodeGrid,
	"choose": decodeChoose,
}

// Register adds a user-defined layout's decoder under tag. Call this from
// an init() in a package that defines a custom Layout, mirroring how the
// user's binding configuration (out of scope per spec.md §1) extends the
// default action tables.
func Register(tag string, fn decodeFunc) { registry[tag] = fn }

// Decode parses the textual form produced by a Layout's Encode method.
func Decode(s string) (stack.Layout, error) {
	p := newParser(s)
	tag, err := p.token()
	if err != nil {
		return nil, err
	}
	fn, ok := registry[tag]
	if !ok {
		return nil, fmt.Errorf("layout: unknown tag %q", tag)
	}
	return fn(p)
}

// parser is a minimal whitespace/length-prefixed tokenizer. Nested layouts
// are encoded as "<byteLen> <thatManyBytes>" so that an inner Encode()
// output containing arbitrary whitespace never confuses the outer parse.
type parser struct {
	s   string
	pos int
}

func newParser(s string) *parser { return &parser{s: s} }

func (p *parser) skipSpace() {
	for p.pos < len(p.s) && p.s[p.pos] == ' ' {
		p.pos++
	}
}

func (p *parser) token() (string, error) {
	p.skipSpace()
	if p.pos >= len(p.s) {
		return "", fmt.Errorf("layout: unexpected end of input")
	}
	start := p.pos
	for p.pos < len(p.s) && p.s[p.pos] != ' ' {
		p.pos++
	}
	return p.s[start:p.pos], nil
}

func (p *parser) int() (int, error) {
	tok, err := p.token()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("layout: expected integer, got %q: %w", tok, err)
	}
	return n, nil
}

func (p *parser) float() (float64, error) {
	tok, err := p.token()
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("layout: expected float, got %q: %w", tok, err)
	}
	return f, nil
}

// bytes reads exactly n raw bytes, skipping exactly one separating space
// before them (the format written by Encode is "<n> <n bytes>").
func (p *parser) bytes(n int) (string, error) {
	if p.pos < len(p.s) && p.s[p.pos] == ' ' {
		p.pos++
	}
	if p.pos+n > len(p.s) {
		return "", fmt.Errorf("layout: expected %d bytes, only %d remain", n, len(p.s)-p.pos)
	}
	out := p.s[p.pos : p.pos+n]
	p.pos += n
	return out, nil
}

// Describe renders a layout tree as xmonad-style status text, joining
// Choose's two branches with a separator, grounded on the teacher's
// titlebar text (wm/frame.go's setTitleProperty draws single-line status).
func Describe(l stack.Layout) string {
	if c, ok := l.(*Choose); ok {
		return strings.Join([]string{c.A.Description(), c.B.Description()}, " | ")
	}
	return l.Description()
}
