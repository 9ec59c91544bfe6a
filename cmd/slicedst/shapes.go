package main

import (
	"fmt"
	"strings"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/slicedst/layout"
)

// shape is a header or element type the CLI can lay out, written as a WIT
// type. The layout is the Go representation, not the canonical ABI one.
type shape struct {
	name   string
	layout layout.Layout
}

var primitives = []wit.Type{
	wit.Bool{}, wit.U8{}, wit.S8{}, wit.U16{}, wit.S16{},
	wit.U32{}, wit.S32{}, wit.U64{}, wit.S64{},
	wit.F32{}, wit.F64{}, wit.Char{}, wit.String{},
}

// shapes are the choices offered by the explorer.
var shapes = buildShapes()

func buildShapes() []shape {
	out := []shape{{name: "unit", layout: layout.Of[struct{}]()}}
	for _, t := range primitives {
		l, _ := goLayout(t)
		out = append(out, shape{name: witTypeStr(t), layout: l})
	}
	return out
}

// goLayout maps a WIT type to the layout of the Go type that holds it.
// Records and tuples become structs, options a {bool, T} pair and lists
// slices.
func goLayout(t wit.Type) (layout.Layout, error) {
	switch v := t.(type) {
	case wit.Bool:
		return layout.Of[bool](), nil
	case wit.U8:
		return layout.Of[uint8](), nil
	case wit.S8:
		return layout.Of[int8](), nil
	case wit.U16:
		return layout.Of[uint16](), nil
	case wit.S16:
		return layout.Of[int16](), nil
	case wit.U32:
		return layout.Of[uint32](), nil
	case wit.S32:
		return layout.Of[int32](), nil
	case wit.U64:
		return layout.Of[uint64](), nil
	case wit.S64:
		return layout.Of[int64](), nil
	case wit.F32:
		return layout.Of[float32](), nil
	case wit.F64:
		return layout.Of[float64](), nil
	case wit.Char:
		return layout.Of[rune](), nil
	case wit.String:
		return layout.Of[string](), nil
	case *wit.TypeDef:
		switch k := v.Kind.(type) {
		case *wit.Record:
			fields := make([]wit.Type, len(k.Fields))
			for i, f := range k.Fields {
				fields[i] = f.Type
			}
			return structLayout(fields)
		case *wit.Tuple:
			return structLayout(k.Types)
		case *wit.Option:
			return structLayout([]wit.Type{wit.Bool{}, k.Type})
		case *wit.List:
			return layout.Of[[]byte](), nil
		default:
			return layout.Layout{}, fmt.Errorf("unsupported WIT type %s", witTypeStr(t))
		}
	default:
		return layout.Layout{}, fmt.Errorf("unsupported WIT type %T", t)
	}
}

func structLayout(fields []wit.Type) (layout.Layout, error) {
	l := layout.Of[struct{}]()
	for _, f := range fields {
		fl, err := goLayout(f)
		if err != nil {
			return layout.Layout{}, err
		}
		if l, _, err = l.Extend(fl); err != nil {
			return layout.Layout{}, err
		}
	}
	return l.PadToAlign(), nil
}

func witTypeStr(t wit.Type) string {
	switch v := t.(type) {
	case wit.Bool:
		return "bool"
	case wit.U8:
		return "u8"
	case wit.S8:
		return "s8"
	case wit.U16:
		return "u16"
	case wit.S16:
		return "s16"
	case wit.U32:
		return "u32"
	case wit.S32:
		return "s32"
	case wit.U64:
		return "u64"
	case wit.S64:
		return "s64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	case wit.Char:
		return "char"
	case wit.String:
		return "string"
	case *wit.TypeDef:
		if v.Name != nil {
			return *v.Name
		}
		switch k := v.Kind.(type) {
		case *wit.Record:
			parts := make([]string, len(k.Fields))
			for i, f := range k.Fields {
				parts[i] = f.Name + ": " + witTypeStr(f.Type)
			}
			return "record{" + strings.Join(parts, ", ") + "}"
		case *wit.Tuple:
			parts := make([]string, len(k.Types))
			for i, e := range k.Types {
				parts[i] = witTypeStr(e)
			}
			return "tuple<" + strings.Join(parts, ", ") + ">"
		case *wit.Option:
			return "option<" + witTypeStr(k.Type) + ">"
		case *wit.List:
			return "list<" + witTypeStr(k.Type) + ">"
		}
		return "typedef"
	default:
		return fmt.Sprintf("%T", t)
	}
}

// parseShape accepts a WIT type, "unit", or a fixed array of a shape, e.g.
// "u32", "[3]u8" or "record{id: u32, tags: list<string>}".
func parseShape(s string) (shape, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "["); ok {
		count, elem, ok := strings.Cut(rest, "]")
		if !ok {
			return shape{}, fmt.Errorf("malformed array shape %q", s)
		}
		var n int
		if _, err := fmt.Sscanf(count, "%d", &n); err != nil || n < 0 {
			return shape{}, fmt.Errorf("bad array length in %q", s)
		}
		inner, err := parseShape(elem)
		if err != nil {
			return shape{}, err
		}
		l, err := layout.ArrayOf(inner.layout, n)
		if err != nil {
			return shape{}, err
		}
		return shape{name: fmt.Sprintf("[%d]%s", n, inner.name), layout: l}, nil
	}
	if s == "()" || s == "unit" {
		return shapes[0], nil
	}

	t, err := parseWIT(s)
	if err != nil {
		return shape{}, err
	}
	l, err := goLayout(t)
	if err != nil {
		return shape{}, err
	}
	return shape{name: witTypeStr(t), layout: l}, nil
}

func shapeNames() string {
	names := make([]string, len(shapes))
	for i, sh := range shapes {
		names[i] = sh.name
	}
	return strings.Join(names, ", ")
}

// parseWIT reads the anonymous WIT type expressions the CLI accepts:
// primitives, list<T>, option<T>, tuple<T, ...> and record{name: T, ...}.
func parseWIT(s string) (wit.Type, error) {
	p := &witParser{src: s}
	t, err := p.typ()
	if err != nil {
		return nil, err
	}
	p.space()
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return t, nil
}

type witParser struct {
	src string
	pos int
}

func (p *witParser) errorf(format string, args ...any) error {
	return fmt.Errorf("shape %q at %d: %s", p.src, p.pos, fmt.Sprintf(format, args...))
}

func (p *witParser) space() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *witParser) ident() string {
	p.space()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c != '-' && (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

// accept consumes c if it is the next non-space byte.
func (p *witParser) accept(c byte) bool {
	p.space()
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *witParser) expect(c byte) error {
	if !p.accept(c) {
		return p.errorf("expected %q", c)
	}
	return nil
}

func (p *witParser) typ() (wit.Type, error) {
	name := p.ident()
	switch name {
	case "list", "option":
		if err := p.expect('<'); err != nil {
			return nil, err
		}
		inner, err := p.typ()
		if err != nil {
			return nil, err
		}
		if err := p.expect('>'); err != nil {
			return nil, err
		}
		if name == "list" {
			return &wit.TypeDef{Kind: &wit.List{Type: inner}}, nil
		}
		return &wit.TypeDef{Kind: &wit.Option{Type: inner}}, nil

	case "tuple":
		if err := p.expect('<'); err != nil {
			return nil, err
		}
		var types []wit.Type
		for {
			t, err := p.typ()
			if err != nil {
				return nil, err
			}
			types = append(types, t)
			if p.accept('>') {
				return &wit.TypeDef{Kind: &wit.Tuple{Types: types}}, nil
			}
			if err := p.expect(','); err != nil {
				return nil, err
			}
		}

	case "record":
		if err := p.expect('{'); err != nil {
			return nil, err
		}
		var fields []wit.Field
		for {
			field := p.ident()
			if field == "" {
				return nil, p.errorf("expected field name")
			}
			if err := p.expect(':'); err != nil {
				return nil, err
			}
			t, err := p.typ()
			if err != nil {
				return nil, err
			}
			fields = append(fields, wit.Field{Name: field, Type: t})
			if p.accept('}') {
				return &wit.TypeDef{Kind: &wit.Record{Fields: fields}}, nil
			}
			if err := p.expect(','); err != nil {
				return nil, err
			}
		}

	case "":
		return nil, p.errorf("expected a type")
	}

	for _, t := range primitives {
		if witTypeStr(t) == name {
			return t, nil
		}
	}
	return nil, fmt.Errorf("unknown shape %q (want one of %s, or list/option/tuple/record)", name, shapeNames())
}
