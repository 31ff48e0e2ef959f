package filter

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/wikistream/debug"
)

// Select forwards the objects for which a boolean expression holds and
// drops the others together with everything nested in them. Documents
// are always forwarded.
//
// The expression sees the object's name as `name` and every resolved
// parameter under its own name, e.g.
//
//	object_class_reference == "XWiki.TagClass" && object_number > 0
type Select struct {
	next Filter
	prg  *vm.Program
	skip int // depth of objects inside a dropped object, 0 when forwarding
}

// NewSelect compiles expression and returns a Select forwarding to next.
func NewSelect(next Filter, expression string) (*Select, error) {
	prg, err := expr.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("error compiling %q: %w", expression, err)
	}
	return &Select{next: next, prg: prg}, nil
}

func (s *Select) match(name string, params *Parameters) (bool, error) {
	env := params.Map()
	env["name"] = name
	out, err := expr.Run(s.prg, env)
	if err != nil {
		return false, fmt.Errorf("error evaluating selection for %q: %w", name, err)
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("selection for %q returned %T, not bool", name, out)
	}
	if debug.Select() {
		debug.Logf("select: %q -> %t env %v\n", name, b, env)
	}
	return b, nil
}

func (s *Select) BeginWikiDocument(name string, params *Parameters) error {
	if s.skip > 0 {
		return nil
	}
	return s.next.BeginWikiDocument(name, params)
}

func (s *Select) EndWikiDocument(name string, params *Parameters) error {
	if s.skip > 0 {
		return nil
	}
	return s.next.EndWikiDocument(name, params)
}

func (s *Select) BeginWikiObject(name string, params *Parameters) error {
	if s.skip > 0 {
		s.skip++
		return nil
	}
	ok, err := s.match(name, params)
	if err != nil {
		return err
	}
	if !ok {
		s.skip = 1
		return nil
	}
	return s.next.BeginWikiObject(name, params)
}

func (s *Select) EndWikiObject(name string, params *Parameters) error {
	if s.skip > 0 {
		s.skip--
		return nil
	}
	return s.next.EndWikiObject(name, params)
}

func (s *Select) OnWikiObjectProperty(name string, value any, params *Parameters) error {
	if s.skip > 0 {
		return nil
	}
	return s.next.OnWikiObjectProperty(name, value, params)
}
