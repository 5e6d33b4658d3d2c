package ifc

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
)

// Model is a parsed IFC exchange file. It is read-only after Parse and safe
// for concurrent readers.
type Model struct {
	schema      string
	fileName    string
	description string
	entities    map[int]*Entity
	order       []*Entity

	indexOnce sync.Once
	definedBy map[int][]*Entity // object id -> IfcRelDefinesByProperties
	typedBy   map[int]*Entity   // object id -> IfcRelDefinesByType
	contained map[int]*Entity   // element id -> IfcRelContainedInSpatialStructure
}

// Entity is one instance of the DATA section.
type Entity struct {
	ID      int
	Keyword string
	Args    []Param
	// Parts lists the leaf keywords of a complex instance. Complex
	// instances carry no positional arguments.
	Parts []string

	typ   string
	model *Model
}

// Open reads and parses the file at path.
func Open(path string) (*Model, error) {
	return OpenContext(context.Background(), path)
}

// OpenContext is Open with cancellation.
func OpenContext(ctx context.Context, path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ifc file: %w", err)
	}
	defer f.Close()
	return ParseContext(ctx, f)
}

// Parse reads an ISO-10303-21 exchange structure.
func Parse(r io.Reader) (*Model, error) {
	return ParseContext(context.Background(), r)
}

// ParseContext is Parse with cancellation. Large files are abandoned with
// ctx.Err() once ctx is done.
func ParseContext(ctx context.Context, r io.Reader) (*Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading ifc data: %w", err)
	}
	h, raw, err := parseExchange(ctx, src)
	if err != nil {
		return nil, err
	}
	m := &Model{
		schema:      h.schema,
		fileName:    h.fileName,
		description: h.description,
		entities:    make(map[int]*Entity, len(raw)),
		order:       make([]*Entity, 0, len(raw)),
	}
	for _, ri := range raw {
		if _, dup := m.entities[ri.id]; dup {
			return nil, &ParseError{Line: ri.line, Msg: fmt.Sprintf("duplicate instance id #%d", ri.id)}
		}
		e := &Entity{
			ID:      ri.id,
			Keyword: ri.keyword,
			Args:    ri.args,
			Parts:   ri.parts,
			typ:     CanonicalName(ri.keyword),
			model:   m,
		}
		m.entities[e.ID] = e
		m.order = append(m.order, e)
	}
	return m, nil
}

// Schema returns the FILE_SCHEMA identifier, e.g. IFC2X3 or IFC4.
func (m *Model) Schema() string { return m.schema }

// FileName returns the name recorded in the FILE_NAME header entry.
func (m *Model) FileName() string { return m.fileName }

// Len returns the number of instances in the model.
func (m *Model) Len() int { return len(m.order) }

// ByID returns the instance #id.
func (m *Model) ByID(id int) (*Entity, bool) {
	e, ok := m.entities[id]
	return e, ok
}

// EntitiesOfType returns the instances of name and its known subtypes in
// file order. The match is case-insensitive.
func (m *Model) EntitiesOfType(name string) []*Entity {
	var out []*Entity
	for _, e := range m.order {
		if e.IsA(name) {
			out = append(out, e)
		}
	}
	return out
}

// AllEntityTypeNames returns the sorted distinct type names present.
func (m *Model) AllEntityTypeNames() []string {
	seen := map[string]struct{}{}
	for _, e := range m.order {
		seen[e.typ] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Type returns the schema spelling of the entity's type, or its raw keyword
// when the type is unknown.
func (e *Entity) Type() string { return e.typ }

// IsA reports whether the entity is an instance of name or a subtype of it.
func (e *Entity) IsA(name string) bool {
	if len(e.Parts) > 0 {
		for _, p := range e.Parts {
			if IsSubtypeOf(p, name) {
				return true
			}
		}
		return false
	}
	return IsSubtypeOf(e.typ, name)
}

// Arg returns positional argument i, or a null Param when out of range.
func (e *Entity) Arg(i int) Param {
	if i < 0 || i >= len(e.Args) {
		return Param{Kind: ParamNull}
	}
	return e.Args[i]
}

// Attr returns the named explicit attribute. ok is false when the type does
// not declare the attribute or the instance is too short to carry it.
func (e *Entity) Attr(name string) (Param, bool) {
	idx, ok := attributeIndex(e.typ, name)
	if !ok || idx >= len(e.Args) {
		return Param{Kind: ParamNull}, false
	}
	return e.Args[idx], true
}

// AttrString returns a string or enum attribute, or "" when it is unset.
func (e *Entity) AttrString(name string) string {
	p, ok := e.Attr(name)
	if !ok {
		return ""
	}
	switch p.Kind {
	case ParamString, ParamEnum:
		return p.Str
	case ParamTyped:
		if len(p.List) == 1 {
			return p.List[0].Str
		}
	}
	return ""
}

// resolve follows a reference argument of e.
func (e *Entity) resolve(p Param, attr string) (*Entity, error) {
	if p.Kind != ParamRef {
		return nil, &StructureError{EntityID: e.ID, Msg: fmt.Sprintf("%s is not a reference", attr)}
	}
	target, ok := e.model.entities[p.Ref]
	if !ok {
		return nil, &StructureError{EntityID: e.ID, Msg: fmt.Sprintf("%s #%d", attr, p.Ref), Err: ErrDanglingReference}
	}
	return target, nil
}

// resolveAll follows a reference or a list of references.
func (e *Entity) resolveAll(p Param, attr string) ([]*Entity, error) {
	if p.Kind != ParamList {
		t, err := e.resolve(p, attr)
		if err != nil {
			return nil, err
		}
		return []*Entity{t}, nil
	}
	out := make([]*Entity, 0, len(p.List))
	for _, item := range p.List {
		t, err := e.resolve(item, attr)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (e *Entity) String() string {
	return fmt.Sprintf("#%d=%s", e.ID, strings.ToUpper(e.typ))
}

// buildIndexes inverts the relationships the element utilities follow.
// References that point nowhere are skipped here; the side of a relationship
// that is actually read reports them.
func (m *Model) buildIndexes() {
	m.indexOnce.Do(func() {
		m.definedBy = map[int][]*Entity{}
		m.typedBy = map[int]*Entity{}
		m.contained = map[int]*Entity{}
		for _, e := range m.order {
			var related Param
			var ok bool
			switch {
			case e.IsA("IfcRelDefinesByProperties"), e.IsA("IfcRelDefinesByType"):
				related, ok = e.Attr("RelatedObjects")
			case e.IsA("IfcRelContainedInSpatialStructure"):
				related, ok = e.Attr("RelatedElements")
			default:
				continue
			}
			if !ok || related.Kind != ParamList {
				continue
			}
			for _, r := range related.List {
				if r.Kind != ParamRef {
					continue
				}
				switch {
				case e.IsA("IfcRelDefinesByProperties"):
					m.definedBy[r.Ref] = append(m.definedBy[r.Ref], e)
				case e.IsA("IfcRelDefinesByType"):
					m.typedBy[r.Ref] = e
				default:
					if _, seen := m.contained[r.Ref]; !seen {
						m.contained[r.Ref] = e
					}
				}
			}
		}
	})
}
