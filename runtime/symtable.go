package runtime

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Symbol table for the names a TAC program defines: variables, temporaries
// and labels.

// Tag is an entry of a TAC symbol table. Grammar symbols live in package lr;
// tags name the storage locations of a generated program.
type Tag struct {
	name  string
	Kind  TagKind
	Defs  int         // number of definitions (assignments) seen
	UData interface{} // user data; an interpreter stores the tag's value here
}

// TagKind classifies tags.
type TagKind int8

// Kinds of tags
const (
	Undefined TagKind = iota
	Variable
	Temporary
	Label
)

func (k TagKind) String() string {
	switch k {
	case Variable:
		return "variable"
	case Temporary:
		return "temporary"
	case Label:
		return "label"
	}
	return "undefined"
}

// NewTag returns an untyped tag for a name.
func NewTag(nm string) *Tag {
	return &Tag{name: nm}
}

// String renders a tag for debugging, e.g. "<tag 'a':variable>".
func (s *Tag) String() string {
	return fmt.Sprintf("<tag '%s':%s>", s.Name(), s.Kind)
}

// Name is the program name of the tag.
func (s *Tag) Name() string {
	return s.name
}

// --- Table ----------------------------------------------------------------

// SymbolTable maps names to tags. The zero value is not usable; create
// tables with NewSymbolTable.
type SymbolTable struct {
	Table     map[string]*Tag
	createTag func(string) *Tag
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	var symtab = SymbolTable{
		Table:     make(map[string]*Tag),
		createTag: NewTag,
	}
	return &symtab
}

// ResolveTag looks up a name, returning nil for unknown names.
func (t *SymbolTable) ResolveTag(tagname string) *Tag {
	return t.Table[tagname]
}

// ResolveOrDefineTag looks up a name and creates a tag for it if it is
// unknown. The flag tells if the tag existed before. An empty name yields
// (nil, false).
func (t *SymbolTable) ResolveOrDefineTag(tagname string) (*Tag, bool) {
	if len(tagname) == 0 {
		return nil, false
	}
	if tag := t.ResolveTag(tagname); tag != nil {
		return tag, true
	}
	tag, _ := t.DefineTag(tagname)
	return tag, false
}

// DefineTag stores a fresh tag under a non-empty name, replacing any
// previous one. It returns the new tag and the replaced one, if any.
func (t *SymbolTable) DefineTag(tagname string) (*Tag, *Tag) {
	if len(tagname) == 0 {
		return nil, nil
	}
	tag := t.createTag(tagname)
	return tag, t.InsertTag(tag)
}

// InsertTag stores an existing tag and returns the one it replaces.
func (t *SymbolTable) InsertTag(tag *Tag) *Tag {
	prev := t.Table[tag.name]
	t.Table[tag.name] = tag
	return prev
}

// Record notes a definition of a name of a given kind, creating the tag
// if necessary. A tag's kind is set by its first definition.
func (t *SymbolTable) Record(tagname string, kind TagKind) *Tag {
	tag, found := t.ResolveOrDefineTag(tagname)
	if tag == nil {
		return nil
	}
	if !found || tag.Kind == Undefined {
		tag.Kind = kind
	}
	tag.Defs++
	return tag
}

// Size is the number of names in the table.
func (t *SymbolTable) Size() int {
	return len(t.Table)
}

// Each calls mapper for every tag, sorted by name.
func (t *SymbolTable) Each(mapper func(string, *Tag)) {
	names := maps.Keys(t.Table)
	slices.Sort(names)
	for _, k := range names {
		mapper(k, t.Table[k])
	}
}

// Names returns the names of all tags of a given kind, in order.
func (t *SymbolTable) Names(kind TagKind) []string {
	var names []string
	t.Each(func(name string, tag *Tag) {
		if tag.Kind == kind {
			names = append(names, name)
		}
	})
	return names
}
