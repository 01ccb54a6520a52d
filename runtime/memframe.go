package runtime

import (
	"fmt"
)

// MemoryFrame is the storage of a running program. Values live in the UData
// of the tags of the frame's symbol table.
type MemoryFrame struct {
	Name        string
	SymbolTable *SymbolTable
}

// NewMemoryFrame creates an empty memory frame.
func NewMemoryFrame(nm string) *MemoryFrame {
	mf := &MemoryFrame{
		Name:        nm,
		SymbolTable: NewSymbolTable(),
	}
	T().P("mem", nm).Debugf("new memory frame")
	return mf
}

func (mf *MemoryFrame) String() string {
	return fmt.Sprintf("<mem %s [%d]>", mf.Name, mf.SymbolTable.Size())
}

// Get returns the value of a name. Names never set, including labels,
// report false.
func (mf *MemoryFrame) Get(name string) (float64, bool) {
	if tag := mf.SymbolTable.ResolveTag(name); tag != nil {
		if v, ok := tag.UData.(float64); ok {
			return v, true
		}
	}
	return 0, false
}

// Set stores the value of a name.
func (mf *MemoryFrame) Set(name string, value float64, kind TagKind) {
	tag := mf.SymbolTable.Record(name, kind)
	tag.UData = value
}
