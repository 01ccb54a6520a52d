/*
Package sparse provides a compact int32 matrix for parser tables, where
most ACTION and GOTO cells stay empty.
Every entry in the table is a single int32. Writing to an occupied position
replaces the old entry; the matrix counts such overwrites, which lets table
builders detect conflicts without storing them.

Entries are kept as (row, col, value) triplets sorted by position, i.e. in
coordinate (COO) format, and looked up by binary search.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package sparse

import (
	"fmt"
	"strings"
)

// IntMatrix is a sparse m x n matrix of int32 values:
//
//     M := NewIntMatrix(4, 4, -1)   // -1 marks empty cells
//     M.Set(2, 3, 7)
//     M.Value(2, 3)                 // 7
//     M.Set(2, 3, 8)                // M.Overwrites() == 1, M.ValueCount() == 1
//     M.Value(0, 0)                 // -1
//
// Entries cannot be removed.
type IntMatrix struct {
	values     []triplet
	rowcnt     int
	colcnt     int
	nullval    int32
	overwrites int
}

// triplet is one stored cell.
type triplet struct {
	row, col int
	value    int32
}

// NewIntMatrix returns an empty m x n matrix. Cells never set read as
// nullValue; DefaultNullValue is a safe choice for tables holding
// arbitrary small integers.
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{
		values:  []triplet{},
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// DefaultNullValue is math.MinInt32.
const DefaultNullValue = -2147483648

// M is the number of rows.
func (m *IntMatrix) M() int {
	return m.rowcnt
}

// N is the number of columns.
func (m *IntMatrix) N() int {
	return m.colcnt
}

// NullValue is the value read from empty cells.
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount is the number of occupied cells.
func (m *IntMatrix) ValueCount() int {
	return len(m.values)
}

// Overwrites returns how often Set replaced an existing, different value.
func (m *IntMatrix) Overwrites() int {
	return m.overwrites
}

// Value reads cell (i,j).
func (m *IntMatrix) Value(i, j int) int32 {
	if k, found := m.find(i, j); found {
		return m.values[k].value
	}
	return m.nullval
}

// Set a value in the matrix at position (i,j). It returns the value which
// has previously been stored at (i,j), or NullValue.
// Setting a position outside the matrix' dimensions panics.
func (m *IntMatrix) Set(i, j int, value int32) int32 {
	if i < 0 || i >= m.rowcnt || j < 0 || j >= m.colcnt {
		panic(fmt.Sprintf("sparse: index (%d,%d) out of range %dx%d", i, j, m.rowcnt, m.colcnt))
	}
	at, found := m.find(i, j)
	if found {
		old := m.values[at].value
		if old != value {
			m.overwrites++
		}
		m.values[at].value = value
		return old
	}
	cell := triplet{row: i, col: j, value: value}
	m.values = append(m.values, triplet{})
	copy(m.values[at+1:], m.values[at:])
	m.values[at] = cell
	return m.nullval
}

// Row calls f for every non-null entry of row i, in column order.
func (m *IntMatrix) Row(i int, f func(j int, value int32)) {
	k, _ := m.find(i, 0)
	for ; k < len(m.values) && m.values[k].row == i; k++ {
		f(m.values[k].col, m.values[k].value)
	}
}

// find does a binary search for position (i,j). It returns the index where
// the triplet is or would have to be inserted.
func (m *IntMatrix) find(i, j int) (int, bool) {
	lo, hi := 0, len(m.values)
	for lo < hi {
		mid := (lo + hi) / 2
		if m.values[mid].before(i, j) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo, lo < len(m.values) && m.values[lo].at(i, j)
}

func (t *triplet) before(i, j int) bool {
	return t.row < i || (t.row == i && t.col < j)
}

func (t *triplet) at(i, j int) bool {
	return t.row == i && t.col == j
}

func (m *IntMatrix) String() string {
	cells := make([]string, len(m.values))
	for k, t := range m.values {
		cells[k] = fmt.Sprintf("(%d,%d)=%d", t.row, t.col, t.value)
	}
	return fmt.Sprintf("IntMatrix %dx%d [%s]", m.rowcnt, m.colcnt, strings.Join(cells, ", "))
}
