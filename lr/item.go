package lr

import (
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
)

// Item is an LR(1) item: a rule, a position within its right hand side
// (the dot), and a lookahead terminal. Items are values; two items are equal
// if rule, dot and lookahead are equal.
type Item struct {
	rule *Rule
	dot  int
	la   *Symbol
}

// StartItem returns the item [S' -> • S, $] for a grammar.
func StartItem(g *Grammar) Item {
	return Item{rule: g.rules[0], dot: 0, la: g.eof}
}

// Rule returns the rule of an item.
func (i Item) Rule() *Rule {
	return i.rule
}

// Dot returns the dot position of an item.
func (i Item) Dot() int {
	return i.dot
}

// Lookahead returns the lookahead terminal of an item.
func (i Item) Lookahead() *Symbol {
	return i.la
}

// PeekSymbol returns the symbol after the dot, or nil for complete items.
func (i Item) PeekSymbol() *Symbol {
	if i.dot >= len(i.rule.rhs) {
		return nil
	}
	return i.rule.rhs[i.dot]
}

// IsComplete is a predicate: is the dot at the end of the right hand side?
func (i Item) IsComplete() bool {
	return i.dot >= len(i.rule.rhs)
}

// Advance returns a new item with the dot moved over the next symbol.
func (i Item) Advance() Item {
	if i.IsComplete() {
		return i
	}
	return Item{rule: i.rule, dot: i.dot + 1, la: i.la}
}

// beta returns the symbols after the symbol after the dot.
func (i Item) beta() []*Symbol {
	if i.dot+1 >= len(i.rule.rhs) {
		return nil
	}
	return i.rule.rhs[i.dot+1:]
}

// String renders an item as "A -> α • β, a".
func (i Item) String() string {
	var b strings.Builder
	b.WriteString(i.rule.LHS.Name)
	b.WriteString(" ->")
	for k, A := range i.rule.rhs {
		if k == i.dot {
			b.WriteString(" •")
		}
		b.WriteByte(' ')
		b.WriteString(A.Name)
	}
	if i.IsComplete() {
		b.WriteString(" •")
	}
	b.WriteString(", ")
	b.WriteString(i.la.Name)
	return b.String()
}

// We need this for item sets. Items are ordered by rule, dot and lookahead.
func itemComparator(x1, x2 interface{}) int {
	i1, i2 := x1.(Item), x2.(Item)
	if d := i1.rule.Serial - i2.rule.Serial; d != 0 {
		return sign(d)
	}
	if d := i1.dot - i2.dot; d != 0 {
		return sign(d)
	}
	return sign(i1.la.Value - i2.la.Value)
}

func sign(d int) int {
	if d < 0 {
		return -1
	} else if d > 0 {
		return 1
	}
	return 0
}

// --- Item sets -------------------------------------------------------------

// ItemSet is a set of LR(1) items. Item sets are kept in a canonical order,
// making equality independent of insertion order.
type ItemSet struct {
	items *treeset.Set
}

func newItemSet() *ItemSet {
	return &ItemSet{items: treeset.NewWith(itemComparator)}
}

// Add items to the set.
func (S *ItemSet) Add(items ...Item) {
	for _, i := range items {
		S.items.Add(i)
	}
}

// Contains is a predicate: is item i an element of S?
func (S *ItemSet) Contains(i Item) bool {
	return S.items.Contains(i)
}

// Size returns the number of items in S.
func (S *ItemSet) Size() int {
	return S.items.Size()
}

// Empty is a predicate: is S the empty set?
func (S *ItemSet) Empty() bool {
	return S.items.Empty()
}

// Items returns the items of S in canonical order.
func (S *ItemSet) Items() []Item {
	vals := S.items.Values()
	items := make([]Item, len(vals))
	for k, v := range vals {
		items[k] = v.(Item)
	}
	return items
}

// Equals compares two item sets by value.
func (S *ItemSet) Equals(T *ItemSet) bool {
	if S.Size() != T.Size() {
		return false
	}
	it1, it2 := S.items.Iterator(), T.items.Iterator()
	for it1.Next() && it2.Next() {
		if itemComparator(it1.Value(), it2.Value()) != 0 {
			return false
		}
	}
	return true
}

type itemKey struct {
	Rule int
	Dot  int
	LA   int
}

// key returns a hash of the canonical item list. Equal item sets have equal
// keys; different item sets may collide, so keys serve as buckets only.
func (S *ItemSet) key() string {
	k := struct{ Items []itemKey }{Items: make([]itemKey, 0, S.Size())}
	for _, i := range S.Items() {
		k.Items = append(k.Items, itemKey{Rule: i.rule.Serial, Dot: i.dot, LA: i.la.Value})
	}
	h, err := structhash.Hash(k, 1)
	if err != nil {
		panic(err) // only fails for unsupported types
	}
	return h
}

func (S *ItemSet) String() string {
	var b strings.Builder
	b.WriteString("{")
	for k, i := range S.Items() {
		if k == 0 {
			b.WriteString(" ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(i.String())
	}
	b.WriteString(" }")
	return b.String()
}

// Dump is a debugging helper, tracing the items of S at level Debug.
func (S *ItemSet) Dump() {
	for _, i := range S.Items() {
		tracer().Debugf("    %s", i)
	}
}
