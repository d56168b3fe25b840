package docid

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ID is the set of supported document id types.
// Every member is comparable, ordered and has a stable string encoding.
type ID interface {
	int | int64 | uint64 | string
}

// ErrTableFull is returned when more than math.MaxUint32 ids are interned.
var ErrTableFull = errors.New("docid: table full")

// Table is a bidirectional ID <-> dense index mapping.
type Table[K ID] struct {
	index map[K]uint32
	ids   []K
}

// NewTable creates an empty table.
func NewTable[K ID]() *Table[K] {
	return &Table[K]{index: make(map[K]uint32)}
}

// Intern returns the dense index of id, assigning the next free index if id is new.
func (t *Table[K]) Intern(id K) (uint32, error) {
	if idx, ok := t.index[id]; ok {
		return idx, nil
	}
	if uint64(len(t.ids)) >= math.MaxUint32 {
		return 0, ErrTableFull
	}
	idx := uint32(len(t.ids))
	t.index[id] = idx
	t.ids = append(t.ids, id)
	return idx, nil
}

// Lookup returns the dense index of id if it was interned.
func (t *Table[K]) Lookup(id K) (uint32, bool) {
	idx, ok := t.index[id]
	return idx, ok
}

// ID returns the id interned at idx. It panics if idx was never assigned.
func (t *Table[K]) ID(idx uint32) K {
	return t.ids[idx]
}

// Room returns how many more ids can be interned.
func (t *Table[K]) Room() uint64 { return math.MaxUint32 - uint64(len(t.ids)) }

// Len returns the number of interned ids.
func (t *Table[K]) Len() int { return len(t.ids) }

// KeyType names the persisted key type of K: "int" for integer ids, "str" for strings.
func KeyType[K ID]() string {
	var zero K
	if _, ok := any(zero).(string); ok {
		return "str"
	}
	return "int"
}

// Format returns the stable string encoding of id.
func Format[K ID](id K) string {
	switch v := any(id).(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case string:
		return v
	default:
		panic(fmt.Sprintf("docid: unsupported id type %T", id))
	}
}

// Parse decodes s, produced by Format, back into an id of type K.
func Parse[K ID](s string) (K, error) {
	var zero K

	var (
		v   any
		err error
	)
	switch any(zero).(type) {
	case int:
		v, err = strconv.Atoi(s)
	case int64:
		v, err = strconv.ParseInt(s, 10, 64)
	case uint64:
		v, err = strconv.ParseUint(s, 10, 64)
	case string:
		v = s
	}
	if err != nil {
		return zero, fmt.Errorf("docid: parse %q as %s id: %w", s, KeyType[K](), err)
	}

	return v.(K), nil
}
