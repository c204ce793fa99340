package status

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Table hands out one stable *T per metric name
// Components look up once at construction, the hot path touches only the pointer
type Table[T any] struct {
	items sync.Map // string -> *T
	count atomic.Int64
}

func NewTable[T any]() *Table[T] {
	return &Table[T]{}
}

// Get returns the value for name, allocating it on first use
func (t *Table[T]) Get(name string) *T {
	if v, ok := t.items.Load(name); ok {
		return v.(*T)
	}
	v, loaded := t.items.LoadOrStore(name, new(T))
	if !loaded {
		t.count.Add(1)
	}
	return v.(*T)
}

func (t *Table[T]) Has(name string) bool {
	_, ok := t.items.Load(name)
	return ok
}

func (t *Table[T]) Count() int { return int(t.count.Load()) }

// Names returns every registered name in sorted order
func (t *Table[T]) Names() []string {
	names := make([]string, 0, t.Count())
	t.items.Range(func(k, _ any) bool {
		names = append(names, k.(string))
		return true
	})
	sort.Strings(names)
	return names
}

// Range visits entries by sorted name
func (t *Table[T]) Range(fn func(name string, v *T)) {
	for _, name := range t.Names() {
		v, _ := t.items.Load(name)
		fn(name, v.(*T))
	}
}
