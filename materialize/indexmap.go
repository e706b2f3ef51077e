package materialize

import (
	"fmt"
	"reflect"
)

// TypeIndexMap maps a concrete type to the positions, in the original row, of
// the columns that type's materializer expects, in order.
//
// A map is usually built once per query shape and shared by every row of
// that query.
type TypeIndexMap map[reflect.Type][]int

// Remapper returns a Remapper that reads m by reference; m must not be
// modified afterwards. For a type with an entry idx it builds a new row whose
// value at i is row[idx[i]]; any other type gets row back unchanged.
//
// Convert the map once per query shape and pass the result to every unit
// with WithRemapper.
//
// The returned Remapper panics if an index is outside the row.
func (m TypeIndexMap) Remapper() Remapper {
	return func(target reflect.Type, row Row) Row {
		idx, ok := m[target]
		if !ok {
			return row
		}
		return project(target, row, idx)
	}
}

func project(target reflect.Type, row Row, idx []int) Row {
	out := make(Row, len(idx))
	for i, src := range idx {
		if src < 0 || src >= len(row) {
			panic(fmt.Sprintf("materialize: index map for %v references column %d of a %d-column row", target, src, len(row)))
		}
		out[i] = row[src]
	}
	return out
}
