package materialize

import "reflect"

// Row is one record retrieved from a data source: an ordered, fixed-length
// sequence of opaque column values addressed by zero-based position.
//
// The encoding of each value (nullability, scalar types) is decided by whoever
// produced the row.
type Row []any

// At returns the value at position i. It panics if i is out of range.
func (r Row) At(i int) any {
	return r[i]
}

// Len reports the number of columns in the row.
func (r Row) Len() int {
	return len(r)
}

// TypeOf returns the type descriptor for T. It works for interface types too.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
