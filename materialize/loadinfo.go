package materialize

import "reflect"

// Materializer converts a row into an instance. Errors are returned to the
// caller of LoadInfo.Materialize untouched.
type Materializer[T any] func(Row) (T, error)

// Remapper derives the row a concrete type expects from a row holding the
// columns of the whole hierarchy. Implementations must not modify the row
// they are given and must return the same output for the same inputs.
type Remapper func(target reflect.Type, row Row) Row

// Option configures a LoadInfo.
type Option func(*options)

type options struct {
	remap Remapper
}

// WithRemapper sets the function used by LoadInfo.Remap. A nil remapper is
// the same as no remapper.
func WithRemapper(r Remapper) Option {
	return func(o *options) {
		o.remap = r
	}
}

// WithTypeIndexMap makes LoadInfo.Remap project columns by position according
// to m. Types missing from m get the stored row back. The map is kept by
// reference; when many units share one map, convert it once with
// TypeIndexMap.Remapper and pass that to WithRemapper.
func WithTypeIndexMap(m TypeIndexMap) Option {
	return func(o *options) {
		if m == nil {
			o.remap = nil
			return
		}
		o.remap = m.Remapper()
	}
}

// LoadInfo holds what is needed to create an instance of an entity from a row
// of data returned by a query. The zero value is not usable; build one with
// New.
type LoadInfo[T any] struct {
	row          Row
	materializer Materializer[T]
	remap        Remapper
}

// New returns a LoadInfo for row. The row and functions are kept by reference.
//
// New panics if m is nil: a missing materializer is a bug in the caller, and
// it is reported here rather than on the first Materialize.
func New[T any](row Row, m Materializer[T], opts ...Option) LoadInfo[T] {
	if m == nil {
		panic("materialize: New called with nil Materializer")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return LoadInfo[T]{
		row:          row,
		materializer: m,
		remap:        o.remap,
	}
}

// Row returns the row this unit was built from.
func (l LoadInfo[T]) Row() Row {
	return l.row
}

// Materialize runs the materializer against the stored row. The result is
// not cached.
func (l LoadInfo[T]) Materialize() (T, error) {
	return l.materializer(l.row)
}

// Remap returns the stored row re-expressed for target. Without a remapper
// the stored row itself is returned.
//
// Remap panics if target is nil.
func (l LoadInfo[T]) Remap(target reflect.Type) Row {
	if target == nil {
		panic("materialize: Remap called with nil type")
	}
	if l.remap == nil {
		return l.row
	}
	return l.remap(target, l.row)
}
