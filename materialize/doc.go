// Package materialize defers the conversion of a retrieved row into a typed
// value.
//
// A LoadInfo carries one Row together with the Materializer that knows how to
// build an instance from it. Nothing is converted until Materialize is called,
// and every call runs the materializer again.
//
// # Basic Usage
//
//	info := materialize.New(row, func(r materialize.Row) (*User, error) {
//	    return &User{ID: r.At(0).(int64), Name: r.At(1).(string)}, nil
//	})
//	user, err := info.Materialize()
//
// # Remapping
//
// When one result shape feeds several concrete types of a hierarchy, each type
// may expect a different subset or ordering of the columns. Supply either a
// general Remapper or a TypeIndexMap, and ask for the row of a given type:
//
//	info := materialize.New(row, baseMaterializer,
//	    materialize.WithTypeIndexMap(materialize.TypeIndexMap{
//	        materialize.TypeOf[Dog](): {0, 1, 3},
//	    }))
//	dogRow := info.Remap(materialize.TypeOf[Dog]())
//
// Types without an entry, and units built without any remapper, get the stored
// row back unchanged. Remap never touches the stored row, so Materialize keeps
// operating on the original columns.
//
// # Hierarchies
//
// Hierarchy ties the pieces together for table-per-hierarchy results: it reads
// a discriminator column, remaps the row for the matching concrete type and
// runs that type's materializer.
//
// # Concurrency
//
// A LoadInfo is immutable and may be shared between goroutines, provided the
// materializer and remapper it was built with are safe for concurrent use.
package materialize
