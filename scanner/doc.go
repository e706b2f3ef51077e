// Package scanner reads database/sql result sets into materialize.LoadInfo
// units and, on request, into Go values.
//
// Every row is copied into a materialize.Row and paired with a materializer.
// Callers choose whether to keep the units around (QueryLoadInfos), for
// example to dispatch them through a materialize.Hierarchy, or to materialize
// them straight away (QueryMaterialized, QueryStructs).
//
// # Load Units
//
// Use QueryLoadInfos when the conversion should be deferred:
//
//	infos, err := scanner.QueryLoadInfos(ctx, db,
//	    "SELECT id, kind, name, breed, lives FROM pets", nil,
//	    basePet,
//	    scanner.WithTypeIndexMap(materialize.TypeIndexMap{
//	        materialize.TypeOf[Dog](): {0, 2, 3},
//	        materialize.TypeOf[Cat](): {0, 2, 4},
//	    }))
//	if err != nil {
//	    return err
//	}
//	for _, info := range infos {
//	    pet, err := hierarchy.Materialize(info)
//	    ...
//	}
//
// The index map is converted once and shared by every unit of the query.
//
// # Struct Materializers
//
// To fill structs, implement the Scanner interface for your struct type:
//
//	type User struct {
//	    ID   int64
//	    Name string
//	    Age  int
//	}
//
//	func (u *User) ScanTargets(columns []string) []any {
//	    return scanner.ScanMap(columns, map[string]any{
//	        "id":   &u.ID,
//	        "name": &u.Name,
//	        "age":  &u.Age,
//	    })
//	}
//
// and use QueryStruct or QueryStructs:
//
//	users, err := scanner.QueryStructs[User](ctx, db,
//	    "SELECT id, name, age FROM users", nil,
//	    scanner.WithExpectedSize(1000))
//
// StructMaterializer exposes the same conversion as a materialize.Materializer
// for use with QueryLoadInfos.
//
// # Query Options
//
// QueryOption hooks provide light-weight tuneables without introducing a
// builder-style API: WithExpectedSize reduces slice reallocations,
// WithTypeIndexMap and WithRemapper configure remapping on every unit, and
// WithLogger enables debug output.
package scanner
