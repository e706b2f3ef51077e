package scanner

import (
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	_ "unsafe"

	"github.com/nlimpid/entityload/materialize"
)

// ErrAssign is returned when a column value cannot be stored in the target
// returned by ScanTargets.
var ErrAssign = errors.New("scanner: cannot assign value")

// StructMaterializer returns a Materializer that allocates a new T for each
// row and copies the row's values into the targets its ScanTargets method
// returns for columns. Rows must have the same width as columns.
//
// Values are converted with the rules of sql.Rows.Scan, except that NULL
// leaves a non-Scanner field at its zero value instead of failing.
func StructMaterializer[T any, P Ptr[T]](columns []string) materialize.Materializer[*T] {
	return func(row materialize.Row) (*T, error) {
		if row.Len() != len(columns) {
			return nil, fmt.Errorf("%w: row has %d values for %d columns", ErrAssign, row.Len(), len(columns))
		}

		var result T
		targets := P(&result).ScanTargets(columns)
		if len(targets) != len(columns) {
			return nil, fmt.Errorf("%w: %d targets for %d columns", ErrAssign, len(targets), len(columns))
		}

		for i, target := range targets {
			if err := assign(target, row.At(i)); err != nil {
				return nil, fmt.Errorf("column %q: %w", columns[i], err)
			}
		}
		return &result, nil
	}
}

// convertAssign is database/sql's own conversion, the one sql.Rows.Scan
// applies to driver values.
//
//go:linkname convertAssign database/sql.convertAssign
func convertAssign(dest, src any) error

// assign stores src in the pointer dest. NULL leaves the zero value behind
// unless dest is a sql.Scanner, which sees the nil itself.
func assign(dest, src any) error {
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Pointer || dv.IsNil() {
		return fmt.Errorf("%w: destination %T is not a non-nil pointer", ErrAssign, dest)
	}

	if _, ok := dest.(sql.Scanner); src == nil && !ok {
		dv.Elem().Set(reflect.Zero(dv.Elem().Type()))
		return nil
	}

	if err := convertAssign(dest, src); err != nil {
		return fmt.Errorf("%w: %w", ErrAssign, err)
	}
	return nil
}
