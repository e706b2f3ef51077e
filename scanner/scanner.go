package scanner

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/nlimpid/entityload/materialize"
	"golang.org/x/exp/slog"
)

// Scanner describes a type that knows how to turn a set of database column
// names into destinations for the values of one row.
// See ScanTargets for the detailed contract.
type Scanner interface {
	// ScanTargets returns a slice of pointers matching the provided columns.
	// Each entry receives the value of the column at the same position.
	ScanTargets(columns []string) []any
}

// Ptr is a generic type constraint requiring a pointer to T that also implements
// Scanner. It lets StructMaterializer and friends control the creation of new
// values while still letting the user provide custom ScanTargets logic.
type Ptr[T any] interface {
	*T
	Scanner
}

// QueryOption configures query behavior.
type QueryOption func(*queryConfig)

type queryConfig struct {
	expectedSize int
	unitOpts     []materialize.Option
	logger       *slog.Logger
}

func newQueryConfig(opts []QueryOption) *queryConfig {
	cfg := &queryConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return cfg
}

// WithExpectedSize pre-allocates slice capacity for better performance. Use it
// when you know the expected number of rows ahead of time.
func WithExpectedSize(size int) QueryOption {
	return func(c *queryConfig) {
		c.expectedSize = size
	}
}

// WithTypeIndexMap attaches m to every LoadInfo produced by the query. The map
// is shared by all rows, not copied per row.
func WithTypeIndexMap(m materialize.TypeIndexMap) QueryOption {
	if m == nil {
		return WithRemapper(nil)
	}
	return WithRemapper(m.Remapper())
}

// WithRemapper attaches r to every LoadInfo produced by the query.
func WithRemapper(r materialize.Remapper) QueryOption {
	return func(c *queryConfig) {
		c.unitOpts = append(c.unitOpts, materialize.WithRemapper(r))
	}
}

// WithLogger sets the logger used for debug output. Nothing is logged by
// default.
func WithLogger(l *slog.Logger) QueryOption {
	return func(c *queryConfig) {
		c.logger = l
	}
}

// ScanRow copies the current row of rows into a new materialize.Row with
// the given number of columns. The caller must have called rows.Next.
func ScanRow(rows *sql.Rows, columns int) (materialize.Row, error) {
	row := make(materialize.Row, columns)
	targets := make([]any, columns)
	for i := range row {
		targets[i] = &row[i]
	}
	if err := rows.Scan(targets...); err != nil {
		return nil, fmt.Errorf("failed to scan row: %w", err)
	}
	return row, nil
}

// ScanLoadInfos consumes rows and returns one LoadInfo per row in the order
// they are produced by the driver. Nothing is materialized.
func ScanLoadInfos[T any](rows *sql.Rows, m materialize.Materializer[T], opts ...QueryOption) ([]materialize.LoadInfo[T], error) {
	cfg := newQueryConfig(opts)

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	infos := make([]materialize.LoadInfo[T], 0, cfg.expectedSize)
	for rows.Next() {
		row, err := ScanRow(rows, len(columns))
		if err != nil {
			return nil, err
		}
		infos = append(infos, materialize.New(row, m, cfg.unitOpts...))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	cfg.logger.Debug("scanned rows", "rows", len(infos), "columns", len(columns))
	return infos, nil
}

// ScanMaterialized consumes rows and materializes each one. The first
// materializer failure stops the scan; its error is wrapped with the row
// number.
func ScanMaterialized[T any](rows *sql.Rows, m materialize.Materializer[T], opts ...QueryOption) ([]T, error) {
	infos, err := ScanLoadInfos(rows, m, opts...)
	if err != nil {
		return nil, err
	}
	return materializeAll(infos)
}

func materializeAll[T any](infos []materialize.LoadInfo[T]) ([]T, error) {
	results := make([]T, 0, len(infos))
	for i, info := range infos {
		v, err := info.Materialize()
		if err != nil {
			return nil, fmt.Errorf("failed to materialize row %d: %w", i, err)
		}
		results = append(results, v)
	}
	return results, nil
}

// QueryLoadInfos runs query against db with the supplied args slice, then
// delegates to ScanLoadInfos. The rows cursor is closed automatically.
func QueryLoadInfos[T any](ctx context.Context, db *sql.DB, query string, args []any, m materialize.Materializer[T], opts ...QueryOption) ([]materialize.LoadInfo[T], error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return ScanLoadInfos(rows, m, opts...)
}

// QueryMaterialized runs query against db with the supplied args slice, then
// delegates to ScanMaterialized. The rows cursor is closed automatically.
func QueryMaterialized[T any](ctx context.Context, db *sql.DB, query string, args []any, m materialize.Materializer[T], opts ...QueryOption) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return ScanMaterialized(rows, m, opts...)
}

// ScanStruct reads the first row from rows and decodes it into a new struct
// value. It stops after the first row and returns sql.ErrNoRows when the result
// set is empty.
func ScanStruct[T any, P Ptr[T]](rows *sql.Rows) (*T, error) {
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("rows iteration error: %w", err)
		}
		return nil, sql.ErrNoRows
	}

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	row, err := ScanRow(rows, len(columns))
	if err != nil {
		return nil, err
	}

	return materialize.New(row, StructMaterializer[T, P](columns)).Materialize()
}

// ScanStructs consumes rows and returns one pointer per row in the order they
// are produced by the driver. Combine it with WithExpectedSize to avoid slice
// resizing during large iterations.
func ScanStructs[T any, P Ptr[T]](rows *sql.Rows, opts ...QueryOption) ([]*T, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}
	return ScanMaterialized(rows, StructMaterializer[T, P](columns), opts...)
}

// QueryStruct runs query against db with the provided args, then delegates to
// ScanStruct. The underlying rows cursor is closed automatically.
func QueryStruct[T any, P Ptr[T]](ctx context.Context, db *sql.DB, query string, args ...any) (*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return ScanStruct[T, P](rows)
}

// QueryStructs runs query against db with the supplied args slice, applying the
// given QueryOptions before delegating to ScanStructs. The returned rows cursor
// is closed automatically.
func QueryStructs[T any, P Ptr[T]](ctx context.Context, db *sql.DB, query string, args []any, opts ...QueryOption) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return ScanStructs[T, P](rows, opts...)
}

// ScanMap creates a ScanTargets-compatible slice from a column-to-field map.
// Columns not present in mapping receive a throwaway placeholder pointer so the
// caller can ignore unexpected projections safely.
func ScanMap(columns []string, mapping map[string]any) []any {
	targets := make([]any, len(columns))
	for i, col := range columns {
		if target, ok := mapping[col]; ok {
			targets[i] = target
		} else {
			var placeholder any
			targets[i] = &placeholder
		}
	}
	return targets
}
