package materialize

import (
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"

	"golang.org/x/exp/slog"
)

// ErrNoDiscriminator is returned when a row is too short to hold the
// discriminator column.
var ErrNoDiscriminator = errors.New("materialize: discriminator column missing from row")

type concrete[T any] struct {
	typ          reflect.Type
	materializer Materializer[T]
}

// Hierarchy builds instances for a table-per-hierarchy result, where a single
// row shape carries the columns of every concrete type and one column says
// which type the row belongs to.
//
// Register all concrete types before the Hierarchy is used; after that it is
// read-only and safe for concurrent use.
type Hierarchy[T any] struct {
	column int
	types  map[any]concrete[T]
	logger *slog.Logger
}

// HierarchyOption configures a Hierarchy.
type HierarchyOption func(*hierarchyConfig)

type hierarchyConfig struct {
	logger *slog.Logger
}

// WithHierarchyLogger sets the logger used to report rows whose discriminator
// has no registered type.
func WithHierarchyLogger(l *slog.Logger) HierarchyOption {
	return func(c *hierarchyConfig) {
		c.logger = l
	}
}

// NewHierarchy returns a Hierarchy reading the discriminator at position column.
func NewHierarchy[T any](column int, opts ...HierarchyOption) *Hierarchy[T] {
	cfg := &hierarchyConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Hierarchy[T]{
		column: column,
		types:  make(map[any]concrete[T]),
		logger: cfg.logger,
	}
}

// Register associates discriminator value disc with the concrete type typ and
// its materializer. The materializer receives the row as remapped for typ.
//
// Integer discriminators match row values of any integer type with the same
// value; []byte and string match each other. Other values must have the
// driver's dynamic type.
//
// Register panics on a nil type or materializer, on a discriminator that is
// not comparable, or on one that is already registered.
func (h *Hierarchy[T]) Register(disc any, typ reflect.Type, m Materializer[T]) {
	if typ == nil {
		panic("materialize: Register called with nil type")
	}
	if m == nil {
		panic("materialize: Register called with nil Materializer")
	}
	key, ok := discriminatorKey(disc)
	if !ok {
		panic(fmt.Sprintf("materialize: discriminator %v of type %T is not comparable", disc, disc))
	}
	if prev, ok := h.types[key]; ok {
		panic(fmt.Sprintf("materialize: discriminator %v already registered for %v", disc, prev.typ))
	}
	h.types[key] = concrete[T]{typ: typ, materializer: m}
}

// Materialize builds the instance described by info. The discriminator is
// read from the original row; when it matches a registered type, the row is
// remapped for that type and handed to its materializer. Otherwise info's own
// materializer runs on the original row. Discriminators that cannot be
// compared, such as list columns, are treated as unknown.
func (h *Hierarchy[T]) Materialize(info LoadInfo[T]) (T, error) {
	row := info.Row()
	if h.column < 0 || h.column >= row.Len() {
		var zero T
		return zero, fmt.Errorf("%w: position %d, row has %d columns", ErrNoDiscriminator, h.column, row.Len())
	}

	disc := row.At(h.column)
	var c concrete[T]
	key, ok := discriminatorKey(disc)
	if ok {
		c, ok = h.types[key]
	}
	if !ok {
		h.logger.Debug("no concrete type for discriminator, using base materializer", "discriminator", disc)
		return info.Materialize()
	}

	return c.materializer(info.Remap(c.typ))
}

// discriminatorKey makes driver values usable as map keys. Text arriving as
// []byte compares as a string, and every integer kind compares as int64 when
// it fits, so Register(1, ...) matches a driver's int64(1). It reports false
// for values that cannot be map keys, such as list or struct columns.
func discriminatorKey(v any) (any, bool) {
	if v == nil {
		return nil, true
	}
	if b, ok := v.([]byte); ok {
		return string(b), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if u := rv.Uint(); u <= math.MaxInt64 {
			return int64(u), true
		}
		return rv.Uint(), true
	}

	if !rv.Type().Comparable() {
		return nil, false
	}
	return v, true
}
