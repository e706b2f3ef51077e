package scanner_test

import (
	"github.com/nlimpid/entityload/materialize"
	"github.com/nlimpid/entityload/scanner"
)

// Pets come from one table laid out as: id, kind, name, breed, lives.

type Pet interface {
	PetName() string
}

type Base struct {
	ID   int64
	Kind string
	Name string
}

func (b *Base) PetName() string { return b.Name }

func (b *Base) ScanTargets(columns []string) []any {
	return scanner.ScanMap(columns, map[string]any{
		"id":   &b.ID,
		"kind": &b.Kind,
		"name": &b.Name,
	})
}

type Dog struct {
	ID    int64
	Name  string
	Breed string
}

func (d *Dog) PetName() string { return d.Name }

func (d *Dog) ScanTargets(columns []string) []any {
	return scanner.ScanMap(columns, map[string]any{
		"id":    &d.ID,
		"name":  &d.Name,
		"breed": &d.Breed,
	})
}

type Cat struct {
	ID    int64
	Name  string
	Lives int
}

func (c *Cat) PetName() string { return c.Name }

func (c *Cat) ScanTargets(columns []string) []any {
	return scanner.ScanMap(columns, map[string]any{
		"id":    &c.ID,
		"name":  &c.Name,
		"lives": &c.Lives,
	})
}

func petIndexMap() materialize.TypeIndexMap {
	return materialize.TypeIndexMap{
		materialize.TypeOf[Dog](): {0, 2, 3},
		materialize.TypeOf[Cat](): {0, 2, 4},
	}
}

func upcast[T Pet](m materialize.Materializer[T]) materialize.Materializer[Pet] {
	return func(r materialize.Row) (Pet, error) {
		v, err := m(r)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

func materializePets(infos []materialize.LoadInfo[Pet]) ([]Pet, error) {
	h := materialize.NewHierarchy[Pet](1)
	h.Register("dog", materialize.TypeOf[Dog](),
		upcast(scanner.StructMaterializer[Dog]([]string{"id", "name", "breed"})))
	h.Register("cat", materialize.TypeOf[Cat](),
		upcast(scanner.StructMaterializer[Cat]([]string{"id", "name", "lives"})))

	pets := make([]Pet, 0, len(infos))
	for _, info := range infos {
		p, err := h.Materialize(info)
		if err != nil {
			return nil, err
		}
		pets = append(pets, p)
	}
	return pets, nil
}
