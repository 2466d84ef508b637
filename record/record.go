package record

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/hupe1980/cohort/core"
	"github.com/hupe1980/cohort/distance"
)

var (
	// ErrEmptyDataset is returned when a dataset has no entities.
	ErrEmptyDataset = fmt.Errorf("%w: empty dataset", core.ErrInvalidInput)

	// ErrColumnOutOfRange is returned by Column for an unknown feature index.
	ErrColumnOutOfRange = fmt.Errorf("%w: feature column out of range", core.ErrInvalidInput)
)

// Entity is a single record: an ordered feature vector and an outcome label.
type Entity struct {
	Features []float64 `json:"features"`
	Label    uint8     `json:"label"`
}

// Dim returns the number of features.
func (e Entity) Dim() int { return len(e.Features) }

// Clone returns a deep copy of the entity.
func (e Entity) Clone() Entity {
	return Entity{Features: slices.Clone(e.Features), Label: e.Label}
}

// Dataset is an ordered, read-only sequence of entities of equal dimensionality.
type Dataset struct {
	entities []Entity
	dim      int
}

// NewDataset validates and copies entities into a Dataset.
//
// It returns ErrEmptyDataset for no entities and *distance.ErrDimensionMismatch
// when an entity's feature count differs from the first entity's.
func NewDataset(entities []Entity) (*Dataset, error) {
	if len(entities) == 0 {
		return nil, ErrEmptyDataset
	}
	if err := ValidateDimensions(entities); err != nil {
		return nil, err
	}

	owned := make([]Entity, len(entities))
	for i, e := range entities {
		owned[i] = e.Clone()
	}
	return &Dataset{entities: owned, dim: len(entities[0].Features)}, nil
}

// ValidateDimensions checks that all entities share the first entity's dimensionality.
func ValidateDimensions(entities []Entity) error {
	if len(entities) == 0 {
		return nil
	}
	dim := len(entities[0].Features)
	for i := 1; i < len(entities); i++ {
		if len(entities[i].Features) != dim {
			return fmt.Errorf("entity %d: %w", i,
				&distance.ErrDimensionMismatch{Expected: dim, Actual: len(entities[i].Features)})
		}
	}
	return nil
}

// Len returns the number of entities.
func (d *Dataset) Len() int { return len(d.entities) }

// Dim returns the shared feature dimensionality.
func (d *Dataset) Dim() int { return d.dim }

// At returns a copy of the i-th entity.
func (d *Dataset) At(i core.EntityID) Entity { return d.entities[i].Clone() }

// Entities returns a deep copy of all entities in load order.
func (d *Dataset) Entities() []Entity {
	out := make([]Entity, len(d.entities))
	for i, e := range d.entities {
		out[i] = e.Clone()
	}
	return out
}

// Features returns a copy of every feature vector in load order.
func (d *Dataset) Features() [][]float64 {
	out := make([][]float64, len(d.entities))
	for i, e := range d.entities {
		out[i] = slices.Clone(e.Features)
	}
	return out
}

// Labels returns the labels in load order.
func (d *Dataset) Labels() []uint8 {
	out := make([]uint8, len(d.entities))
	for i, e := range d.entities {
		out[i] = e.Label
	}
	return out
}

// Column returns the values of feature j across all entities.
func (d *Dataset) Column(j int) ([]float64, error) {
	if j < 0 || j >= d.dim {
		return nil, fmt.Errorf("column %d of %d: %w", j, d.dim, ErrColumnOutOfRange)
	}
	out := make([]float64, len(d.entities))
	for i, e := range d.entities {
		out[i] = e.Features[j]
	}
	return out, nil
}

// SplitByLabel groups entities by label, preserving load order within each group.
func (d *Dataset) SplitByLabel() map[uint8]*Dataset {
	groups := make(map[uint8][]Entity)
	for _, e := range d.entities {
		groups[e.Label] = append(groups[e.Label], e)
	}
	out := make(map[uint8]*Dataset, len(groups))
	for label, es := range groups {
		out[label] = fromValidated(es, d.dim)
	}
	return out
}

// LabelSet returns the distinct labels in ascending order.
func (d *Dataset) LabelSet() []uint8 {
	seen := make(map[uint8]struct{})
	for _, e := range d.entities {
		seen[e.Label] = struct{}{}
	}
	out := make([]uint8, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func fromValidated(entities []Entity, dim int) *Dataset {
	if len(entities) == 0 {
		return nil
	}
	owned := make([]Entity, len(entities))
	for i, e := range entities {
		owned[i] = e.Clone()
	}
	return &Dataset{entities: owned, dim: dim}
}

// IsInvalidInput reports whether err is a caller-side input error.
func IsInvalidInput(err error) bool {
	return errors.Is(err, core.ErrInvalidInput)
}
