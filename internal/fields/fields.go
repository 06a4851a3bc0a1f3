// Package fields provides the ordered, unit-tagged field container shared by
// the equilibrium builder and the gravity solvers.
package fields

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "fields")

// Field is a 1-D numeric array tagged with a unit label. Units are carried as
// labels only; conversions happen at well-defined boundaries in the callers.
type Field struct {
	Data  []float64
	Units string
}

// DimensionError reports an attempt to store an array whose length does not
// match the set's element count.
type DimensionError struct {
	Name string
	Want int
	Got  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("field %q has %d elements, set requires %d", e.Name, e.Got, e.Want)
}

// Set is an ordered mapping from field name to Field. Every array in a Set is
// co-indexed by the same radial grid; mixing grids is the caller's
// responsibility to avoid.
type Set struct {
	n      int
	names  []string
	fields map[string]Field
}

// New returns an empty Set whose arrays must all have n elements.
func New(n int) *Set {
	return &Set{n: n, fields: make(map[string]Field)}
}

// Len returns the declared element count.
func (s *Set) Len() int { return s.n }

// Put stores a field, validating its length. Overwriting an existing field
// logs a warning and replaces the data in place (the insertion order is kept).
func (s *Set) Put(name string, data []float64, unitLabel string) error {
	if len(data) != s.n {
		return &DimensionError{Name: name, Want: s.n, Got: len(data)}
	}
	if _, ok := s.fields[name]; ok {
		log.Warnf("overwriting field %q", name)
	} else {
		s.names = append(s.names, name)
	}
	s.fields[name] = Field{Data: data, Units: unitLabel}
	return nil
}

// Get returns the named field's data, or nil if absent.
func (s *Set) Get(name string) []float64 {
	if f, ok := s.fields[name]; ok {
		return f.Data
	}
	return nil
}

// Units returns the unit label of the named field.
func (s *Set) Units(name string) string { return s.fields[name].Units }

// Has reports whether every named field is present.
func (s *Set) Has(names ...string) bool {
	for _, n := range names {
		if _, ok := s.fields[n]; !ok {
			return false
		}
	}
	return true
}

// Names returns the field names in insertion order.
func (s *Set) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Delete removes a field if present.
func (s *Set) Delete(name string) {
	if _, ok := s.fields[name]; !ok {
		return
	}
	delete(s.fields, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
}

// Radius returns the "radius" field, which every populated Set carries.
func (s *Set) Radius() []float64 { return s.Get("radius") }
