package extract

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrFormulaCycle is returned when derived formulas depend on each other in a loop.
var ErrFormulaCycle = errors.New("derived formulas form a dependency cycle")

// FieldRules is everything a variant declares for one Field: ordered rules (first match wins),
// an optional fallback formula and capture values that count as no match.
type FieldRules struct {
	Rules   []Rule
	Formula *Formula
	Reject  []string
}

func (fr FieldRules) rejects(v string) bool {
	for _, r := range fr.Reject {
		if strings.EqualFold(strings.TrimSpace(v), r) {
			return true
		}
	}
	return false
}

// Table maps each Field to its rules for one variant. It is immutable once built.
type Table struct {
	fields map[Field]FieldRules
}

// NewTable validates and builds a Table: every key and formula dependency must be a declared
// Field and the formula dependency graph must be acyclic.
func NewTable(fields map[Field]FieldRules) (*Table, error) {
	for f, fr := range fields {
		if !f.Known() {
			return nil, fmt.Errorf("extract.NewTable: unknown field %q", f)
		}
		if fr.Formula == nil {
			continue
		}
		for _, dep := range fr.Formula.Deps {
			if !dep.Known() {
				return nil, fmt.Errorf("extract.NewTable: formula for %s depends on unknown field %q", f, dep)
			}
		}
	}
	if err := checkAcyclic(fields); err != nil {
		return nil, fmt.Errorf("extract.NewTable: %w", err)
	}
	copied := make(map[Field]FieldRules, len(fields))
	for f, fr := range fields {
		copied[f] = fr
	}
	return &Table{fields: copied}, nil
}

// MustTable is NewTable for package-level variant tables.
func MustTable(fields map[Field]FieldRules) *Table {
	t, err := NewTable(fields)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the rules declared for f; the zero value when none are.
func (t *Table) Lookup(f Field) FieldRules {
	if t == nil {
		return FieldRules{}
	}
	return t.fields[f]
}

// Dependencies returns the formula dependency edges of the table, keyed by derived Field.
func (t *Table) Dependencies() map[Field][]Field {
	out := make(map[Field][]Field)
	if t == nil {
		return out
	}
	for f, fr := range t.fields {
		if fr.Formula != nil {
			out[f] = append([]Field(nil), fr.Formula.Deps...)
		}
	}
	return out
}

// checkAcyclic walks formula dependencies depth-first and reports the first cycle found.
func checkAcyclic(fields map[Field]FieldRules) error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[Field]int, len(fields))
	var path []Field

	var visit func(f Field) error
	visit = func(f Field) error {
		switch state[f] {
		case done:
			return nil
		case visiting:
			cycle := append(slices.Clone(path[slices.Index(path, f):]), f)
			return fmt.Errorf("%w: %s", ErrFormulaCycle, joinFields(cycle))
		}
		state[f] = visiting
		path = append(path, f)
		if fm := fields[f].Formula; fm != nil {
			for _, dep := range fm.Deps {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		path = path[:len(path)-1]
		state[f] = done
		return nil
	}

	for _, f := range AllFields {
		if err := visit(f); err != nil {
			return err
		}
	}
	return nil
}

func joinFields(fs []Field) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = string(f)
	}
	return strings.Join(parts, " -> ")
}
