package extract

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dlclark/regexp2"
)

var errUndeclaredDependency = errors.New("formula read a field it does not declare")

// Formula derives a Field from other Fields when none of its rules match.
// Deps must name every Field that Eval reads; the declared graph is checked for cycles when a
// Table is built.
type Formula struct {
	Deps []Field
	Eval func(in *Inputs) (string, error)
}

// Inputs gives a running formula read access to its declared dependencies, the document text
// and the run environment.
type Inputs struct {
	x     *Extractor
	cache *Cache
	deps  []Field
	err   error
}

// Get resolves a declared dependency through the document's cache.
func (in *Inputs) Get(f Field) string {
	if !slices.Contains(in.deps, f) {
		if in.err == nil {
			in.err = fmt.Errorf("%w: %s", errUndeclaredDependency, f)
		}
		return ""
	}
	return in.x.Resolve(in.cache, f)
}

// Env returns the run environment.
func (in *Inputs) Env() Env {
	return in.x.env
}

// Matches reports whether r matches the document content.
func (in *Inputs) Matches(r Rule) (bool, error) {
	return r.Matches(in.x.content)
}

// Search compiles pattern and returns its trimmed first capture against the document content.
// It serves rules whose pattern is built from another field's value.
func (in *Inputs) Search(pattern string, opts regexp2.RegexOptions) (string, error) {
	r, err := NewRule(pattern, opts)
	if err != nil {
		return "", err
	}
	return r.Capture(in.x.content)
}
