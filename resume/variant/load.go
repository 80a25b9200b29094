package variant

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultID names the ATS friendly data analyst form.
const DefaultID = "data-analyst"

//go:embed variants/*.yaml
var embedded embed.FS

// Registry holds a validated set of variants keyed by id.
type Registry struct {
	byID map[string]Variant
	ids  []string
}

var (
	builtinOnce sync.Once
	builtin     *Registry
	builtinErr  error
)

// Load returns the variants shipped with the binary.
func Load() (*Registry, error) {
	builtinOnce.Do(func() {
		builtin, builtinErr = LoadFS(embedded, "variants")
	})
	return builtin, builtinErr
}

// LoadFS parses every *.yaml file under dir.
func LoadFS(fsys fs.FS, dir string) (*Registry, error) {
	matches, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no variant files in %s", ErrInvalidVariant, dir)
	}

	reg := &Registry{byID: make(map[string]Variant, len(matches))}
	for _, name := range matches {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		v, err := Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if _, dup := reg.byID[v.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q in %s", ErrInvalidVariant, v.ID, name)
		}
		reg.byID[v.ID] = v
		reg.ids = append(reg.ids, v.ID)
	}
	sort.Strings(reg.ids)
	return reg, nil
}

// Parse decodes and validates a single variant document.
func Parse(raw []byte) (Variant, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	var v Variant
	if err := dec.Decode(&v); err != nil {
		return Variant{}, fmt.Errorf("%w: %v", ErrInvalidVariant, err)
	}
	v.applyDefaults()
	if err := v.Validate(); err != nil {
		return Variant{}, err
	}
	return v, nil
}

// Get returns the variant with the given id.
func (r *Registry) Get(id string) (Variant, error) {
	v, ok := r.byID[id]
	if !ok {
		return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, id)
	}
	return v, nil
}

// List returns all variants sorted by id.
func (r *Registry) List() []Variant {
	out := make([]Variant, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.byID[id])
	}
	return out
}

// Default returns the data analyst variant, or the first variant by id when a
// custom registry does not ship it.
func (r *Registry) Default() Variant {
	if v, ok := r.byID[DefaultID]; ok {
		return v
	}
	return r.byID[r.ids[0]]
}
