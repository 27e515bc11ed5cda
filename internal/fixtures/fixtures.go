// Package fixtures supplies the seed records every page is activated with.
//
// The built-in samples can be overridden per section by a YAML file. The
// file is read-only input: pages copy the current snapshot on activation
// and never write back.
package fixtures

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/starford/plantdesk/internal/batching"
	"github.com/starford/plantdesk/internal/inventory"
	"github.com/starford/plantdesk/internal/lines"
	"github.com/starford/plantdesk/internal/menuitems"
	"github.com/starford/plantdesk/internal/recipes"
)

// Set holds one seed list per page. A nil section means "use the built-in
// sample".
type Set struct {
	MenuItems []menuitems.Item `yaml:"menu_items"`
	Recipes   []recipes.Recipe `yaml:"recipes"`
	Batches   []batching.Batch `yaml:"batches"`
	Lines     []lines.Line     `yaml:"lines"`
	Inventory []inventory.Item `yaml:"inventory"`
}

// Defaults returns the built-in samples.
func Defaults() Set {
	return Set{
		MenuItems: menuitems.Seed(),
		Recipes:   recipes.Seed(),
		Batches:   batching.Seed(),
		Lines:     lines.Seed(),
		Inventory: inventory.Seed(),
	}
}

// Parse decodes a fixtures document. Sections absent from data keep their
// built-in sample.
func Parse(data []byte) (Set, error) {
	var doc Set
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Set{}, fmt.Errorf("parse fixtures: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return Set{}, fmt.Errorf("validate fixtures: %w", err)
	}
	def := Defaults()
	if doc.MenuItems == nil {
		doc.MenuItems = def.MenuItems
	}
	if doc.Recipes == nil {
		doc.Recipes = def.Recipes
	}
	if doc.Batches == nil {
		doc.Batches = def.Batches
	}
	if doc.Lines == nil {
		doc.Lines = def.Lines
	}
	if doc.Inventory == nil {
		doc.Inventory = def.Inventory
	}
	return doc, nil
}

// Validate checks identifier uniqueness and status enumerations. Every
// other field is free text.
func (s *Set) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.MenuItems, validation.By(uniqueIDs(idsOf(s.MenuItems))), validation.Each(validation.By(func(v any) error {
			return validation.Validate(string(v.(menuitems.Item).Status), validation.Required, validation.In("active", "inactive"))
		}))),
		validation.Field(&s.Recipes, validation.By(uniqueIDs(idsOf(s.Recipes))), validation.Each(validation.By(func(v any) error {
			return validation.Validate(string(v.(recipes.Recipe).Status), validation.Required, validation.In("active", "inactive"))
		}))),
		validation.Field(&s.Batches, validation.By(uniqueIDs(idsOf(s.Batches))), validation.Each(validation.By(func(v any) error {
			b := v.(batching.Batch)
			return validation.Errors{
				"status":   validation.Validate(string(b.Status), validation.Required, validation.In("pending", "in-progress", "completed")),
				"progress": validation.Validate(b.Progress, validation.Min(0), validation.Max(100)),
			}.Filter()
		}))),
		validation.Field(&s.Lines, validation.By(uniqueIDs(idsOf(s.Lines))), validation.Each(validation.By(func(v any) error {
			l := v.(lines.Line)
			return validation.Errors{
				"status":     validation.Validate(string(l.Status), validation.Required, validation.In("active", "warning", "inactive")),
				"efficiency": validation.Validate(l.Efficiency, validation.Min(0), validation.Max(100)),
			}.Filter()
		}))),
		validation.Field(&s.Inventory, validation.By(uniqueIDs(idsOf(s.Inventory))), validation.Each(validation.By(func(v any) error {
			return validation.Validate(string(v.(inventory.Item).Status), validation.Required, validation.In("active", "warning", "inactive"))
		}))),
	)
}

func idsOf[T interface{ RecordID() string }](records []T) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.RecordID()
	}
	return out
}

var errDuplicateID = errors.New("duplicate id")

func uniqueIDs(ids []string) validation.RuleFunc {
	return func(any) error {
		seen := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			if id == "" {
				return errors.New("id is required")
			}
			if _, dup := seen[id]; dup {
				return fmt.Errorf("%w %q", errDuplicateID, id)
			}
			seen[id] = struct{}{}
		}
		return nil
	}
}

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

type snapshot struct {
	set Set
	sum string
}

// Source serves the current fixtures snapshot. It is safe for concurrent
// use; Reload swaps the snapshot atomically.
type Source struct {
	path string
	cur  atomic.Pointer[snapshot]
}

// NewSource loads path. An empty path serves the built-in samples only.
func NewSource(path string) (*Source, error) {
	s := &Source{path: path}
	if path == "" {
		s.cur.Store(&snapshot{set: Defaults()})
		return s, nil
	}
	if _, err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the watched file, or "" for built-in samples.
func (s *Source) Path() string { return s.path }

// Checksum returns the digest of the loaded file.
func (s *Source) Checksum() string { return s.cur.Load().sum }

// Snapshot returns the current seed set. Callers must copy records before
// mutating them; page stores do so on activation.
func (s *Source) Snapshot() Set { return s.cur.Load().set }

// Reload re-reads the file and reports whether its content changed. A
// file that fails to parse leaves the previous snapshot in place.
func (s *Source) Reload() (bool, error) {
	if s.path == "" {
		return false, nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return false, fmt.Errorf("read fixtures %s: %w", s.path, err)
	}
	sum := Sum(data)
	if prev := s.cur.Load(); prev != nil && prev.sum == sum {
		return false, nil
	}
	set, err := Parse(data)
	if err != nil {
		return false, fmt.Errorf("%s: %w", s.path, err)
	}
	s.cur.Store(&snapshot{set: set, sum: sum})
	return true, nil
}
