// Package taxonomy provides the category suggestions offered when entering
// transactions. Categories are free-form labels, so the taxonomy is advisory
// and a transaction may carry a category outside of it.
package taxonomy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Taxonomy lists the suggested categories per transaction type.
type Taxonomy struct {
	Income  []string `yaml:"income"`
	Expense []string `yaml:"expense"`
}

// Default returns the built-in category suggestions.
func Default() Taxonomy {
	return Taxonomy{
		Income:  []string{"Salary", "Freelance", "Investments", "Gifts", "Other"},
		Expense: []string{"Home", "Groceries", "Transport", "Health", "Leisure", "Subscriptions", "Taxes", "Other"},
	}
}

// Load reads a taxonomy from a YAML file. An empty path returns the
// defaults; a missing or malformed file is an error so a typo in the path
// doesn't silently fall back.
func Load(path string) (Taxonomy, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Taxonomy{}, fmt.Errorf("read taxonomy file: %w", err)
	}

	var t Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Taxonomy{}, fmt.Errorf("parse taxonomy file: %w", err)
	}

	// A file may override only one side
	def := Default()
	if len(t.Income) == 0 {
		t.Income = def.Income
	}
	if len(t.Expense) == 0 {
		t.Expense = def.Expense
	}
	return t, nil
}
