// Package taxonomy defines the block/category configuration that drives
// evidence extraction. A taxonomy is resolved once (built-in default or a
// YAML file) and passed into the orchestrator as an immutable value.
package taxonomy

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/evidence-cli/internal/model"
)

// Category is a named evidence type with the keyword set used for
// relevance scoring. Keyword order is irrelevant.
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Block groups categories that share one extraction request and a
// section-priority preference.
type Block struct {
	Name             string              `yaml:"name"`
	Categories       []Category          `yaml:"categories"`
	PrioritySections []model.SectionType `yaml:"priority_sections"`
}

// Taxonomy is the full, ordered block configuration for a run.
type Taxonomy struct {
	Blocks []Block `yaml:"blocks"`
}

// Keywords returns the union of all keyword strings across the block's
// categories, in declaration order.
func (b Block) Keywords() []string {
	var out []string
	for _, c := range b.Categories {
		out = append(out, c.Keywords...)
	}
	return out
}

// CategoryNames returns the block's category names in declaration order.
func (b Block) CategoryNames() []string {
	names := make([]string, len(b.Categories))
	for i, c := range b.Categories {
		names[i] = c.Name
	}
	return names
}

// Validate checks structural invariants: at least one block, non-empty
// category keyword sets, globally unique category names, and known
// priority section types.
func (t Taxonomy) Validate() error {
	if len(t.Blocks) == 0 {
		return eris.New("taxonomy: no blocks defined")
	}
	seen := make(map[string]string)
	for _, b := range t.Blocks {
		if b.Name == "" {
			return eris.New("taxonomy: block with empty name")
		}
		if len(b.Categories) == 0 {
			return eris.Errorf("taxonomy: block %q has no categories", b.Name)
		}
		for _, c := range b.Categories {
			if c.Name == "" {
				return eris.Errorf("taxonomy: block %q has a category with empty name", b.Name)
			}
			if len(c.Keywords) == 0 {
				return eris.Errorf("taxonomy: category %q has no keywords", c.Name)
			}
			if owner, dup := seen[c.Name]; dup {
				return eris.Errorf("taxonomy: category %q appears in blocks %q and %q",
					c.Name, owner, b.Name)
			}
			seen[c.Name] = b.Name
		}
		for _, s := range b.PrioritySections {
			if !model.IsValidSectionType(s) {
				return eris.Errorf("taxonomy: block %q has unknown priority section %q", b.Name, s)
			}
		}
	}
	return nil
}

// LoadFile reads and validates a taxonomy from a YAML file.
func LoadFile(path string) (Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Taxonomy{}, eris.Wrapf(err, "taxonomy: read %s", path)
	}
	var t Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Taxonomy{}, eris.Wrapf(err, "taxonomy: parse %s", path)
	}
	if err := t.Validate(); err != nil {
		return Taxonomy{}, err
	}
	return t, nil
}
