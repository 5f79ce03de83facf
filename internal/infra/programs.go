package infra

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"donorhub/internal/domain"
)

type programCatalog struct {
	Programs []domain.Program `yaml:"programs"`
}

// LoadPrograms reads the program catalog from a YAML file. An empty path
// returns the built-in catalog.
func LoadPrograms(path string) ([]domain.Program, error) {
	if strings.TrimSpace(path) == "" {
		return domain.DefaultPrograms, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read programs file: %w", err)
	}
	return ParsePrograms(raw)
}

// ParsePrograms decodes a catalog document. Slugs must be unique and
// non-empty; a missing name defaults to the slug.
func ParsePrograms(raw []byte) ([]domain.Program, error) {
	var catalog programCatalog
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("decode programs: %w", err)
	}
	if len(catalog.Programs) == 0 {
		return nil, fmt.Errorf("programs: catalog is empty")
	}
	seen := make(map[string]struct{}, len(catalog.Programs))
	out := make([]domain.Program, 0, len(catalog.Programs))
	for i, p := range catalog.Programs {
		p.Slug = strings.TrimSpace(p.Slug)
		if p.Slug == "" {
			return nil, fmt.Errorf("programs[%d]: slug is required", i)
		}
		if _, dup := seen[p.Slug]; dup {
			return nil, fmt.Errorf("programs[%d]: duplicate slug %q", i, p.Slug)
		}
		seen[p.Slug] = struct{}{}
		if strings.TrimSpace(p.Name) == "" {
			p.Name = p.Slug
		}
		out = append(out, p)
	}
	return out, nil
}
