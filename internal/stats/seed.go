package stats

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lepinkainen/marquee/internal/movies"
)

// Seed is the YAML layout accepted by LoadSeed:
//
//	genres:
//	  - id: 28
//	    name: Action
//	    count: 120
type Seed struct {
	Genres []movies.GenreStat `yaml:"genres"`
}

// LoadSeed reads genre stats from a YAML file.
func LoadSeed(path string) ([]movies.GenreStat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes genre stats from YAML. Duplicate ids are rejected.
func ParseSeed(data []byte) ([]movies.GenreStat, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}

	seen := make(map[int]bool, len(seed.Genres))
	for _, stat := range seed.Genres {
		if err := validate(stat); err != nil {
			return nil, err
		}
		if seen[stat.ID] {
			return nil, fmt.Errorf("%w: duplicate genre id %d", ErrInvalidStat, stat.ID)
		}
		seen[stat.ID] = true
	}

	if seed.Genres == nil {
		return []movies.GenreStat{}, nil
	}
	return seed.Genres, nil
}
