// Package topics loads the topic/keyword configuration that drives each
// collection run.
package topics

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Topic is one named group of search keywords. Weight orders topics in the
// final output; higher runs first.
type Topic struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Weight   int      `yaml:"weight"`
}

type File struct {
	Topics              []Topic `yaml:"topics"`
	MaxTopics           int     `yaml:"max_topics"`
	MaxArticlesPerTopic int     `yaml:"max_articles_per_topic"`
}

// Load reads and validates a topics YAML file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read topics config: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse topics config: %w", err)
	}

	if len(f.Topics) == 0 {
		return nil, fmt.Errorf("topics config %s defines no topics", path)
	}
	for i, t := range f.Topics {
		if t.Name == "" {
			return nil, fmt.Errorf("topic %d has no name", i)
		}
		if len(t.Keywords) == 0 {
			return nil, fmt.Errorf("topic %q has no keywords", t.Name)
		}
	}

	if f.MaxArticlesPerTopic <= 0 {
		f.MaxArticlesPerTopic = 5
	}

	return &f, nil
}

// Weighted returns the topics sorted by descending weight, ties kept in
// file order, truncated to MaxTopics when set.
func (f *File) Weighted() []Topic {
	out := make([]Topic, len(f.Topics))
	copy(out, f.Topics)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Weight > out[j].Weight
	})
	if f.MaxTopics > 0 && len(out) > f.MaxTopics {
		out = out[:f.MaxTopics]
	}
	return out
}

// AllKeywords returns every keyword of the weighted topic list, in order,
// without duplicates.
func (f *File) AllKeywords() []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range f.Weighted() {
		for _, k := range t.Keywords {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	return out
}
