// Package content holds the static training-session copy shown on the public pages.
package content

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed sessions.yaml
var sessionsYAML []byte

// TrainingSession is one program listed on /events.
type TrainingSession struct {
	Slug       string   `yaml:"slug"`
	Label      string   `yaml:"label"`
	Headline   string   `yaml:"headline"`
	Summary    string   `yaml:"summary"`
	Title      string   `yaml:"title"`
	Paragraphs []string `yaml:"paragraphs"`
}

// Catalog is the ordered list of training sessions.
type Catalog struct {
	sessions []TrainingSession
	bySlug   map[string]int
}

// Load parses the embedded sessions file.
func Load() (*Catalog, error) {
	return Parse(sessionsYAML)
}

// Parse builds a Catalog from YAML. Slugs must be non-empty and unique.
func Parse(data []byte) (*Catalog, error) {
	var sessions []TrainingSession
	if err := yaml.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("content: parse sessions: %w", err)
	}
	if len(sessions) == 0 {
		return nil, errors.New("content: no sessions defined")
	}

	c := &Catalog{sessions: sessions, bySlug: make(map[string]int, len(sessions))}
	for i, s := range sessions {
		if s.Slug == "" {
			return nil, fmt.Errorf("content: session %d has no slug", i)
		}
		if _, dup := c.bySlug[s.Slug]; dup {
			return nil, fmt.Errorf("content: duplicate slug %q", s.Slug)
		}
		c.bySlug[s.Slug] = i
	}
	return c, nil
}

// All returns the sessions in file order.
func (c *Catalog) All() []TrainingSession {
	return c.sessions
}

// Find looks up a session by slug.
func (c *Catalog) Find(slug string) (TrainingSession, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return TrainingSession{}, false
	}
	return c.sessions[i], true
}
