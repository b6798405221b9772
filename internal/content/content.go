// Package content holds the static page content: profile, services,
// experience, teaching, projects, publications, news and testimonials.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var embedded []byte

var ErrNotFound = errors.New("content not found")

// Catalog is the whole page's content. It is read once at start-up and never
// changed afterwards.
type Catalog struct {
	Profile          Profile       `yaml:"profile" json:"profile"`
	Social           []Link        `yaml:"social" json:"social"`
	ContactInfo      []Link        `yaml:"contact_info" json:"contact_info"`
	Availability     []string      `yaml:"availability" json:"availability"`
	AboutStats       []Stat        `yaml:"about_stats" json:"about_stats"`
	Services         []Service     `yaml:"services" json:"services"`
	Experience       []Experience  `yaml:"experience" json:"experience"`
	Education        Education     `yaml:"education" json:"education"`
	Teaching         Teaching      `yaml:"teaching" json:"teaching"`
	Filters          Filters       `yaml:"filters" json:"filters"`
	Projects         []Project     `yaml:"projects" json:"projects"`
	PublicationStats []TextStat    `yaml:"publication_stats" json:"publication_stats"`
	Publications     []Publication `yaml:"publications" json:"publications"`
	News             []NewsItem    `yaml:"news" json:"news"`
	Testimonials     []Testimonial `yaml:"testimonials" json:"testimonials"`
	Clients          []string      `yaml:"clients" json:"clients"`
	ProfileLinks     []Link        `yaml:"profile_links" json:"profile_links"`
	Navigation       []NavItem     `yaml:"navigation" json:"navigation"`
	Footer           []FooterGroup `yaml:"footer" json:"footer"`
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(embedded)
}

// MustLoad is Load for start-up code; the embedded file is part of the build.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic("Failed to load content: " + err.Error())
	}
	return c
}

// Parse decodes and checks a catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if c.Profile.Name == "" {
		return errors.New("content: profile name is required")
	}
	if len(c.Testimonials) == 0 {
		return errors.New("content: at least one testimonial is required")
	}
	if err := uniqueIDs("project", c.Projects, func(p Project) string { return p.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("publication", c.Publications, func(p Publication) string { return p.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("experience", c.Experience, func(e Experience) string { return e.ID }); err != nil {
		return err
	}
	for name, filters := range map[string][]string{
		"projects":     c.Filters.Projects,
		"publications": c.Filters.Publications,
		"news":         c.Filters.News,
	} {
		if len(filters) == 0 || filters[0] != "All" {
			return fmt.Errorf("content: %s filters must start with All", name)
		}
	}
	return nil
}

func uniqueIDs[T any](kind string, items []T, id func(T) string) error {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		key := id(it)
		if key == "" {
			return fmt.Errorf("content: %s without id", kind)
		}
		if seen[key] {
			return fmt.Errorf("content: duplicate %s id %q", kind, key)
		}
		seen[key] = true
	}
	return nil
}

// ProjectCategory, PublicationType and NewsCategory are the fields the
// filterable lists match on.
func ProjectCategory(p Project) string { return p.Category }

func PublicationType(p Publication) string { return p.Type }

func NewsCategory(n NewsItem) string { return n.Category }

func (c *Catalog) ProjectByID(id string) (Project, error) {
	i := slices.IndexFunc(c.Projects, func(p Project) bool { return p.ID == id })
	if i < 0 {
		return Project{}, fmt.Errorf("project %q: %w", id, ErrNotFound)
	}
	return c.Projects[i], nil
}

func (c *Catalog) PublicationByID(id string) (Publication, error) {
	i := slices.IndexFunc(c.Publications, func(p Publication) bool { return p.ID == id })
	if i < 0 {
		return Publication{}, fmt.Errorf("publication %q: %w", id, ErrNotFound)
	}
	return c.Publications[i], nil
}

func (c *Catalog) ExperienceByID(id string) (Experience, error) {
	i := slices.IndexFunc(c.Experience, func(e Experience) bool { return e.ID == id })
	if i < 0 {
		return Experience{}, fmt.Errorf("experience %q: %w", id, ErrNotFound)
	}
	return c.Experience[i], nil
}
