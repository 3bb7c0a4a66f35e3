// Package openfootball parses openfootball-style club list YAML into an
// entity seed: one league and its member clubs, no match rows.
package openfootball

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/predictaball/datacore/internal/domain/ingest"
)

const sourcePrefix = "OpenFootball"

type document struct {
	Name    string     `yaml:"name"`
	League  string     `yaml:"league"`
	Country string     `yaml:"country"`
	Clubs   []clubItem `yaml:"clubs"`
}

// clubItem accepts both the plain-string and the mapping club notations.
type clubItem struct {
	Name string
}

func (c *clubItem) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		c.Name = strings.TrimSpace(node.Value)
		return nil
	}

	var body struct {
		Name string `yaml:"name"`
	}
	if err := node.Decode(&body); err != nil {
		return err
	}
	c.Name = strings.TrimSpace(body.Name)
	return nil
}

// Parse reads one club list document. repo names the openfootball dataset
// the document came from (e.g. "england") and becomes part of the seed's
// provenance tag.
func Parse(r io.Reader, repo string) (ingest.EntitySeed, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return ingest.EntitySeed{}, fmt.Errorf("read document: %w", err)
	}

	var body document
	if err := yaml.Unmarshal(raw, &body); err != nil {
		return ingest.EntitySeed{}, fmt.Errorf("decode document: %w", err)
	}

	leagueName := strings.TrimSpace(body.League)
	if leagueName == "" {
		leagueName = strings.TrimSpace(body.Name)
	}
	if leagueName == "" {
		return ingest.EntitySeed{}, fmt.Errorf("document has no league name")
	}

	teams := make([]string, 0, len(body.Clubs))
	for _, club := range body.Clubs {
		if club.Name == "" {
			continue
		}
		teams = append(teams, club.Name)
	}

	source := sourcePrefix
	if repo = strings.TrimSpace(repo); repo != "" {
		source = sourcePrefix + "/" + repo
	}

	return ingest.EntitySeed{
		LeagueName: leagueName,
		Sport:      "Football",
		Country:    strings.TrimSpace(body.Country),
		Source:     source,
		Teams:      teams,
	}, nil
}
