// Package jobs holds job postings and the match results computed for them.
package jobs

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"github.com/spigell/cv-matcher/internal/matching"
)

const (
	JobIDField    = "ID"
	EmployerField = "Employer"
)

var ErrNoPostings = errors.New("no job postings found")

type Postings struct {
	Items []*Posting
}

type Posting struct {
	ID           string                  `json:"id" mapstructure:"id"`
	Title        string                  `json:"title,omitempty" mapstructure:"title"`
	Employer     string                  `json:"employer,omitempty" mapstructure:"employer"`
	Location     string                  `json:"location,omitempty" mapstructure:"location"`
	Salary       string                  `json:"salary,omitempty" mapstructure:"salary"`
	URL          string                  `json:"url,omitempty" mapstructure:"url"`
	Description  string                  `json:"description,omitempty" mapstructure:"description"`
	Requirements matching.JobRequirement `json:"requirements" mapstructure:"requirements"`
}

// LoadFile reads postings from a YAML, JSON or TOML file with a top level "jobs" list.
func LoadFile(path string) (*Postings, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading postings file %s: %w", path, err)
	}

	var items []*Posting
	cfg := &mapstructure.DecoderConfig{
		Result:           &items,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(v.Get("jobs")); err != nil {
		return nil, fmt.Errorf("decoding postings from %s: %w", path, err)
	}

	postings := &Postings{Items: items}
	if err := postings.Validate(); err != nil {
		return nil, fmt.Errorf("validating postings from %s: %w", path, err)
	}

	return postings, nil
}

// Validate checks that there is at least one posting and that IDs are set and unique.
func (p *Postings) Validate() error {
	if p == nil || len(p.Items) == 0 {
		return ErrNoPostings
	}

	seen := make(map[string]struct{}, len(p.Items))
	for idx, posting := range p.Items {
		if posting == nil || posting.ID == "" {
			return fmt.Errorf("posting #%d has no id", idx+1)
		}
		if _, ok := seen[posting.ID]; ok {
			return fmt.Errorf("duplicate posting id %q", posting.ID)
		}
		seen[posting.ID] = struct{}{}
	}

	return nil
}

func (p *Postings) Len() int {
	return len(p.Items)
}

func (p *Postings) FindByID(id string) *Posting {
	for _, posting := range p.Items {
		if posting.ID == id {
			return posting
		}
	}
	return nil
}

// Requirements returns the requirements of every posting, keyed by posting ID, in file order.
func (p *Postings) Requirements() []matching.JobRequirement {
	reqs := make([]matching.JobRequirement, 0, len(p.Items))
	for _, posting := range p.Items {
		req := posting.Requirements
		req.JobID = posting.ID
		reqs = append(reqs, req)
	}
	return reqs
}

func (p *Posting) GetStringField(name string) string {
	switch name {
	case JobIDField:
		return p.ID
	case EmployerField:
		return p.Employer

	default:
		return ""
	}
}
