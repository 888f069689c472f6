package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"dario.cat/mergo"

	"amazon-reviews-scraper/adapters"
	"amazon-reviews-scraper/extractor"
	"amazon-reviews-scraper/internal/types"
)

// Defaults applied after merging when neither the job nor the settings set them.
const (
	DefaultMaxPages = 2
	DefaultSortBy   = "recent"
)

// JobSpec is one job as written in the input file or the settings defaults.
// Unset fields are zero or nil so they can be filled from defaults.
type JobSpec struct {
	ASIN            string   `json:"asin"`
	ASINs           []string `json:"asins"`
	DomainCode      string   `json:"domainCode"`
	MaxPages        *int     `json:"maxPages"`
	SortBy          string   `json:"sortBy"`
	FilterByStar    *string  `json:"filterByStar"`
	FilterByKeyword *string  `json:"filterByKeyword"`
	VerifiedOnly    *bool    `json:"verifiedOnly"`
	WithMediaOnly   *bool    `json:"withMediaOnly"`
	Mock            *bool    `json:"mock"`
}

// NetworkSettings configure the page fetcher
type NetworkSettings struct {
	TimeoutSeconds *float64 `json:"timeoutSeconds"`
	MaxRetries     *int     `json:"maxRetries"`
	Proxy          string   `json:"proxy"`
	UserAgent      string   `json:"userAgent"`
}

// Settings is the settings file: job defaults, domain aliases and network options
type Settings struct {
	Defaults JobSpec           `json:"defaults"`
	Domains  map[string]string `json:"domains"`
	Network  NetworkSettings   `json:"network"`
}

// Overrides are command-line values applied on top of the settings defaults
type Overrides struct {
	MaxPages *int
	SortBy   string
	Mock     bool
}

// Job is a fully resolved job ready to run
type Job struct {
	ASINs      []string `validate:"required,min=1,dive,required"`
	DomainCode string
	MaxPages   int `validate:"gte=1"`
	SortBy     string
	Filters    types.Filters
	Mock       bool
}

// LoadSettings reads the settings file. A missing file yields empty settings
// and found=false.
func LoadSettings(path string) (settings Settings, found bool, err error) {
	settings, err = ReadConfig[Settings](path)
	if errors.Is(err, os.ErrNotExist) {
		return Settings{}, false, nil
	}
	if err != nil {
		return Settings{}, false, err
	}
	return settings, true, nil
}

// LoadInput reads the input file, which holds either {"jobs": [...]} or a single job
func LoadInput(path string) ([]JobSpec, error) {
	input, err := ReadConfig[struct {
		Jobs []JobSpec `json:"jobs"`
	}](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
	}
	if len(input.Jobs) > 0 {
		return input.Jobs, nil
	}

	job, err := ReadConfig[JobSpec](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
	}
	return []JobSpec{job}, nil
}

// WithOverrides returns the settings defaults with command-line values applied
func (s Settings) WithOverrides(o Overrides) JobSpec {
	defaults := s.Defaults
	if o.MaxPages != nil {
		defaults.MaxPages = o.MaxPages
	}
	if o.SortBy != "" {
		defaults.SortBy = o.SortBy
	}
	if o.Mock {
		mock := true
		defaults.Mock = &mock
	}
	return defaults
}

// DefaultDomainCode is the domain used by jobs that do not name one
func (s Settings) DefaultDomainCode() string {
	if s.Defaults.DomainCode != "" {
		return s.Defaults.DomainCode
	}
	return adapters.DefaultDomainCode
}

// DomainResolver builds the resolver from the domain alias table
func (s Settings) DomainResolver() *adapters.DomainResolver {
	return adapters.NewDomainResolver(s.Domains, s.DefaultDomainCode())
}

// ScraperConfig builds the fetcher configuration from the network settings
func (s Settings) ScraperConfig() *types.Config {
	config := types.DefaultConfig()
	if s.Network.TimeoutSeconds != nil {
		config.Timeout = time.Duration(*s.Network.TimeoutSeconds * float64(time.Second))
	}
	if s.Network.MaxRetries != nil {
		config.MaxRetries = *s.Network.MaxRetries
	}
	if s.Network.Proxy != "" {
		config.Proxy = s.Network.Proxy
	}
	if s.Network.UserAgent != "" {
		config.UserAgent = s.Network.UserAgent
	}
	return config
}

// Resolve merges defaults into spec, where fields set on the job win, and
// fills what is still unset
func Resolve(spec, defaults JobSpec, defaultDomainCode string) (Job, error) {
	if len(spec.ASINs) == 0 && spec.ASIN != "" {
		spec.ASINs = []string{spec.ASIN}
	}
	if err := mergo.Merge(&spec, defaults, mergo.WithoutDereference); err != nil {
		return Job{}, fmt.Errorf("failed to merge job defaults: %w", err)
	}

	job := Job{
		ASINs:      spec.ASINs,
		DomainCode: spec.DomainCode,
		MaxPages:   DefaultMaxPages,
		SortBy:     spec.SortBy,
		Filters: types.Filters{
			FilterByStar:    spec.FilterByStar,
			FilterByKeyword: spec.FilterByKeyword,
			VerifiedOnly:    spec.VerifiedOnly != nil && *spec.VerifiedOnly,
			WithMediaOnly:   spec.WithMediaOnly != nil && *spec.WithMediaOnly,
		},
		Mock: spec.Mock != nil && *spec.Mock,
	}
	if len(job.ASINs) == 0 && spec.ASIN != "" {
		job.ASINs = []string{spec.ASIN}
	}
	if job.DomainCode == "" {
		job.DomainCode = defaultDomainCode
	}
	if spec.MaxPages != nil {
		job.MaxPages = *spec.MaxPages
	}
	if job.SortBy == "" {
		job.SortBy = DefaultSortBy
	}
	return job, nil
}

// Requests expands the job into one extractor request per ASIN
func (j Job) Requests() []extractor.Request {
	requests := make([]extractor.Request, 0, len(j.ASINs))
	for _, asin := range j.ASINs {
		requests = append(requests, extractor.Request{
			ASIN:       asin,
			DomainCode: j.DomainCode,
			MaxPages:   j.MaxPages,
			SortBy:     j.SortBy,
			Filters:    j.Filters,
			Mock:       j.Mock,
		})
	}
	return requests
}
