// Package config provides configuration management for county extraction runs.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrNoCounties          = errors.New("at least one county profile is required")
	ErrCountyMissingName   = errors.New("county name is required")
	ErrDuplicateCounty     = errors.New("county name must be unique")
	ErrUnknownCounty       = errors.New("county is not configured")
	ErrInvalidFormat       = errors.New("county format must be 'html' or 'json'")
	ErrMissingParcelField  = errors.New("county selector for parcel_id is required")
	ErrNoPropertyUseCodes  = errors.New("county property_use_codes must not be empty")
	ErrInvalidCasing       = errors.New("names.company_casing must be one of: title, upper, preserve")
	ErrInvalidLogLevel     = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrMissingOutputDir    = errors.New("run.output_dir is required")
	ErrInvalidSalesColumns = errors.New("sales table requires a date column")
)

// Source formats.
const (
	FormatHTML = "html"
	FormatJSON = "json"
)

// Environment overrides.
const (
	EnvConfig    = "COUNTYGRAPH_CONFIG"
	EnvCounty    = "COUNTYGRAPH_COUNTY"
	EnvLogLevel  = "COUNTYGRAPH_LOG_LEVEL"
	EnvInputDir  = "COUNTYGRAPH_INPUT_DIR"
	EnvOutputDir = "COUNTYGRAPH_OUTPUT_DIR"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config represents the complete extractor configuration.
type Config struct {
	Run      RunConfig       `yaml:"run"`
	Logging  LoggingConfig   `yaml:"logging"`
	Counties []CountyProfile `yaml:"counties"`
}

// RunConfig selects the county and the directories of one run.
type RunConfig struct {
	County    string `yaml:"county"`
	InputDir  string `yaml:"input_dir"`
	OutputDir string `yaml:"output_dir"`
	Report    string `yaml:"report"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level        string `yaml:"level"`
	Pretty       bool   `yaml:"pretty"`
	ShowProgress bool   `yaml:"show_progress"`
}

// CountyProfile is everything that differs between counties.
type CountyProfile struct {
	Name                string            `yaml:"name"`
	Format              string            `yaml:"format"`
	Selectors           FieldSelectors    `yaml:"selectors"`
	JSONPaths           FieldSelectors    `yaml:"json_paths"`
	PropertyUseCodes    map[string]string `yaml:"property_use_codes"`
	DeedTypes           map[string]string `yaml:"deed_types"`
	Names               NameConfig        `yaml:"names"`
	AddressFileRequired bool              `yaml:"address_file_required"`
	CleanOutput         bool              `yaml:"clean_output"`
}

// FieldSelectors locates document fields. For HTML sources the values are CSS
// selectors; for JSON sources they are gjson paths.
type FieldSelectors struct {
	ParcelID         string         `yaml:"parcel_id"`
	PropertyUseCode  string         `yaml:"property_use_code"`
	SitusAddress     string         `yaml:"situs_address"`
	MailingAddress   string         `yaml:"mailing_address"`
	LegalDescription string         `yaml:"legal_description"`
	Subdivision      string         `yaml:"subdivision"`
	Zoning           string         `yaml:"zoning"`
	YearBuilt        string         `yaml:"year_built"`
	LivingArea       string         `yaml:"living_area"`
	LotAcres         string         `yaml:"lot_acres"`
	LotSquareFeet    string         `yaml:"lot_square_feet"`
	Sales            TableSelectors `yaml:"sales"`
	Valuations       TableSelectors `yaml:"valuations"`
}

// TableSelectors locates the rows of a table and the cells inside each row.
// Column selectors are relative to the row.
type TableSelectors struct {
	Rows    string            `yaml:"rows"`
	Columns map[string]string `yaml:"columns"`
}

// NameConfig tunes owner name resolution.
type NameConfig struct {
	CompanyKeywords    []string `yaml:"company_keywords"`
	SuffixTokens       []string `yaml:"suffix_tokens"`
	Prefixes           []string `yaml:"prefixes"`
	Suffixes           []string `yaml:"suffixes"`
	SharedSurnameSplit *bool    `yaml:"shared_surname_split"`
	SplitOnComma       *bool    `yaml:"split_on_comma"`
	CompanyCasing      string   `yaml:"company_casing"`
	NamePattern        string   `yaml:"name_pattern"`
}

// Fields returns the selectors that apply to the profile's format.
func (p *CountyProfile) Fields() FieldSelectors {
	if p.Format == FormatJSON {
		return p.JSONPaths
	}

	return p.Selectors
}

// Default returns the embedded configuration.
func Default() (*Config, error) {
	return Parse(defaultsYAML)
}

// LoadConfig loads configuration from YAML file. Run and logging settings the
// file leaves empty are taken from the embedded defaults.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes and validates YAML configuration.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.fillDefaults(); err != nil {
		return nil, err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) fillDefaults() error {
	var base Config
	if err := yaml.Unmarshal(defaultsYAML, &base); err != nil {
		return fmt.Errorf("failed to parse embedded defaults: %w", err)
	}

	// The default county only applies to the embedded profiles.
	base.Run.County = ""

	if err := mergo.Merge(&c.Run, base.Run); err != nil {
		return fmt.Errorf("failed to merge run defaults: %w", err)
	}

	if c.Logging.Level == "" {
		c.Logging.Level = base.Logging.Level
	}

	for i := range c.Counties {
		if c.Counties[i].Format == "" {
			c.Counties[i].Format = FormatHTML
		}
	}

	return nil
}

// ApplyEnv overrides run and logging settings from the environment.
func (c *Config) ApplyEnv() {
	overrides := []struct {
		env    string
		target *string
	}{
		{EnvCounty, &c.Run.County},
		{EnvLogLevel, &c.Logging.Level},
		{EnvInputDir, &c.Run.InputDir},
		{EnvOutputDir, &c.Run.OutputDir},
	}

	for _, o := range overrides {
		if v := strings.TrimSpace(os.Getenv(o.env)); v != "" {
			*o.target = v
		}
	}
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Counties) == 0 {
		return ErrNoCounties
	}

	seen := make(map[string]bool)

	for i := range c.Counties {
		p := &c.Counties[i]

		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%w: counties[%d]", ErrCountyMissingName, i)
		}

		key := strings.ToLower(p.Name)
		if seen[key] {
			return fmt.Errorf("%w: %s", ErrDuplicateCounty, p.Name)
		}

		seen[key] = true

		if err := p.Validate(); err != nil {
			return fmt.Errorf("county %s: %w", p.Name, err)
		}
	}

	if c.Run.County != "" {
		if _, err := c.County(c.Run.County); err != nil {
			return err
		}
	}

	if c.Run.OutputDir == "" {
		return ErrMissingOutputDir
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return ErrInvalidLogLevel
	}

	return nil
}

// Validate validates a single county profile.
func (p *CountyProfile) Validate() error {
	if p.Format != FormatHTML && p.Format != FormatJSON {
		return ErrInvalidFormat
	}

	fields := p.Fields()
	if fields.ParcelID == "" {
		return ErrMissingParcelField
	}

	if fields.Sales.Rows != "" && fields.Sales.Columns["date"] == "" {
		return ErrInvalidSalesColumns
	}

	if len(p.PropertyUseCodes) == 0 {
		return ErrNoPropertyUseCodes
	}

	switch p.Names.CompanyCasing {
	case "", "title", "upper", "preserve":
	default:
		return ErrInvalidCasing
	}

	if p.Names.NamePattern != "" {
		if _, err := regexp.Compile(p.Names.NamePattern); err != nil {
			return fmt.Errorf("names.name_pattern is invalid regex: %w", err)
		}
	}

	return nil
}

// County returns the profile with the given name, matched case-insensitively.
func (c *Config) County(name string) (*CountyProfile, error) {
	for i := range c.Counties {
		if strings.EqualFold(c.Counties[i].Name, name) {
			return &c.Counties[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownCounty, name)
}

// SelectedCounty returns the profile named by run.county, or the first profile.
func (c *Config) SelectedCounty() (*CountyProfile, error) {
	if c.Run.County == "" {
		if len(c.Counties) == 0 {
			return nil, ErrNoCounties
		}

		return &c.Counties[0], nil
	}

	return c.County(c.Run.County)
}

// CountyNames returns the configured county names sorted.
func (c *Config) CountyNames() []string {
	names := make([]string, 0, len(c.Counties))
	for _, p := range c.Counties {
		names = append(names, p.Name)
	}

	sort.Strings(names)

	return names
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Counties: %d, County: %s, Output: %s}",
		len(c.Counties),
		c.Run.County,
		c.Run.OutputDir,
	)
}
