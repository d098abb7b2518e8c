// Package config loads the allot configuration from a YAML file and the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/etnz/allot"
	"github.com/etnz/allot/logger"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Rules struct {
		// MaxPlans is the maximum number of plans per request. 0 selects the
		// default, a negative value removes the limit.
		MaxPlans int      `yaml:"max_plans"`
		Kinds    []string `yaml:"kinds"`
	} `yaml:"rules"`
	Allocation struct {
		CapPolicy  string `yaml:"cap_policy"`
		SeedPolicy string `yaml:"seed_policy"`
	} `yaml:"allocation"`
	Currency string `yaml:"currency"`
	Log      struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error. Variables from a
// .env file in the working directory are loaded first.
func Load(path string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	// Environment variable overrides
	if v := os.Getenv("ALLOT_MAX_PLANS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("ALLOT_MAX_PLANS: %w", err)
		}
		cfg.Rules.MaxPlans = n
	}
	if v := os.Getenv("ALLOT_KINDS"); v != "" {
		cfg.Rules.Kinds = strings.Split(v, ",")
	}
	if v := os.Getenv("ALLOT_CAP_POLICY"); v != "" {
		cfg.Allocation.CapPolicy = v
	}
	if v := os.Getenv("ALLOT_SEED_POLICY"); v != "" {
		cfg.Allocation.SeedPolicy = v
	}
	if v := os.Getenv("ALLOT_CURRENCY"); v != "" {
		cfg.Currency = v
	}
	if v := os.Getenv("ALLOT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("ALLOT_LOG_PRETTY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("ALLOT_LOG_PRETTY: %w", err)
		}
		cfg.Log.Pretty = b
	}

	// Defaults
	if cfg.Rules.MaxPlans == 0 {
		cfg.Rules.MaxPlans = allot.DefaultRules().MaxPlans
	}
	if len(cfg.Rules.Kinds) == 0 {
		for _, k := range allot.Kinds() {
			cfg.Rules.Kinds = append(cfg.Rules.Kinds, k.String())
		}
	}
	if cfg.Allocation.CapPolicy == "" {
		cfg.Allocation.CapPolicy = allot.CapLifetime.String()
	}
	if cfg.Allocation.SeedPolicy == "" {
		cfg.Allocation.SeedPolicy = allot.SeedUnion.String()
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that all fields hold supported values.
func (c *Config) Validate() error {
	if _, err := c.AllotRules(); err != nil {
		return err
	}
	if _, err := allot.ParseCapPolicy(c.Allocation.CapPolicy); err != nil {
		return fmt.Errorf("allocation.cap_policy: %w", err)
	}
	if _, err := allot.ParseSeedPolicy(c.Allocation.SeedPolicy); err != nil {
		return fmt.Errorf("allocation.seed_policy: %w", err)
	}
	if c.Currency != "" && money.GetCurrency(c.Currency) == nil {
		return fmt.Errorf("currency: unknown ISO 4217 code %q", c.Currency)
	}
	return nil
}

// AllotRules returns the validation rules. Kinds are given by name, aliases
// are accepted.
func (c *Config) AllotRules() (allot.Rules, error) {
	rules := allot.Rules{MaxPlans: c.Rules.MaxPlans}
	for _, name := range c.Rules.Kinds {
		k := allot.ParseKind(name)
		if !k.Known() {
			return allot.Rules{}, fmt.Errorf("rules.kinds: unknown plan kind %q", name)
		}
		rules.Kinds = append(rules.Kinds, k)
	}
	return rules, nil
}

// Logger returns the logger described by the configuration.
func (c *Config) Logger() zerolog.Logger {
	return logger.New(logger.Config{Level: c.Log.Level, Pretty: c.Log.Pretty})
}

// Allocator returns an allocator with the configured rules and policies.
func (c *Config) Allocator(log zerolog.Logger) (*allot.Allocator, error) {
	rules, err := c.AllotRules()
	if err != nil {
		return nil, err
	}
	caps, err := allot.ParseCapPolicy(c.Allocation.CapPolicy)
	if err != nil {
		return nil, err
	}
	seed, err := allot.ParseSeedPolicy(c.Allocation.SeedPolicy)
	if err != nil {
		return nil, err
	}
	a := allot.NewAllocator(rules, log)
	a.Caps = caps
	a.Seed = seed
	return a, nil
}
