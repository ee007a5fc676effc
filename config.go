package ragduel

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/brunobiangulo/ragduel/llm"
	"github.com/brunobiangulo/ragduel/store"
)

// Config controls the engine: which graph store to open, which dataset and
// fact sheets to load, the retrieval knobs, and the generation backend
// chain in priority order.
type Config struct {
	// Dataset is a path to a YAML or XLSX dataset file. Empty means the
	// builtin superhero dataset.
	Dataset string `yaml:"dataset"`

	// FactSheets are extra fact sources (.txt, .md, .pdf) appended to the
	// derived fact corpus.
	FactSheets []string `yaml:"fact_sheets"`

	Store store.Config `yaml:"store"`

	// Backends is the generation chain, tried in order.
	Backends []llm.Config `yaml:"backends"`

	// Embedding enables the hybrid keyword+vector retriever when set.
	Embedding *llm.Config `yaml:"embedding"`

	TopK        int `yaml:"top_k"`
	MaxHops     int `yaml:"max_hops"`
	MaxEntities int `yaml:"max_entities"`
}

// DefaultConfig returns a configuration that works with no external
// services: builtin dataset, in-memory store, no hosted backends.
func DefaultConfig() Config {
	return Config{
		Store:       store.Config{Backend: "memory"},
		TopK:        5,
		MaxHops:     2,
		MaxEntities: 10,
	}
}

// LoadConfig reads a YAML config file, fills unset fields from defaults,
// and applies environment overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("RAGDUEL_DATASET"); v != "" {
		c.Dataset = v
	}
	if v := os.Getenv("RAGDUEL_STORE"); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv("RAGDUEL_STORE_PATH"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("RAGDUEL_STORE_DSN"); v != "" {
		c.Store.DSN = v
	}
	if v := os.Getenv("RAGDUEL_TOP_K"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.TopK = n
		}
	}
	if v := os.Getenv("RAGDUEL_MAX_HOPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxHops = n
		}
	}
	if v := os.Getenv("RAGDUEL_MAX_ENTITIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxEntities = n
		}
	}
	if v := os.Getenv("RAGDUEL_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			for i := range c.Backends {
				c.Backends[i].Timeout = d
			}
		}
	}

	// Well-known provider keys fill in any backend left without one.
	for i := range c.Backends {
		if c.Backends[i].APIKey != "" {
			continue
		}
		switch c.Backends[i].Provider {
		case "openai":
			c.Backends[i].APIKey = os.Getenv("OPENAI_API_KEY")
		case "groq":
			c.Backends[i].APIKey = os.Getenv("GROQ_API_KEY")
		case "openrouter":
			c.Backends[i].APIKey = os.Getenv("OPENROUTER_API_KEY")
		}
	}
	if c.Embedding != nil && c.Embedding.APIKey == "" && c.Embedding.Provider == "openai" {
		c.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
	}
}

func (c *Config) validate() error {
	if c.TopK < 1 {
		return fmt.Errorf("%w: top_k must be >= 1, got %d", ErrInvalidConfig, c.TopK)
	}
	if c.MaxHops < 1 {
		return fmt.Errorf("%w: max_hops must be >= 1, got %d", ErrInvalidConfig, c.MaxHops)
	}
	if c.MaxEntities < 1 {
		return fmt.Errorf("%w: max_entities must be >= 1, got %d", ErrInvalidConfig, c.MaxEntities)
	}
	return nil
}
