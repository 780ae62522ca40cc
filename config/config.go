package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	ProviderBGE    = "bge"
	ProviderOpenAI = "openai"
)

type Config struct {
	LLM       LLMConfig       `yaml:"llm"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Splitter  SplitterConfig  `yaml:"splitter"`
	Store     StoreConfig     `yaml:"store"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Eval      EvalConfig      `yaml:"eval"`
	Loader    LoaderConfig    `yaml:"loader"`
	Log       LogConfig       `yaml:"log"`
}

type LLMConfig struct {
	APIKey        string  `yaml:"api_key"`
	BaseURL       string  `yaml:"base_url"`
	Model         string  `yaml:"model"`
	Temperature   float32 `yaml:"temperature"`
	MaxTokens     int     `yaml:"max_tokens"`
	MaxAttempts   int     `yaml:"max_attempts"`
	Rate          float64 `yaml:"rate"`
	Burst         int64   `yaml:"burst"`
	ContextWindow int     `yaml:"context_window"`
}

type EmbeddingConfig struct {
	Provider  string `yaml:"provider"`
	URL       string `yaml:"url"`
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	Device    string `yaml:"device"`
	Normalize bool   `yaml:"normalize"`
	BatchSize int    `yaml:"batch_size"`
}

type SplitterConfig struct {
	Strategy     string   `yaml:"strategy"`
	ChunkSize    int      `yaml:"chunk_size"`
	ChunkOverlap int      `yaml:"chunk_overlap"`
	Separators   []string `yaml:"separators"`
}

type StoreConfig struct {
	Distance string `yaml:"distance"`
}

type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

type EvalConfig struct {
	Enabled             *bool     `yaml:"enabled"`
	Metrics             []string  `yaml:"metrics"`
	Strictness          int       `yaml:"strictness"`
	MaxRetries          *int      `yaml:"max_retries"`
	SentenceTerminators *[]string `yaml:"sentence_terminators"`
}

// IsEnabled reports whether answers are evaluated. Unset means enabled.
func (c EvalConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// FormatRetries is how often unparseable metric output is sent back for
// repair. 0 turns the repair off.
func (c EvalConfig) FormatRetries() int {
	if c.MaxRetries == nil {
		return 1
	}
	return *c.MaxRetries
}

// Terminators lists the endings a sentence needs to be checked for
// faithfulness. An explicitly empty list keeps every sentence.
func (c EvalConfig) Terminators() []string {
	if c.SentenceTerminators == nil {
		return []string{"。"}
	}
	return *c.SentenceTerminators
}

type LoaderConfig struct {
	OfficeLicense string `yaml:"office_license"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load 读取 .env 与 YAML 配置，展开其中的 ${VAR} 并补全默认值。path 为空时只使用默认值和环境变量
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "load .env")
	}

	cfg := &Config{}
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
		if err = Parse([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}
	applyEnv(cfg)
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Parse(data []byte, cfg *Config) error {
	return yaml.UnmarshalStrict(data, cfg)
}

// applyEnv fills the API keys from the environment when the file left them empty.
func applyEnv(cfg *Config) {
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = firstEnv("RAGQA_API_KEY", "DASHSCOPE_API_KEY", "API_KEY")
	}
	if cfg.Embedding.APIKey == "" {
		cfg.Embedding.APIKey = cfg.LLM.APIKey
	}
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

func applyDefaults(cfg *Config) {
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "qwen-long"
	}
	if cfg.LLM.MaxAttempts <= 0 {
		cfg.LLM.MaxAttempts = 1
	}
	if cfg.LLM.Rate > 0 && cfg.LLM.Burst <= 0 {
		cfg.LLM.Burst = 1
	}

	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = ProviderBGE
	}
	if cfg.Embedding.URL == "" && cfg.Embedding.Provider == ProviderBGE {
		cfg.Embedding.URL = "http://127.0.0.1:8000/embed"
	}
	if cfg.Embedding.Device == "" {
		cfg.Embedding.Device = "cpu"
	}

	if cfg.Splitter.Strategy == "" {
		cfg.Splitter.Strategy = "character"
	}
	if cfg.Splitter.ChunkSize <= 0 {
		cfg.Splitter.ChunkSize = 200
	}
	// 负数表示不重叠
	switch {
	case cfg.Splitter.ChunkOverlap == 0:
		cfg.Splitter.ChunkOverlap = cfg.Splitter.ChunkSize / 4
	case cfg.Splitter.ChunkOverlap < 0:
		cfg.Splitter.ChunkOverlap = 0
	}

	if cfg.Store.Distance == "" {
		cfg.Store.Distance = "l2"
	}
	if cfg.Retrieval.TopK <= 0 {
		cfg.Retrieval.TopK = 4
	}

	if cfg.Eval.Strictness <= 0 {
		cfg.Eval.Strictness = 3
	}
	// 未配置时补默认值，显式的 0 和 [] 保留
	if cfg.Eval.MaxRetries == nil {
		retries := cfg.Eval.FormatRetries()
		cfg.Eval.MaxRetries = &retries
	}
	if cfg.Eval.SentenceTerminators == nil {
		terminators := cfg.Eval.Terminators()
		cfg.Eval.SentenceTerminators = &terminators
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
}

func (c *Config) Validate() error {
	switch c.Embedding.Provider {
	case ProviderBGE, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown embedding provider %q", c.Embedding.Provider)
	}
	switch c.Splitter.Strategy {
	case "character", "token":
	default:
		return fmt.Errorf("unknown splitter strategy %q", c.Splitter.Strategy)
	}
	if c.Splitter.ChunkOverlap >= c.Splitter.ChunkSize {
		return fmt.Errorf("chunk overlap %d must be smaller than chunk size %d",
			c.Splitter.ChunkOverlap, c.Splitter.ChunkSize)
	}
	switch c.Store.Distance {
	case "l2", "cosine":
	default:
		return fmt.Errorf("unknown distance %q", c.Store.Distance)
	}
	if c.Eval.FormatRetries() < 0 {
		return fmt.Errorf("eval max_retries must not be negative, got %d", c.Eval.FormatRetries())
	}
	return nil
}
