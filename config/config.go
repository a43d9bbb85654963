package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"voice-analysis/internal/domain"
)

type Config struct {
	Audio     AudioConfig     `yaml:"audio"`
	Prompt    PromptConfig    `yaml:"prompt"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Anthropic AnthropicConfig `yaml:"anthropic"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	Pushover  PushoverConfig  `yaml:"pushover"`
	Log       LogConfig       `yaml:"log"`
}

type AudioConfig struct {
	Source          string  `yaml:"source"` // "microphone" or "file"
	FilePath        string  `yaml:"file_path"`
	OutputPath      string  `yaml:"output_path"`
	RecordSeconds   float64 `yaml:"record_seconds"`
	SampleRate      int     `yaml:"sample_rate"`
	Channels        int     `yaml:"channels"`
	FramesPerBuffer int     `yaml:"frames_per_buffer"`
}

type PromptConfig struct {
	Path string `yaml:"path"`
}

type OpenAIConfig struct {
	APIKey             string `yaml:"api_key"`
	BaseURL            string `yaml:"base_url"`
	TranscriptionModel string `yaml:"transcription_model"`
	Language           string `yaml:"language"`
}

type AnalysisConfig struct {
	Provider string `yaml:"provider"` // "openai", "anthropic" or "gemini"
	Model    string `yaml:"model"`
	// Temperature is a pointer so an explicit 0 survives defaults.
	Temperature *float64 `yaml:"temperature"`
	MaxTokens   int      `yaml:"max_tokens"`
	// AnalyzeFailedTranscripts is a pointer so an explicit false survives defaults.
	AnalyzeFailedTranscripts *bool `yaml:"analyze_failed_transcripts"`
}

type AnthropicConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type GeminiConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type PushoverConfig struct {
	Token   string `yaml:"token"`
	UserKey string `yaml:"user_key"`
	Enabled bool   `yaml:"enabled"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// LoadEnvFile loads credentials from a dotenv file into the process
// environment. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	var cfg Config
	cfg.setDefaults()
	return &cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

// LoadOrDefault behaves like Load but falls back to Default when the file
// does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func (c *Config) setDefaults() {
	if c.Audio.Source == "" {
		c.Audio.Source = "microphone"
	}
	if c.Audio.OutputPath == "" {
		c.Audio.OutputPath = "voice_file.wav"
	}
	if c.Audio.RecordSeconds == 0 {
		c.Audio.RecordSeconds = 10
	}
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = 44100
	}
	if c.Audio.Channels == 0 {
		c.Audio.Channels = 1
	}
	if c.Audio.FramesPerBuffer == 0 {
		c.Audio.FramesPerBuffer = 1024
	}
	if c.Prompt.Path == "" {
		c.Prompt.Path = "prompt.txt"
	}
	if c.OpenAI.APIKey == "" {
		c.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.OpenAI.TranscriptionModel == "" {
		c.OpenAI.TranscriptionModel = "whisper-1"
	}
	if c.Analysis.Provider == "" {
		c.Analysis.Provider = "openai"
	}
	if c.Analysis.Temperature == nil {
		temperature := 0.1
		c.Analysis.Temperature = &temperature
	}
	if c.Analysis.MaxTokens == 0 {
		c.Analysis.MaxTokens = 500
	}
	if c.Analysis.AnalyzeFailedTranscripts == nil {
		analyze := true
		c.Analysis.AnalyzeFailedTranscripts = &analyze
	}
	if c.Anthropic.APIKey == "" {
		c.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if c.Gemini.APIKey == "" {
		c.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	switch c.Audio.Source {
	case "microphone":
	case "file":
		if c.Audio.FilePath == "" {
			return fmt.Errorf("%w: audio.file_path is required when audio.source is \"file\"", domain.ErrConfiguration)
		}
	default:
		return fmt.Errorf("%w: audio.source must be \"microphone\" or \"file\", got %q", domain.ErrConfiguration, c.Audio.Source)
	}

	if c.Audio.RecordSeconds <= 0 || c.Audio.RecordSeconds > domain.MaxRecordSeconds {
		return fmt.Errorf("%w: audio.record_seconds must be within (0, %d]", domain.ErrConfiguration, domain.MaxRecordSeconds)
	}
	if c.Audio.SampleRate <= 0 || c.Audio.Channels <= 0 || c.Audio.FramesPerBuffer <= 0 {
		return fmt.Errorf("%w: audio sample_rate, channels and frames_per_buffer must be > 0", domain.ErrConfiguration)
	}

	switch c.Analysis.Provider {
	case "openai", "anthropic", "gemini":
	default:
		return fmt.Errorf("%w: analysis.provider must be openai, anthropic, or gemini, got %q", domain.ErrConfiguration, c.Analysis.Provider)
	}

	if t := c.Analysis.Temperature; t != nil && (*t < 0 || *t > 2) {
		return fmt.Errorf("%w: analysis.temperature must be within [0, 2]", domain.ErrConfiguration)
	}
	if c.Analysis.MaxTokens < 0 {
		return fmt.Errorf("%w: analysis.max_tokens must be > 0", domain.ErrConfiguration)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level must be debug, info, warn, or error, got %q", domain.ErrConfiguration, c.Log.Level)
	}

	return nil
}
