package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"voice-analysis/config"
	"voice-analysis/internal/application"
	"voice-analysis/internal/domain"
	"voice-analysis/internal/infra/anthropic"
	"voice-analysis/internal/infra/audio"
	"voice-analysis/internal/infra/gemini"
	"voice-analysis/internal/infra/openai"
	"voice-analysis/internal/infra/prompt"
	"voice-analysis/internal/infra/pushover"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run wires the components and blocks in the interactive loop until the
// user quits. There is no signal handling: an interrupt terminates the
// process wherever it is blocked.
func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	flags := flag.NewFlagSet("voice-analysis", flag.ContinueOnError)
	configPath := flags.String("config", "config.yaml", "path to config file")
	envPath := flags.String("env", ".env", "path to dotenv file with API credentials")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if err := config.LoadEnvFile(*envPath); err != nil {
		return err
	}

	explicitConfig := false
	flags.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicitConfig = true
		}
	})

	cfg, err := loadConfig(*configPath, explicitConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	logger := setupLogger(cfg.Log, stdout)

	promptText, err := prompt.Load(cfg.Prompt.Path)
	if err != nil {
		logger.Error("loading prompt", "path", cfg.Prompt.Path, "error", err)
		return err
	}

	format := domain.DefaultAudioFormat()
	format.SampleRate = cfg.Audio.SampleRate
	format.Channels = cfg.Audio.Channels
	format.FramesPerBuffer = cfg.Audio.FramesPerBuffer

	recorder := audio.NewRecorder(createInputDevice(cfg.Audio, logger), format, cfg.Audio.OutputPath, logger)

	var stt application.SpeechToText
	if cfg.OpenAI.APIKey != "" || cfg.OpenAI.BaseURL != "" {
		stt = openai.NewWhisperClientWithURL(cfg.OpenAI.APIKey, cfg.OpenAI.TranscriptionModel, cfg.OpenAI.Language, baseURLOr(cfg.OpenAI.BaseURL, "https://api.openai.com/v1"))
	} else {
		logger.Warn("no OpenAI API key configured, transcription will fail")
		stt = &application.NoopSTT{}
	}

	var notifier application.Notifier
	if cfg.Pushover.Enabled {
		notifier = pushover.NewClient(cfg.Pushover.Token, cfg.Pushover.UserKey)
	} else {
		notifier = &application.NoopNotifier{}
	}

	session := application.NewSession(
		stdin,
		stdout,
		recorder,
		stt,
		createAnalyzer(cfg),
		notifier,
		promptText,
		application.SessionConfig{
			RecordSeconds:            cfg.Audio.RecordSeconds,
			AnalyzeFailedTranscripts: *cfg.Analysis.AnalyzeFailedTranscripts,
		},
		logger,
	)

	logger.Debug("starting voice analysis",
		"audio_source", cfg.Audio.Source,
		"analysis_provider", cfg.Analysis.Provider,
	)

	if err := session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("session error", "error", err)
		return err
	}
	return nil
}

// loadConfig falls back to built-in defaults only when no config path was
// given and the default file does not exist.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	if explicit {
		return config.Load(path)
	}
	return config.LoadOrDefault(path)
}

func createInputDevice(cfg config.AudioConfig, logger *slog.Logger) audio.InputDevice {
	switch cfg.Source {
	case "file":
		return audio.NewFileDevice(cfg.FilePath)
	default:
		return audio.NewMicrophoneDevice(logger)
	}
}

func createAnalyzer(cfg *config.Config) application.Analyzer {
	a := cfg.Analysis
	temperature := openai.DefaultTemperature
	if a.Temperature != nil {
		temperature = *a.Temperature
	}
	switch a.Provider {
	case "anthropic":
		return anthropic.NewClaudeClientWithURL(cfg.Anthropic.APIKey, a.Model, temperature, a.MaxTokens,
			baseURLOr(cfg.Anthropic.BaseURL, "https://api.anthropic.com/v1"))
	case "gemini":
		return gemini.NewClientWithURL(cfg.Gemini.APIKey, a.Model, temperature, a.MaxTokens,
			baseURLOr(cfg.Gemini.BaseURL, "https://generativelanguage.googleapis.com/v1beta"))
	default:
		return openai.NewChatClientWithURL(cfg.OpenAI.APIKey, a.Model, float32(temperature), a.MaxTokens,
			baseURLOr(cfg.OpenAI.BaseURL, "https://api.openai.com/v1"))
	}
}

func baseURLOr(url, fallback string) string {
	if url == "" {
		return fallback
	}
	return url
}

func setupLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
