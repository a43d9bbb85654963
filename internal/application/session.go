package application

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"voice-analysis/internal/domain"
)

type SessionConfig struct {
	RecordSeconds float64
	// AnalyzeFailedTranscripts keeps sending the analysis request with an
	// empty user message when transcription failed.
	AnalyzeFailedTranscripts bool
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		RecordSeconds:            10,
		AnalyzeFailedTranscripts: true,
	}
}

// Session is the interactive record/transcribe/analyze loop. It is strictly
// sequential: each step blocks until the previous one has finished.
type Session struct {
	in       io.Reader
	out      io.Writer
	recorder Recorder
	stt      SpeechToText
	analyzer Analyzer
	notifier Notifier
	prompt   string
	cfg      SessionConfig
	logger   *slog.Logger

	timedTranscribe func(context.Context, string) (string, error)
}

func NewSession(
	in io.Reader,
	out io.Writer,
	recorder Recorder,
	stt SpeechToText,
	analyzer Analyzer,
	notifier Notifier,
	prompt string,
	cfg SessionConfig,
	logger *slog.Logger,
) *Session {
	s := &Session{
		in:       in,
		out:      out,
		recorder: recorder,
		stt:      stt,
		analyzer: analyzer,
		notifier: notifier,
		prompt:   prompt,
		cfg:      cfg,
		logger:   logger,
	}
	s.timedTranscribe = TimeFunc(logger, "transcribe", s.transcribeFile)
	return s
}

// Run reads commands until the user quits or input ends. The only error it
// returns is a failed analysis, which is not recoverable.
func (s *Session) Run(ctx context.Context) error {
	reader := bufio.NewReader(s.in)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, "Press r to record or q to quit: ")
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading command: %w", err)
		}
		if err != nil && line == "" {
			fmt.Fprintln(s.out)
			return nil
		}

		switch domain.ParseCommand(line) {
		case domain.CommandRecord:
			if err := s.processRecording(ctx); err != nil {
				return err
			}
		case domain.CommandQuit:
			s.logger.Debug("quit requested")
			return nil
		}
	}
}

func (s *Session) processRecording(ctx context.Context) error {
	path := s.record(ctx)

	text, ok := s.transcribe(ctx, path)
	if !ok && !s.cfg.AnalyzeFailedTranscripts {
		fmt.Fprintln(s.out, "Skipping analysis: no transcript")
		return nil
	}

	result, err := Timed(s.logger, "analyze", func() (string, error) {
		return s.analyzer.Analyze(ctx, text, s.prompt)
	})
	if err != nil {
		return fmt.Errorf("analyzing transcript: %w", err)
	}

	fmt.Fprintln(s.out, "RESULT:")
	fmt.Fprintln(s.out, result)
	fmt.Fprintln(s.out)

	if err := s.notifier.Notify(ctx, result); err != nil {
		s.logger.Error("notifying result", "error", err)
	}

	return nil
}

// record returns the recorded file path, or "" when recording failed.
func (s *Session) record(ctx context.Context) string {
	fmt.Fprintln(s.out, "Start recording...")

	path, err := s.recorder.Record(ctx, s.cfg.RecordSeconds)
	if err != nil {
		s.logger.Error("recording", "error", err)
		fmt.Fprintln(s.out, err)
		return ""
	}

	fmt.Fprintln(s.out, "Recording stopped")
	return path
}

// transcribe reports ok=false when there is no usable transcript.
func (s *Session) transcribe(ctx context.Context, path string) (string, bool) {
	fmt.Fprintln(s.out, "Transcribing...")

	text, err := s.timedTranscribe(ctx, path)
	if err != nil {
		if !errors.Is(err, domain.ErrTranscription) {
			err = fmt.Errorf("%w: %w", domain.ErrTranscription, err)
		}
		s.logger.Error("transcribing", "error", err)
		fmt.Fprintf(s.out, "Transcription error: %v\n\n", err)
		return "", false
	}

	s.logger.Info("transcribed", "text", text)
	fmt.Fprintln(s.out, "Transcription:")
	fmt.Fprintln(s.out, text)
	return text, true
}

func (s *Session) transcribeFile(ctx context.Context, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: %w", domain.ErrTranscription, domain.ErrNoRecording)
	}
	return s.stt.Transcribe(ctx, path)
}
