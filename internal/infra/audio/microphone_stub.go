//go:build !portaudio
// +build !portaudio

package audio

import (
	"fmt"
	"log/slog"

	"voice-analysis/internal/domain"
)

// MicrophoneDevice stub when portaudio is not available
type MicrophoneDevice struct {
	logger *slog.Logger
}

func NewMicrophoneDevice(logger *slog.Logger) *MicrophoneDevice {
	return &MicrophoneDevice{logger: logger}
}

func (m *MicrophoneDevice) Name() string {
	return "microphone"
}

func (m *MicrophoneDevice) SampleSize() int {
	return 2
}

func (m *MicrophoneDevice) Open(_ domain.AudioFormat) (InputStream, error) {
	return nil, fmt.Errorf("microphone not available: rebuild with -tags portaudio")
}

func (m *MicrophoneDevice) Terminate() error {
	return nil
}
