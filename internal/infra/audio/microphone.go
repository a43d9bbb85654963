//go:build portaudio
// +build portaudio

package audio

import (
	"fmt"
	"log/slog"

	"github.com/gordonklaus/portaudio"

	"voice-analysis/internal/domain"
)

// MicrophoneDevice captures from the default input device through PortAudio.
type MicrophoneDevice struct {
	logger      *slog.Logger
	initialized bool
}

func NewMicrophoneDevice(logger *slog.Logger) *MicrophoneDevice {
	return &MicrophoneDevice{logger: logger}
}

func (m *MicrophoneDevice) Name() string {
	return "microphone"
}

// SampleSize reports bytes per sample for the paInt16 format.
func (m *MicrophoneDevice) SampleSize() int {
	return 2
}

func (m *MicrophoneDevice) Open(format domain.AudioFormat) (InputStream, error) {
	if format.BitDepth != 16 {
		return nil, fmt.Errorf("unsupported bit depth %d: only 16-bit capture is available", format.BitDepth)
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initializing portaudio: %w", err)
	}
	m.initialized = true

	buffer := make([]int16, format.ChunkSamples())

	stream, err := portaudio.OpenDefaultStream(
		format.Channels,
		0,
		float64(format.SampleRate),
		format.FramesPerBuffer,
		buffer,
	)
	if err != nil {
		return nil, fmt.Errorf("opening stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("starting stream: %w", err)
	}

	m.logger.Debug("microphone opened",
		"sampleRate", format.SampleRate,
		"channels", format.Channels,
		"framesPerBuffer", format.FramesPerBuffer,
	)

	return &microphoneStream{stream: stream, buffer: buffer}, nil
}

func (m *MicrophoneDevice) Terminate() error {
	if !m.initialized {
		return nil
	}
	m.initialized = false
	return portaudio.Terminate()
}

type microphoneStream struct {
	stream *portaudio.Stream
	buffer []int16
}

func (s *microphoneStream) Read(buf []int16) error {
	if len(buf) != len(s.buffer) {
		return fmt.Errorf("chunk size mismatch: got %d, stream reads %d", len(buf), len(s.buffer))
	}
	if err := s.stream.Read(); err != nil {
		return fmt.Errorf("reading from stream: %w", err)
	}
	copy(buf, s.buffer)
	return nil
}

func (s *microphoneStream) Close() error {
	if err := s.stream.Stop(); err != nil {
		s.stream.Close()
		return fmt.Errorf("stopping stream: %w", err)
	}
	return s.stream.Close()
}
