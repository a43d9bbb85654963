package audio

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"voice-analysis/internal/domain"
)

// Recorder captures a fixed-length clip from an InputDevice and writes it
// to a single WAV file that is overwritten on every recording.
type Recorder struct {
	device     InputDevice
	format     domain.AudioFormat
	outputPath string
	logger     *slog.Logger
}

func NewRecorder(device InputDevice, format domain.AudioFormat, outputPath string, logger *slog.Logger) *Recorder {
	return &Recorder{
		device:     device,
		format:     format,
		outputPath: outputPath,
		logger:     logger,
	}
}

// ChunkCount is the number of device reads needed to cover seconds of audio.
func ChunkCount(format domain.AudioFormat, seconds float64) int {
	return int(math.Ceil(seconds * float64(format.SampleRate) / float64(format.FramesPerBuffer)))
}

func (r *Recorder) Record(ctx context.Context, seconds float64) (string, error) {
	if err := r.checkDuration(seconds); err != nil {
		return "", err
	}

	samples, err := r.capture(ctx, seconds)
	if err != nil {
		r.logger.Error("capturing audio", "device", r.device.Name(), "error", err)
		return "", err
	}

	bitDepth := r.device.SampleSize() * 8
	if err := writeWAVFile(r.outputPath, samples, r.format.SampleRate, bitDepth, r.format.Channels); err != nil {
		return "", fmt.Errorf("writing %s: %w", r.outputPath, err)
	}

	r.logger.Info("recording saved",
		"path", r.outputPath,
		"frames", len(samples)/r.format.Channels,
	)
	return r.outputPath, nil
}

// maxBufferedSamples caps the in-memory buffer regardless of format.
const maxBufferedSamples = 1 << 31

func (r *Recorder) checkDuration(seconds float64) error {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return fmt.Errorf("%w: got %v", domain.ErrInvalidDuration, seconds)
	}
	if seconds > domain.MaxRecordSeconds {
		return fmt.Errorf("%w: %v exceeds %d seconds", domain.ErrInvalidDuration, seconds, domain.MaxRecordSeconds)
	}
	total := math.Ceil(seconds*float64(r.format.SampleRate)/float64(r.format.FramesPerBuffer)) * float64(r.format.ChunkSamples())
	if total > maxBufferedSamples {
		return fmt.Errorf("%w: %v seconds needs %.0f samples", domain.ErrInvalidDuration, seconds, total)
	}
	return nil
}

// capture owns the device handle for the duration of one recording and
// always terminates it before returning.
func (r *Recorder) capture(ctx context.Context, seconds float64) (samples []int16, err error) {
	defer func() {
		if termErr := r.device.Terminate(); termErr != nil {
			r.logger.Warn("terminating audio device", "error", termErr)
		}
	}()

	stream, err := r.device.Open(r.format)
	if err != nil {
		return nil, fmt.Errorf("%w: opening input stream: %w", domain.ErrDevice, err)
	}

	chunks := ChunkCount(r.format, seconds)
	chunkSize := r.format.ChunkSamples()
	samples = make([]int16, 0, chunks*chunkSize)
	buf := make([]int16, chunkSize)

	r.logger.Info("recording started",
		"device", r.device.Name(),
		"seconds", seconds,
		"chunks", chunks,
	)

	for i := 0; i < chunks; i++ {
		if err := ctx.Err(); err != nil {
			stream.Close()
			return nil, fmt.Errorf("%w: recording interrupted: %w", domain.ErrDevice, err)
		}
		if err := stream.Read(buf); err != nil {
			stream.Close()
			return nil, fmt.Errorf("%w: reading chunk %d: %w", domain.ErrDevice, i, err)
		}
		samples = append(samples, buf...)
	}

	if err := stream.Close(); err != nil {
		r.logger.Warn("closing input stream", "error", err)
	}

	r.logger.Info("recording stopped", "samples", len(samples))
	return samples, nil
}
