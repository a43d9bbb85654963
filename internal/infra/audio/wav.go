package audio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// writeWAVFile encodes samples as PCM WAV and atomically replaces path, so
// a failed write never leaves a truncated recording behind.
func writeWAVFile(path string, samples []int16, sampleRate, bitDepth, channels int) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".recording-*.wav")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	enc := wav.NewEncoder(tmp, sampleRate, bitDepth, channels, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, len(samples)),
		SourceBitDepth: bitDepth,
	}
	for i, s := range samples {
		buf.Data[i] = int(s)
	}

	if err := enc.Write(buf); err != nil {
		enc.Close()
		tmp.Close()
		removeQuietly(tmpPath)
		return fmt.Errorf("encoding wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		tmp.Close()
		removeQuietly(tmpPath)
		return fmt.Errorf("finalizing wav: %w", err)
	}
	if err := tmp.Close(); err != nil {
		removeQuietly(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, 0644); err != nil {
		removeQuietly(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		removeQuietly(tmpPath)
		return fmt.Errorf("replacing recording: %w", err)
	}
	return nil
}

func removeQuietly(path string) {
	_ = os.Remove(path)
}
