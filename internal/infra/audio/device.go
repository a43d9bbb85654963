package audio

import "voice-analysis/internal/domain"

// InputDevice is an audio subsystem handle. Terminate releases it and must
// be called once the recorder is done with the device, even if Open failed.
type InputDevice interface {
	Name() string
	Open(format domain.AudioFormat) (InputStream, error)
	// SampleSize is the number of bytes per sample for the opened format.
	SampleSize() int
	Terminate() error
}

// InputStream delivers fixed-size chunks of interleaved int16 samples.
type InputStream interface {
	// Read blocks until buf is completely filled.
	Read(buf []int16) error
	Close() error
}
