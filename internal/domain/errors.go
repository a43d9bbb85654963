package domain

import "errors"

var (
	// ErrDevice means the audio subsystem could not be opened or read.
	ErrDevice = errors.New("audio device error")
	// ErrTranscription means the speech-to-text call failed.
	ErrTranscription = errors.New("transcription error")
	// ErrConfiguration is fatal at startup.
	ErrConfiguration = errors.New("configuration error")
	// ErrNoRecording is returned when a step needs a recording that does not exist.
	ErrNoRecording     = errors.New("no recording available")
	ErrInvalidDuration = errors.New("recording duration must be positive")
)
