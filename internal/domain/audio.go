package domain

// AudioFormat describes the PCM layout requested from an input device.
type AudioFormat struct {
	SampleRate      int
	Channels        int
	BitDepth        int
	FramesPerBuffer int
}

func DefaultAudioFormat() AudioFormat {
	return AudioFormat{
		SampleRate:      44100,
		Channels:        1,
		BitDepth:        16,
		FramesPerBuffer: 1024,
	}
}

// ChunkSamples is the number of interleaved samples in one device read.
func (f AudioFormat) ChunkSamples() int {
	return f.FramesPerBuffer * f.Channels
}

// MaxRecordSeconds bounds a single recording so its buffer stays allocatable.
const MaxRecordSeconds = 3600
