package audio

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"

	"voice-analysis/internal/domain"
)

// FileDevice replays the PCM frames of an existing WAV file as if they came
// from a microphone. Once the file is exhausted it yields silence.
type FileDevice struct {
	path string
}

func NewFileDevice(path string) *FileDevice {
	return &FileDevice{path: path}
}

func (f *FileDevice) Name() string {
	return "file"
}

func (f *FileDevice) SampleSize() int {
	return 2
}

func (f *FileDevice) Open(format domain.AudioFormat) (InputStream, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("opening audio file: %w", err)
	}
	defer file.Close()

	dec := wav.NewDecoder(file)
	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", f.path, err)
	}

	if int(dec.NumChans) != format.Channels ||
		int(dec.SampleRate) != format.SampleRate ||
		int(dec.BitDepth) != format.BitDepth {
		return nil, fmt.Errorf("unsupported format in %s: %dch %dHz %d-bit, want %dch %dHz %d-bit",
			f.path,
			dec.NumChans, dec.SampleRate, dec.BitDepth,
			format.Channels, format.SampleRate, format.BitDepth,
		)
	}

	return &fileStream{data: pcm.Data}, nil
}

func (f *FileDevice) Terminate() error {
	return nil
}

type fileStream struct {
	data []int
	pos  int
}

func (s *fileStream) Read(buf []int16) error {
	n := 0
	for ; n < len(buf) && s.pos < len(s.data); n++ {
		buf[n] = int16(s.data[s.pos])
		s.pos++
	}
	clear(buf[n:])
	return nil
}

func (s *fileStream) Close() error {
	return nil
}
