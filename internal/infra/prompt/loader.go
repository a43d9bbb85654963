package prompt

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"voice-analysis/internal/domain"
)

// Load reads the whole prompt file. A missing file is a configuration
// error, not a filesystem one: the program cannot start without a prompt.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: invalid prompt file name %q", domain.ErrConfiguration, path)
		}
		return "", fmt.Errorf("reading prompt file: %w", err)
	}
	return string(data), nil
}
