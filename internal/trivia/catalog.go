package trivia

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

//go:embed facts.yaml
var defaultFiles embed.FS

type catalogFile struct {
	Facts []string `yaml:"facts"`
}

// Load returns the embedded trivia deck, with overridePath (if non-empty)
// replacing it entirely. Blank lines are dropped; an empty deck is an error
// because the rotator indexes modulo its length.
func Load(overridePath string) ([]string, error) {
	raw, err := fs.ReadFile(defaultFiles, "facts.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded trivia: %w", err)
	}
	if strings.TrimSpace(overridePath) != "" {
		raw, err = os.ReadFile(overridePath)
		if err != nil {
			return nil, fmt.Errorf("read trivia override: %w", err)
		}
	}

	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse trivia yaml: %w", err)
	}

	lines := make([]string, 0, len(file.Facts))
	for _, f := range file.Facts {
		if s := strings.TrimSpace(f); s != "" {
			lines = append(lines, s)
		}
	}
	if len(lines) == 0 {
		return nil, errors.New("trivia deck is empty")
	}
	return lines, nil
}
