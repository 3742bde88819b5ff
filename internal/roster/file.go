package roster

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sam-maryland/madness-mcp-server/internal/sim"
)

// FileSource reads a JSON roster from disk
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return s.path
}

func (s *FileSource) Entrants(ctx context.Context) ([]sim.Entrant, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &RosterError{
				Type:    "not_found",
				Message: fmt.Sprintf("roster file %s does not exist", s.path),
				Source:  s.path,
			}
		}
		return nil, fmt.Errorf("failed to read roster file %s: %w", s.path, err)
	}

	entrants, err := decodeEntrants(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster file %s: %w", s.path, err)
	}
	return entrants, nil
}
