package board

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	nchess "github.com/corentings/chess/v2"
)

// SnapshotWriter saves one PNG per ply into a directory, named by ply number.
type SnapshotWriter struct {
	dir      string
	renderer Renderer
}

// NewSnapshotWriter returns nil when dir is empty: snapshots are opt-in.
func NewSnapshotWriter(dir string, renderer Renderer) (*SnapshotWriter, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, nil
	}
	if renderer == nil {
		renderer = NewRenderer()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &SnapshotWriter{dir: dir, renderer: renderer}, nil
}

// Save renders the position and writes it as ply-NNN.png.
func (w *SnapshotWriter) Save(ctx context.Context, ply int, b *nchess.Board, opts RenderOptions) (string, error) {
	if w == nil {
		return "", nil
	}
	data, err := w.renderer.RenderPNG(ctx, b, opts)
	if err != nil {
		return "", err
	}
	path := filepath.Join(w.dir, fmt.Sprintf("ply-%03d.png", ply))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}
