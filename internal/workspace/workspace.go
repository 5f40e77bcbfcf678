// Package workspace provides the per-request scratch directory that holds
// downloaded inputs and the transcoded output. A Workspace is exclusively
// owned by one merge request and is removed, with everything in it, when the
// request ends.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	mainVideoName = "main.mp4"
	ctaVideoName  = "cta.mp4"
	audioName     = "music.mp3"
	outputName    = "out.mp4"
)

// Workspace is a scoped temporary directory for a single merge request.
type Workspace struct {
	dir string
}

// New creates a fresh workspace directory under baseDir.
// If baseDir is empty, the system temp directory is used.
// The base directory is created if it doesn't exist.
func New(baseDir string) (*Workspace, error) {
	if baseDir == "" {
		baseDir = filepath.Join(os.TempDir(), "reelmerge")
	}

	if err := os.MkdirAll(baseDir, 0750); err != nil {
		return nil, fmt.Errorf("create workspace base: %w", err)
	}

	dir, err := os.MkdirTemp(baseDir, "merge-*")
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}

	return &Workspace{dir: dir}, nil
}

// Dir returns the workspace directory path.
func (w *Workspace) Dir() string {
	return w.dir
}

// MainVideo returns the destination path for the main (or only) video input.
func (w *Workspace) MainVideo() string {
	return filepath.Join(w.dir, mainVideoName)
}

// CTAVideo returns the destination path for the second video input.
func (w *Workspace) CTAVideo() string {
	return filepath.Join(w.dir, ctaVideoName)
}

// Audio returns the destination path for the music input.
func (w *Workspace) Audio() string {
	return filepath.Join(w.dir, audioName)
}

// Output returns the path the transcoded result is written to.
func (w *Workspace) Output() string {
	return filepath.Join(w.dir, outputName)
}

// Close removes the workspace directory and everything in it.
// It is safe to call more than once.
func (w *Workspace) Close() error {
	if err := os.RemoveAll(w.dir); err != nil {
		return fmt.Errorf("remove workspace: %w", err)
	}
	return nil
}
