package util

import (
	"path/filepath"

	"github.com/google/uuid"
)

// RandomHash returns a short random hex tag for per-request artifact
// names.
func RandomHash() string {
	return uuid.NewString()[:8]
}

// TempArtifactPath builds a unique file path for a per-request artifact
// (chart image, CSV export) under dir. The caller removes the file after
// the reply is sent.
func TempArtifactPath(dir, prefix, ext string) string {
	return filepath.Join(dir, prefix+"_"+RandomHash()+ext)
}
