package render

import (
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/zachmann/go-utils/fileutils"
)

// findAsset looks up an optional branding asset by file name. The second
// return value reports whether the asset is available; an absent or
// unreadable asset is not an error.
func (r Renderer) findAsset(name string) ([]byte, bool) {
	if r.AssetsDir == "" {
		return nil, false
	}
	path := filepath.Join(r.AssetsDir, name)
	if !fileutils.FileExists(path) {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.WithError(err).WithField("asset", name).Warn("skipping unreadable asset")
		return nil, false
	}
	return data, true
}
