package baseline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cocosip/go-jpeg-baseline/raster"
)

// WriteFile encodes img and writes it to path. The stream is encoded in
// memory first, so an encode error leaves path untouched.
func WriteFile(path string, img raster.Image, opts Options) error {
	data, err := EncodeBytes(img, opts)
	if err != nil {
		return err
	}
	return SaveBytes(path, data)
}

// SaveBytes writes data to a temporary file in the directory of path and
// renames it over path once complete. On failure the temporary file is
// removed and path is left as it was.
func SaveBytes(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
