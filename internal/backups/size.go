package backups

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"
)

// FolderSize recursively sums file sizes under dir/folderName. Errors
// reading individual files are logged and skipped, not fatal; only a
// failure to walk the root at all is returned.
func (s *Store) FolderSize(dir, folderName string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	root := filepath.Join(dir, folderName)
	var total int64
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			s.log.Error("size walk: skipping entry", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			s.log.Error("size walk: skipping file", zap.String("path", path), zap.Error(err))
			return nil
		}
		total += info.Size()
		return nil
	})
	if walkErr != nil {
		return 0, fmt.Errorf("walking %s: %w", root, walkErr)
	}
	return total, nil
}

// HumanReadableSize renders a byte count with two decimals, dividing by
// 1024 until below threshold. Anything past GiB is reported in TiB.
func HumanReadableSize(size int64) string {
	v := float64(size)
	for _, unit := range []string{"B", "KiB", "MiB", "GiB"} {
		if v < 1024 {
			return fmt.Sprintf("%.2f %s", v, unit)
		}
		v /= 1024
	}
	return fmt.Sprintf("%.2f TiB", v)
}
