package fileutil

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExtractZip unpacks the archive at src into destDir. Entries escaping the
// destination (zip-slip) are rejected; directory entries are skipped because
// a later flattening pass hoists nested files anyway.
func ExtractZip(src, destDir string) error {
	reader, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer reader.Close()

	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		target := filepath.Join(destDir, filepath.FromSlash(entry.Name))
		rel, err := filepath.Rel(destDir, target)
		if err != nil || strings.HasPrefix(rel, "..") {
			return fmt.Errorf("archive entry %q escapes destination", entry.Name)
		}
		if err := extractEntry(entry, target); err != nil {
			return fmt.Errorf("extract %q: %w", entry.Name, err)
		}
	}
	return nil
}

func extractEntry(entry *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	in, err := entry.Open()
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// FlattenInto moves files matching the keep filter from subdirectories of
// root up into root itself, then removes each subdirectory tree. Returns the
// names of the flattened subdirectories.
func FlattenInto(root string, keep func(name string) bool) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var flattened []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		subdir := filepath.Join(root, entry.Name())
		walkErr := filepath.WalkDir(subdir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !keep(d.Name()) {
				return nil
			}
			return MoveFile(path, filepath.Join(root, d.Name()))
		})
		if walkErr != nil {
			return flattened, walkErr
		}
		if err := os.RemoveAll(subdir); err != nil {
			return flattened, err
		}
		flattened = append(flattened, entry.Name())
	}
	return flattened, nil
}
