package imaging

import (
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// standardExtensions are processable without the compression pass.
var standardExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// extendedExtensions additionally become processable when compression is
// enabled, because the pass converts them to JPEG first.
var extendedExtensions = map[string]struct{}{
	".bmp":  {},
	".gif":  {},
	".tiff": {},
}

// IsSupported reports whether a filename has a processable image extension.
func IsSupported(name string, compressEnabled bool) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := standardExtensions[ext]; ok {
		return true
	}
	if !compressEnabled {
		return false
	}
	_, ok := extendedExtensions[ext]
	return ok
}

// IsImage reports whether the filename carries any known image extension,
// supported for processing or not.
func IsImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := standardExtensions[ext]; ok {
		return true
	}
	_, ok := extendedExtensions[ext]
	return ok
}

// Portrait reports whether the image at path is taller than it is wide.
// Posters are portrait; fanart/background art is landscape. Only the header
// is decoded.
func Portrait(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return false, fmt.Errorf("decode image header: %w", err)
	}
	return cfg.Height > cfg.Width, nil
}

// Recompress re-encodes the image at path as a JPEG with the given quality,
// replacing the original file. Non-JPEG sources are converted and the
// original extension's file removed; the new path is returned.
func Recompress(path string, quality int) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	img, _, err := image.Decode(file)
	closeErr := file.Close()
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	if closeErr != nil {
		return "", closeErr
	}

	ext := strings.ToLower(filepath.Ext(path))
	target := path
	if ext != ".jpg" && ext != ".jpeg" {
		target = strings.TrimSuffix(path, filepath.Ext(path)) + ".jpg"
	}

	out, err := os.Create(target)
	if err != nil {
		return "", err
	}
	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: quality}); err != nil {
		out.Close()
		return "", fmt.Errorf("encode jpeg: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", err
	}

	if target != path {
		if err := os.Remove(path); err != nil {
			return "", err
		}
	}
	return target, nil
}
