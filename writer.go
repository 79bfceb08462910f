package main

import (
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	xdraw "golang.org/x/image/draw"
)

// WriteRaster writes img to path, choosing the encoder from the
// extension (.png, .jpg/.jpeg, .webp). The file appears atomically:
// encode to a .part sibling first, rename once complete.
func WriteRaster(path string, img image.Image) error {
	return writeAtomic(path, func(w io.Writer) error {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".png":
			return png.Encode(w, img)
		case ".jpg", ".jpeg":
			return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
		case ".webp":
			return nativewebp.Encode(w, img, nil)
		default:
			return fmt.Errorf("output %s: want .png, .jpg or .webp", path)
		}
	})
}

// WriteMetadata writes the JSON sidecar next to the raster.
func WriteMetadata(path string, meta any) error {
	return writeAtomic(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
}

func writeAtomic(path string, encode func(io.Writer) error) error {
	tmp := path + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		if err := copyFile(tmp, path); err != nil {
			return fmt.Errorf("rename/copy %s: %w", path, err)
		}
		_ = os.Remove(tmp)
	}
	return nil
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()
	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}

// downscale resizes a supersampled frame to the requested dimensions.
func downscale(src image.Image, w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
