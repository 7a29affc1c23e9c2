package loaders

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func solidImage(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestSaveImage_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	src := solidImage(4, 3, color.RGBA{R: 200, G: 10, B: 30, A: 255})

	if err := SaveImage(src, path); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Output missing: %v", err)
	}
	defer file.Close()

	decoded, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Output is not a valid PNG: %v", err)
	}
	if decoded.Bounds() != src.Bounds() {
		t.Errorf("Expected bounds %v, got %v", src.Bounds(), decoded.Bounds())
	}
}

func TestSaveImage_WebP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.webp")
	src := solidImage(8, 8, color.RGBA{R: 0, G: 128, B: 255, A: 255})

	if err := SaveImage(src, path); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Output missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected a non-empty WebP file")
	}
}

func TestSaveImage_UnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bmp")
	if err := SaveImage(solidImage(2, 2, color.RGBA{A: 255}), path); err == nil {
		t.Error("Expected an error for an unsupported format")
	}
}

func TestDownscale(t *testing.T) {
	src := solidImage(8, 6, color.RGBA{R: 50, G: 100, B: 150, A: 255})

	t.Run("halves dimensions at factor 2", func(t *testing.T) {
		dst := Downscale(src, 2)
		if dst.Bounds().Dx() != 4 || dst.Bounds().Dy() != 3 {
			t.Errorf("Expected 4x3, got %v", dst.Bounds())
		}
	})

	t.Run("factor 1 is a no-op", func(t *testing.T) {
		if dst := Downscale(src, 1); dst != image.Image(src) {
			t.Error("Expected the original image back")
		}
	})
}
