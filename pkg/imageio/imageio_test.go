package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

// decodeFile reads back a saved image, detecting the format from its header
func decodeFile(t *testing.T, path string) (image.Image, string) {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", path, err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		t.Fatalf("Failed to decode %s: %v", path, err)
	}
	return img, format
}

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})
	return img
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
		wantErr  bool
	}{
		{"out.png", "png", false},
		{"OUT.PNG", "png", false},
		{"render.jpg", "jpeg", false},
		{"render.jpeg", "jpeg", false},
		{"dir/render.bmp", "bmp", false},
		{"render.tif", "tiff", false},
		{"render.tiff", "tiff", false},
		{"render.gif", "", true},
		{"render", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestSave_LosslessFormatsKeepPixels(t *testing.T) {
	src := testImage()

	for _, name := range []string{"out.png", "out.bmp", "out.tiff"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := Save(path, src); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			img, _ := decodeFile(t, path)
			if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
				t.Fatalf("Expected 2x2 image, got %v", img.Bounds())
			}
			for y := 0; y < 2; y++ {
				for x := 0; x < 2; x++ {
					want := src.RGBAAt(x, y)
					r, g, b, _ := img.At(x, y).RGBA()
					if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
						t.Errorf("Pixel (%d,%d): expected %v, got (%d,%d,%d)", x, y, want, r>>8, g>>8, b>>8)
					}
				}
			}
		})
	}
}

func TestSave_JPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jpg")
	if err := Save(path, testImage()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, format := decodeFile(t, path); format != "jpeg" {
		t.Errorf("Expected jpeg, got %q", format)
	}
}

func TestSave_Errors(t *testing.T) {
	if err := Save(filepath.Join(t.TempDir(), "out.gif"), testImage()); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
	if err := Save(filepath.Join(t.TempDir(), "missing", "out.png"), testImage()); err == nil {
		t.Error("Expected an error writing into a missing directory")
	}
}

func TestEncode_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testImage(), "webp"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}
