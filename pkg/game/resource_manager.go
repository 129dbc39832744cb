package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"log"
	"os"

	"github.com/decker502/lightning/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

// ResourceManager is responsible for loading and caching the bolt textures.
// Images are looked up on disk first and then in the embedded data FS,
// so a texture configured in data/lightning.yaml works both from a source
// checkout and from a single binary.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. The cache is a plain Go map and is
// only touched from the game loop goroutine.
//
// Usage:
//
//	rm := NewResourceManager()
//	middle := rm.LoadOrDefault(cfg.Textures.Middle, render.MiddleChunkImage(1, 8))
type ResourceManager struct {
	imageCache map[string]*ebiten.Image // Cache for loaded images: path -> Image
}

// NewResourceManager creates a ResourceManager with an empty cache.
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		imageCache: make(map[string]*ebiten.Image),
	}
}

// LoadImage loads an image file from the specified path and caches it for future use.
// If the image has already been loaded, it returns the cached version.
//
// Lookup order:
//   - the local file system (path relative to the working directory)
//   - the embedded data FS (path must start with "data/")
//
// Returns an error if the image cannot be found in either place or cannot be decoded.
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	// Check if the image is already cached
	if cachedImage, exists := rm.imageCache[path]; exists {
		return cachedImage, nil
	}

	img, err := decodeImage(path)
	if err != nil {
		return nil, err
	}

	// Convert to Ebitengine image
	ebitenImg := ebiten.NewImageFromImage(img)

	// Store in cache
	rm.imageCache[path] = ebitenImg

	return ebitenImg, nil
}

// GetImage retrieves a previously loaded image from the cache.
// If the image has not been loaded yet, it returns nil.
func (rm *ResourceManager) GetImage(path string) *ebiten.Image {
	return rm.imageCache[path]
}

// LoadOrDefault loads the image at path, falling back to a generated image.
//
// An empty path selects the fallback directly. A path that fails to load is
// logged and also falls back, so a missing texture never stops the demo.
// The fallback is cached under path (when non-empty) so later GetImage calls
// return the same image.
func (rm *ResourceManager) LoadOrDefault(path string, fallback *image.RGBA) *ebiten.Image {
	if path != "" {
		img, err := rm.LoadImage(path)
		if err == nil {
			return img
		}
		log.Printf("[ResourceManager] Texture %s unavailable, using generated texture: %v", path, err)
	}

	img := ebiten.NewImageFromImage(fallback)
	if path != "" {
		rm.imageCache[path] = img
	}
	return img
}

// CachedCount returns the number of cached images.
func (rm *ResourceManager) CachedCount() int {
	return len(rm.imageCache)
}

// decodeImage reads and decodes an image from disk or the embedded FS.
func decodeImage(path string) (image.Image, error) {
	var r io.Reader

	file, err := os.Open(path)
	if err == nil {
		defer file.Close()
		r = file
	} else {
		data, embErr := embedded.ReadFile(path)
		if embErr != nil {
			return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
		}
		r = bytes.NewReader(data)
	}

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}
