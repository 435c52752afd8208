package blog

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	ogMaxWidth   = 1200
	jpegQuality  = 80
	imagesSubdir = "images"
)

var errBadImageName = errors.New("invalid image name")

// processImage decodes an image from src, downscales it to maxWidth when it
// is wider, and encodes it as JPEG.
func processImage(src io.Reader, maxWidth int) ([]byte, image.Point, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, image.Point{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxWidth {
		newH := h * maxWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w, h = maxWidth, newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, image.Point{}, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), image.Pt(w, h), nil
}

// ogImageCache memoizes social images encoded from files in dir.
type ogImageCache struct {
	dir     string
	mu      sync.Mutex
	entries map[string][]byte
}

func newOGImageCache(dir string) *ogImageCache {
	return &ogImageCache{dir: dir, entries: make(map[string][]byte)}
}

// get returns the encoded image for name and whether it came from the memo.
// Missing files return an error wrapping fs.ErrNotExist.
func (c *ogImageCache) get(name string) ([]byte, bool, error) {
	if name == "" || filepath.Base(name) != name || strings.HasPrefix(name, ".") {
		return nil, false, errBadImageName
	}

	c.mu.Lock()
	data, ok := c.entries[name]
	c.mu.Unlock()
	if ok {
		return data, true, nil
	}

	f, err := os.Open(filepath.Join(c.dir, name))
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	data, _, err = processImage(f, ogMaxWidth)
	if err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	c.entries[name] = data
	c.mu.Unlock()
	return data, false, nil
}

func (a *App) handleOGImage(c echo.Context) error {
	data, cached, err := a.images.get(c.Param("file"))
	switch {
	case errors.Is(err, errBadImageName), errors.Is(err, fs.ErrNotExist):
		return echo.ErrNotFound
	case err != nil:
		a.Log.Warn("social image failed", zap.String("file", c.Param("file")), zap.Error(err))
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "unsupported image")
	}
	source := "decode"
	if cached {
		source = "cache"
	}
	a.metrics.ogImages.WithLabelValues(source).Inc()
	return c.Blob(http.StatusOK, "image/jpeg", data)
}
