package handlers

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/nfnt/resize"
)

// ThumbnailHeight is the height card images are scaled to.
const ThumbnailHeight = 500

var imageClient = func() *http.Client {
	c := cleanhttp.DefaultPooledClient()
	c.Timeout = 15 * time.Second
	return c
}()

// FetchImageHandler fetches an image from a URL, resizes it, and returns it.
func FetchImageHandler(w http.ResponseWriter, r *http.Request) {
	// Get the URL parameter
	imageURL := r.URL.Query().Get("url")
	if imageURL == "" {
		http.Error(w, "URL parameter is required", http.StatusBadRequest)
		return
	}
	if !strings.HasPrefix(imageURL, "http://") && !strings.HasPrefix(imageURL, "https://") {
		http.Error(w, "URL must be http or https", http.StatusBadRequest)
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, imageURL, nil)
	if err != nil {
		http.Error(w, "Invalid image URL", http.StatusBadRequest)
		return
	}

	// Fetch the image from the URL
	resp, err := imageClient.Do(req)
	if err != nil {
		http.Error(w, "Failed to fetch image", http.StatusBadGateway)
		logger(r.Context()).WithError(err).WithField("url", imageURL).Warn("fetching image")
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		http.Error(w, fmt.Sprintf("Failed to fetch image: %s", resp.Status), http.StatusBadGateway)
		return
	}

	// Decode the image
	img, format, err := image.Decode(resp.Body)
	if err != nil {
		http.Error(w, "Failed to decode image", http.StatusUnprocessableEntity)
		return
	}

	resized := Thumbnail(img)

	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		w.Header().Set("Content-Type", "image/jpeg")
		err = jpeg.Encode(w, resized, nil)
	case "png":
		w.Header().Set("Content-Type", "image/png")
		err = png.Encode(w, resized)
	default:
		http.Error(w, "Unsupported image format", http.StatusUnsupportedMediaType)
		return
	}

	if err != nil {
		logger(r.Context()).WithError(err).Warn("encoding image")
	}
}

// Thumbnail scales img to ThumbnailHeight keeping its aspect ratio.
func Thumbnail(img image.Image) image.Image {
	bounds := img.Bounds()
	if bounds.Dy() == 0 {
		return img
	}
	aspectRatio := float64(bounds.Dx()) / float64(bounds.Dy())
	newWidth := uint(float64(ThumbnailHeight) * aspectRatio)

	return resize.Resize(newWidth, ThumbnailHeight, img, resize.Lanczos3)
}
