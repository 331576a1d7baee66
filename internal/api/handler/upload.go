package handler

import (
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/quickplate/food-ordering-api/internal/core/ports"
)

const maxImageSize = 8 << 20 // 8 MiB

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// formImage extracts a required image file from the multipart form. The
// returned close func releases the underlying file and must be deferred by
// the caller; it is nil only on error.
func formImage(c echo.Context, field string) (*ports.ImageUpload, func(), error) {
	img, closeFn, err := optionalFormImage(c, field)
	if err != nil {
		return nil, nil, err
	}
	if img == nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "image is required")
	}
	return img, closeFn, nil
}

// optionalFormImage is like formImage but returns (nil, nil, nil) when the
// field is absent.
func optionalFormImage(c echo.Context, field string) (*ports.ImageUpload, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil, nil
		}
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	if fh.Size > maxImageSize {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "image too large")
	}
	if ext := filepath.Ext(fh.Filename); !allowedImageExts[ext] {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "unsupported image type")
	}

	file, err := fh.Open()
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	return &ports.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        file,
	}, func() { _ = file.Close() }, nil
}
