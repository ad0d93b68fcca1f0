package handlers

import (
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/apperrors"
	"storefront/internal/images"
)

// Multipart fields that carry image files. Both spellings are accepted.
var imageFields = []string{"images", "images[]"}

// readUploads collects the image files of a multipart request in the order
// the client sent them. Non-multipart requests carry no files.
func readUploads(c *fiber.Ctx, maxFileBytes int64) ([]images.Upload, error) {
	if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		return nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ValidationFailed, err, "Invalid multipart form")
	}

	var count int
	for _, field := range imageFields {
		count += len(form.File[field])
	}
	if err := images.CheckCount(count); err != nil {
		return nil, err
	}

	uploads := make([]images.Upload, 0, count)
	for _, field := range imageFields {
		for _, fh := range form.File[field] {
			if maxFileBytes > 0 && fh.Size > maxFileBytes {
				return nil, apperrors.New(apperrors.ValidationFailed,
					fmt.Sprintf("image %q exceeds the %d byte limit", fh.Filename, maxFileBytes))
			}

			f, err := fh.Open()
			if err != nil {
				return nil, apperrors.Wrap(apperrors.ValidationFailed, err, "Could not read uploaded image")
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return nil, apperrors.Wrap(apperrors.ValidationFailed, err, "Could not read uploaded image")
			}

			uploads = append(uploads, images.Upload{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get(fiber.HeaderContentType),
				Data:        data,
			})
		}
	}
	return uploads, nil
}
