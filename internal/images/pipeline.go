// Package images implements the upload pipeline for product and review
// pictures: raster uploads are resized to a fixed width and re-encoded as
// JPEG before being embedded in their parent record, and stored images are
// turned back into data URIs on read.
package images

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"math"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"storefront/internal/apperrors"
	"storefront/internal/models"
)

const (
	SVGContentType  = "image/svg+xml"
	JPEGContentType = "image/jpeg"

	DefaultWidth   = 500
	DefaultQuality = 70

	// MaxUploads is the number of files a single write request may carry.
	MaxUploads = 5
)

// Upload is a file as received from the client. ContentType is whatever
// the client declared; it is not checked against the bytes.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Pipeline transcodes raster uploads to JPEG at a fixed width.
type Pipeline struct {
	Width   int
	Quality int
}

// New returns a pipeline with the default width and quality.
func New() *Pipeline {
	return &Pipeline{Width: DefaultWidth, Quality: DefaultQuality}
}

// CheckCount rejects batches larger than MaxUploads.
func CheckCount(n int) error {
	if n > MaxUploads {
		return apperrors.New(apperrors.TooManyFiles, fmt.Sprintf("at most %d images may be uploaded, got %d", MaxUploads, n))
	}
	return nil
}

// Ingest turns an upload into the form stored in the database. SVG payloads
// are kept as-is. Everything else is decoded, scaled to p.Width (narrower
// sources are enlarged), flattened onto white and re-encoded as JPEG; the
// stored content type is then always image/jpeg.
func (p *Pipeline) Ingest(ctx context.Context, data []byte, contentType string) (models.Image, error) {
	if contentType == SVGContentType {
		return models.Image{Data: data, ContentType: SVGContentType}, nil
	}
	if err := ctx.Err(); err != nil {
		return models.Image{}, apperrors.Wrap(apperrors.Internal, err, "image processing cancelled")
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return models.Image{}, apperrors.Wrap(apperrors.UnprocessableImage, err, "cannot decode image")
	}
	if src.Bounds().Dx() == 0 || src.Bounds().Dy() == 0 {
		return models.Image{}, apperrors.New(apperrors.UnprocessableImage, "image has no pixels")
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, p.scale(src), &jpeg.Options{Quality: p.Quality}); err != nil {
		return models.Image{}, apperrors.Wrap(apperrors.UnprocessableImage, err, "cannot encode image")
	}
	return models.Image{Data: buf.Bytes(), ContentType: JPEGContentType}, nil
}

// IngestAll runs Ingest over a batch concurrently. The result keeps the
// order of uploads; the first failure cancels the rest.
func (p *Pipeline) IngestAll(ctx context.Context, uploads []Upload) ([]models.Image, error) {
	if err := CheckCount(len(uploads)); err != nil {
		return nil, err
	}

	result := make([]models.Image, len(uploads))
	g, gctx := errgroup.WithContext(ctx)
	for i, u := range uploads {
		g.Go(func() error {
			img, err := p.Ingest(gctx, u.Data, u.ContentType)
			if err != nil {
				return fmt.Errorf("image %q: %w", u.Filename, err)
			}
			result[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func (p *Pipeline) scale(src image.Image) *image.RGBA {
	b := src.Bounds()
	h := int(math.Round(float64(b.Dy()) * float64(p.Width) / float64(b.Dx())))
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, p.Width, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// Encode renders a stored image as a data URI.
func Encode(img models.Image) string {
	return "data:" + img.ContentType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

// EncodeAll maps Encode over imgs, keeping order and length.
func EncodeAll(imgs []models.Image) []models.EncodedImage {
	out := make([]models.EncodedImage, len(imgs))
	for i, img := range imgs {
		out[i] = models.EncodedImage{Data: Encode(img), ContentType: img.ContentType}
	}
	return out
}
