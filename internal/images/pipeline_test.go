package images_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"regexp"
	"strings"
	"testing"

	"storefront/internal/apperrors"
	"storefront/internal/images"
	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dataURIPattern = regexp.MustCompile(`^data:[^;]+;base64,[A-Za-z0-9+/=]+$`)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil))
	return buf.Bytes()
}

func decodedSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	return cfg.Width, cfg.Height
}

func TestIngest_ResizesWideRasterToFixedWidth(t *testing.T) {
	p := images.New()

	img, err := p.Ingest(context.Background(), pngBytes(t, 800, 400), "image/png")
	require.NoError(t, err)

	assert.Equal(t, images.JPEGContentType, img.ContentType)
	w, h := decodedSize(t, img.Data)
	assert.Equal(t, 500, w)
	assert.Equal(t, 250, h)
}

func TestIngest_UpscalesNarrowRaster(t *testing.T) {
	p := images.New()

	img, err := p.Ingest(context.Background(), jpegBytes(t, 100, 40), "image/jpeg")
	require.NoError(t, err)

	w, h := decodedSize(t, img.Data)
	assert.Equal(t, 500, w)
	assert.Equal(t, 200, h)
}

func TestIngest_KeepsSVGUnchanged(t *testing.T) {
	p := images.New()
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"/>`)

	img, err := p.Ingest(context.Background(), svg, "image/svg+xml")
	require.NoError(t, err)

	assert.Equal(t, svg, img.Data)
	assert.Equal(t, "image/svg+xml", img.ContentType)
}

func TestIngest_RejectsUndecodableBytes(t *testing.T) {
	p := images.New()

	_, err := p.Ingest(context.Background(), []byte("definitely not an image"), "image/png")
	assert.True(t, apperrors.Is(err, apperrors.UnprocessableImage))
}

func TestIngest_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := images.New().Ingest(ctx, pngBytes(t, 10, 10), "image/png")
	assert.Error(t, err)
}

func TestIngestAll_PreservesOrder(t *testing.T) {
	p := images.New()
	heights := []int{100, 200, 300, 400, 500}
	uploads := make([]images.Upload, len(heights))
	for i, h := range heights {
		uploads[i] = images.Upload{Filename: "f.png", ContentType: "image/png", Data: pngBytes(t, 1000, h)}
	}

	out, err := p.IngestAll(context.Background(), uploads)
	require.NoError(t, err)
	require.Len(t, out, 5)
	for i, img := range out {
		_, h := decodedSize(t, img.Data)
		assert.Equal(t, heights[i]/2, h, "image %d", i)
	}
}

func TestIngestAll_TooManyFiles(t *testing.T) {
	uploads := make([]images.Upload, 6)
	_, err := images.New().IngestAll(context.Background(), uploads)
	assert.True(t, apperrors.Is(err, apperrors.TooManyFiles))
}

func TestIngestAll_Empty(t *testing.T) {
	out, err := images.New().IngestAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestIngestAll_FailsOnBadMember(t *testing.T) {
	uploads := []images.Upload{
		{Filename: "ok.png", ContentType: "image/png", Data: pngBytes(t, 20, 20)},
		{Filename: "bad.png", ContentType: "image/png", Data: []byte("nope")},
	}
	_, err := images.New().IngestAll(context.Background(), uploads)
	assert.True(t, apperrors.Is(err, apperrors.UnprocessableImage))
	assert.Contains(t, err.Error(), "bad.png")
}

func TestEncode_DataURI(t *testing.T) {
	p := images.New()
	img, err := p.Ingest(context.Background(), pngBytes(t, 600, 300), "image/png")
	require.NoError(t, err)

	uri := images.Encode(img)
	assert.Regexp(t, dataURIPattern, uri)
	assert.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/jpeg;base64,"))
	require.NoError(t, err)
	assert.Equal(t, img.Data, raw)
}

func TestEncodeAll(t *testing.T) {
	in := []models.Image{
		{Data: []byte("a"), ContentType: "image/svg+xml"},
		{Data: []byte("bb"), ContentType: "image/jpeg"},
	}
	out := images.EncodeAll(in)

	require.Len(t, out, 2)
	assert.Equal(t, "data:image/svg+xml;base64,YQ==", out[0].Data)
	assert.Equal(t, "image/svg+xml", out[0].ContentType)
	assert.Equal(t, "data:image/jpeg;base64,YmI=", out[1].Data)
	assert.Empty(t, images.EncodeAll(nil))
}
