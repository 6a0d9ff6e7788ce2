package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, A: 255})
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestImageProcessor_Inspect(t *testing.T) {
	p := NewImageProcessor()

	format, err := p.Inspect(pngBytes(t, 10, 10))
	require.NoError(t, err)
	assert.Equal(t, "png", format)

	_, err = p.Inspect([]byte("not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	small := &ImageProcessor{MaxSize: 16}
	_, err = small.Inspect(pngBytes(t, 10, 10))
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestImageProcessor_Thumbnail(t *testing.T) {
	p := NewImageProcessor()

	thumb, err := p.Thumbnail(pngBytes(t, 900, 600), "png")
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 300, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
}
