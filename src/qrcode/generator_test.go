package qrcode

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPNG(t *testing.T) {
	raw, err := PNG("http://localhost:5173/client/projects/abc", 0)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, DefaultSize, img.Bounds().Dx())
}

func TestPNGClampsSize(t *testing.T) {
	raw, err := PNG("x", 5000)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, maxSize, img.Bounds().Dx())
}

func TestPNGEmpty(t *testing.T) {
	_, err := PNG("", 100)
	assert.Error(t, err)
}

func TestProjectLink(t *testing.T) {
	assert.Equal(t, "https://app.pulsepad.io/client/projects/42", ProjectLink("https://app.pulsepad.io", "42"))
}
