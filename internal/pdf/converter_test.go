package pdf

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/Abraxas-365/aikyuu/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngFixture(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		img.Set(x, x, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF([]byte("%PDF-1.7\n...")))
	assert.False(t, IsPDF([]byte("PK\x03\x04")))
	assert.False(t, IsPDF(nil))
}

func TestInspectRejectsGarbage(t *testing.T) {
	_, err := Inspect([]byte("definitely not a pdf"))
	require.Error(t, err)
	assert.True(t, errx.IsType(err, errx.TypeValidation))
}

func TestImageNormalization(t *testing.T) {
	data := pngFixture(t)

	format, err := DetectImageFormat(data)
	require.NoError(t, err)
	assert.Equal(t, "png", format)

	jpg, err := ConvertImageToJPEG(data)
	require.NoError(t, err)
	format, err = DetectImageFormat(jpg)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)

	same, err := ConvertImageToJPEG(jpg)
	require.NoError(t, err)
	assert.Equal(t, jpg, same)
}

func TestConvertImageToJPEGRejectsText(t *testing.T) {
	_, err := ConvertImageToJPEG([]byte("hello"))
	assert.True(t, errx.IsCode(err, CodeBadImage))
}
