package qrcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestGenerateGameQR_ProducesPNG(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	png, err := svc.GenerateGameQR(555)
	require.NoError(t, err)
	require.True(t, len(png) > len(pngMagic))
	assert.Equal(t, pngMagic, png[:len(pngMagic)])
}

func TestNewQRCodeService_UnknownLevelDefaultsToMedium(t *testing.T) {
	svc := NewQRCodeService(128, "X")

	png, err := svc.GenerateGameQR(1)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
