package qr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	payload := Encode("https://demo.example.org/app", "B7K2Q9X")
	assert.Equal(t, "https://demo.example.org/app#qr-scanner?batch=B7K2Q9X", payload)
	assert.Equal(t, "B7K2Q9X", Decode(payload))
}

func TestDecodeRawIdentifier(t *testing.T) {
	assert.Equal(t, "B7K2Q9X", Decode("B7K2Q9X"))
	assert.Equal(t, "B7K2Q9X", Decode("  B7K2Q9X "))
}

func TestDecodeRejectsNonBatchText(t *testing.T) {
	assert.Empty(t, Decode("hello world"))
	assert.Empty(t, Decode(""))
	assert.Empty(t, Decode("https://demo.example.org/app#qr-scanner?batch=nope"))
	assert.Empty(t, Decode("https://demo.example.org/app#qr-scanner?other=B7K2Q9X"))
}

func TestImage(t *testing.T) {
	png, err := Image("https://demo.example.org/app", "B7K2Q9X", 240)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
	// PNG magic bytes
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
