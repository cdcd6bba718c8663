package ocr

import (
	"context"
	"testing"

	"controle-financeiro/internal/extraction"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// smallest valid PNG header
var pngBytes = []byte{
	0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 'I', 'H', 'D', 'R',
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x08, 0x06, 0x00, 0x00, 0x00,
}

type fakeVision struct {
	text     string
	err      error
	gotType  string
	received int
}

func (f *fakeVision) DetectText(_ context.Context, data []byte, contentType string) (string, error) {
	f.gotType = contentType
	f.received = len(data)
	return f.text, f.err
}

func TestSniff(t *testing.T) {
	assert.Equal(t, "image/png", Sniff(pngBytes))
	assert.True(t, Supported("image/png"))
	assert.True(t, Supported("application/pdf"))
	assert.False(t, Supported("text/plain; charset=utf-8"))
}

func TestDetectTextRoutesImagesToVision(t *testing.T) {
	vision := &fakeVision{text: "  CUPOM FISCAL\nTOTAL 10,00 \n"}
	r := NewReader(vision, zap.NewNop())

	text, err := r.DetectText(context.Background(), pngBytes, "application/octet-stream")
	require.NoError(t, err)
	assert.Equal(t, "CUPOM FISCAL\nTOTAL 10,00", text)
	assert.Equal(t, "image/png", vision.gotType)
	assert.Equal(t, len(pngBytes), vision.received)
}

func TestDetectTextErrors(t *testing.T) {
	ctx := context.Background()

	_, err := NewReader(nil, zap.NewNop()).DetectText(ctx, pngBytes, "")
	require.ErrorIs(t, err, extraction.ErrOCRUnavailable)

	_, err = NewReader(&fakeVision{text: "   "}, zap.NewNop()).DetectText(ctx, pngBytes, "")
	require.ErrorIs(t, err, extraction.ErrOCREmpty)

	_, err = NewReader(&fakeVision{err: assert.AnError}, zap.NewNop()).DetectText(ctx, pngBytes, "")
	require.ErrorIs(t, err, assert.AnError)

	_, err = NewReader(&fakeVision{}, zap.NewNop()).DetectText(ctx, []byte("just some text"), "text/plain")
	require.ErrorIs(t, err, ErrUnsupportedType)

	_, err = NewReader(&fakeVision{}, zap.NewNop()).DetectText(ctx, nil, "image/png")
	require.ErrorIs(t, err, extraction.ErrOCREmpty)
}

func TestDetectTextBrokenPDF(t *testing.T) {
	vision := &fakeVision{text: "should not be used"}
	_, err := NewReader(vision, zap.NewNop()).DetectText(context.Background(), []byte("%PDF-1.4\n%broken"), "")
	require.Error(t, err)
	assert.Zero(t, vision.received)
}
