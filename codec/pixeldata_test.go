package codec

import (
	"testing"

	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPixelData(t *testing.T) {
	info := &imagetypes.FrameInfo{Width: 2, Height: 1, BitsAllocated: 8, SamplesPerPixel: 1}
	p := NewPixelData(info)
	assert.False(t, p.IsEncapsulated())
	assert.Same(t, info, p.GetFrameInfo())
	assert.Equal(t, 0, p.FrameCount())

	require.NoError(t, p.AddFrame([]byte{1, 2}))
	require.NoError(t, p.AddFrame([]byte{3, 4}))
	assert.Equal(t, 2, p.FrameCount())

	f, err := p.GetFrame(1)
	require.NoError(t, err)
	assert.Equal(t, []byte{3, 4}, f)

	_, err = p.GetFrame(2)
	assert.ErrorIs(t, err, ErrFrameIndex)
	_, err = p.GetFrame(-1)
	assert.ErrorIs(t, err, ErrFrameIndex)

	assert.True(t, NewEncapsulatedPixelData(info).IsEncapsulated())
}
