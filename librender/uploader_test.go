package librender_test

import (
	"testing"

	"stereo-gl/librender"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadAndBindUnknownAttribute(t *testing.T) {
	ctx := newRecordingContext()
	up := librender.NewUploader(ctx, librender.IndexUint16)

	err := up.UploadAndBind([]mgl32.Vec3{{0, 0, 0}}, "vNormal")
	assert.ErrorIs(t, err, librender.ErrUnknownAttribute)
	assert.Empty(t, ctx.uploads)
}

func TestUploadAndBindEmpty(t *testing.T) {
	ctx := newRecordingContext()
	up := librender.NewUploader(ctx, librender.IndexUint16)

	assert.ErrorIs(t, up.UploadAndBind([]mgl32.Vec4{}, librender.AttribColor), librender.ErrEmptyUpload)
	assert.ErrorIs(t, up.UploadAndBind([]uint32{}, ""), librender.ErrEmptyUpload)
	assert.Zero(t, ctx.gpuCalls())
}

func TestUploadAndBindUnsupportedType(t *testing.T) {
	up := librender.NewUploader(newRecordingContext(), librender.IndexUint16)
	assert.Error(t, up.UploadAndBind([]string{"a"}, librender.AttribPosition))
}

func TestUploadAndBindIndexWidths(t *testing.T) {
	indices := []uint32{0, 1, 2, 2, 3, 0}

	for _, tc := range []struct {
		indexType librender.IndexType
		want      any
	}{
		{librender.IndexUint8, []uint8{0, 1, 2, 2, 3, 0}},
		{librender.IndexUint16, []uint16{0, 1, 2, 2, 3, 0}},
		{librender.IndexUint32, []uint32{0, 1, 2, 2, 3, 0}},
	} {
		t.Run(tc.indexType.String(), func(t *testing.T) {
			ctx := newRecordingContext()
			up := librender.NewUploader(ctx, tc.indexType)
			require.NoError(t, up.UploadAndBind(indices, ""))
			assert.Equal(t, tc.want, ctx.elements)
			assert.Empty(t, ctx.uploads)
		})
	}
}

func TestIndexTypePackOverflow(t *testing.T) {
	_, err := librender.IndexUint8.Pack([]uint32{0, 256})
	assert.ErrorIs(t, err, librender.ErrIndexTooLarge)

	_, err = librender.IndexUint16.Pack([]uint32{0, 65536})
	assert.ErrorIs(t, err, librender.ErrIndexTooLarge)

	_, err = librender.IndexUint32.Pack([]uint32{0, 65536})
	assert.NoError(t, err)
}

func TestParseIndexType(t *testing.T) {
	for in, want := range map[string]librender.IndexType{
		"uint8":  librender.IndexUint8,
		"UINT16": librender.IndexUint16,
		" u32 ":  librender.IndexUint32,
		"short":  librender.IndexUint16,
	} {
		got, err := librender.ParseIndexType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := librender.ParseIndexType("uint64")
	assert.Error(t, err)
}

func TestIndexTypeFor(t *testing.T) {
	assert.Equal(t, librender.IndexUint8, librender.IndexTypeFor(8))
	assert.Equal(t, librender.IndexUint8, librender.IndexTypeFor(256))
	assert.Equal(t, librender.IndexUint16, librender.IndexTypeFor(257))
	assert.Equal(t, librender.IndexUint32, librender.IndexTypeFor(70000))
}

func TestResolveIndexType(t *testing.T) {
	got, err := librender.ResolveIndexType("Auto", 8)
	require.NoError(t, err)
	assert.Equal(t, librender.IndexUint8, got)

	got, err = librender.ResolveIndexType("uint32", 8)
	require.NoError(t, err)
	assert.Equal(t, librender.IndexUint32, got)

	_, err = librender.ResolveIndexType("widest", 8)
	assert.Error(t, err)
}
