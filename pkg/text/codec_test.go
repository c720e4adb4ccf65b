package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestNewCodec(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		wantName string
		wantErr  bool
	}{
		{name: "empty_is_utf8", label: "", wantName: "utf-8"},
		{name: "utf8", label: "UTF-8", wantName: "utf-8"},
		{name: "alias", label: "utf8", wantName: "utf-8"},
		{name: "arabic_legacy", label: "windows-1256", wantName: "windows-1256"},
		{name: "unknown", label: "klingon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := NewCodec(tt.label)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, codec.Name())
		})
	}
}

func TestCodec_UTF8(t *testing.T) {
	codec, err := NewCodec("utf-8")
	require.NoError(t, err)

	got, err := codec.Decode([]byte("منصة أثر ✅"))
	require.NoError(t, err)
	assert.Equal(t, "منصة أثر ✅", got)

	_, err = codec.Decode([]byte{'a', 0xff, 'b'})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode), "invalid utf-8 should be a decode error")

	out, err := codec.Encode("abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), out)
}

func TestCodec_Legacy(t *testing.T) {
	codec, err := NewCodec("windows-1256")
	require.NoError(t, err)

	encoded, err := codec.Encode("مرحبا")
	require.NoError(t, err)
	assert.Len(t, encoded, 5, "windows-1256 uses one byte per arabic letter")

	decoded, err := codec.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, "مرحبا", decoded)

	_, err = codec.Encode("日本")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEncode))
}
