package board

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"voxca/internal/core"
)

func TestDecodeCube(t *testing.T) {
	b, err := Decode([]byte("2x2x2\n0,1,2,3,4,5,6,7"))
	require.NoError(t, err)
	require.Equal(t, core.Dims{X: 2, Y: 2, Z: 2}, b.Dims)
	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, b.States)
}

func TestDecodeReferenceLayout(t *testing.T) {
	b, err := Decode([]byte("1x2x3\r\n4,4,0,1,2,2,"))
	require.NoError(t, err)
	require.Equal(t, core.Dims{X: 1, Y: 2, Z: 3}, b.Dims)
	require.Equal(t, []int{4, 4, 0, 1, 2, 2}, b.States)
}

func TestDecodeVolumeMismatch(t *testing.T) {
	b, err := Decode([]byte("2x2x2\n0,1,2,3,4"))
	require.Nil(t, b)
	require.ErrorIs(t, err, ErrVolumeMismatch)

	_, err = Decode([]byte("1x1x2\n0,1,2"))
	require.ErrorIs(t, err, ErrVolumeMismatch)
}

func TestDecodeMalformed(t *testing.T) {
	cases := map[string]struct {
		in   string
		want error
	}{
		"empty":          {"", ErrMalformedHeader},
		"two extents":    {"2x2\n0,1,2,3", ErrMalformedHeader},
		"zero extent":    {"0x2x2\n", ErrMalformedHeader},
		"word extent":    {"axbxc\n1", ErrMalformedHeader},
		"no state line":  {"1x1x1", ErrMalformedValue},
		"negative state": {"1x1x2\n1,-1", ErrMalformedValue},
		"text state":     {"1x1x2\n1,z", ErrMalformedValue},
		"double comma":   {"1x1x2\n1,,2", ErrMalformedValue},
		"volume wraps":   {"4294967296x4294967296x1\n", ErrMalformedHeader},
		"volume too big": {"9223372036854775807x2x1\n0", ErrMalformedHeader},
	}
	for name, tc := range cases {
		_, err := Decode([]byte(tc.in))
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: err = %v, want %v", name, err, tc.want)
		}
	}
}

func TestEncodeMatchesReferenceLayout(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, &Board{Dims: core.Dims{X: 1, Y: 1, Z: 3}, States: []int{5, 0, 12}})
	require.NoError(t, err)
	require.Equal(t, "1x1x3\n5,0,12,", buf.String())

	b, err := Decode(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, []int{5, 0, 12}, b.States)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), FileName))
	require.ErrorIs(t, err, os.ErrNotExist)
}
