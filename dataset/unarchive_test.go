package dataset

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pierrec/lz4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenLZ4(t *testing.T) {
	path := filepath.Join(t.TempDir(), "userbase.csv.lz4")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := lz4.NewWriter(f)
	_, err = zw.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	ds, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, ds.Len())
}

func TestOpenZipPicksLargestEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "userbase.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)

	readme, err := zw.Create("README.txt")
	require.NoError(t, err)
	_, err = readme.Write([]byte("userbase export"))
	require.NoError(t, err)

	data, err := zw.Create("export/userbase.csv")
	require.NoError(t, err)
	_, err = data.Write([]byte(sample))
	require.NoError(t, err)

	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	rc, err := Open(path)
	require.NoError(t, err)
	defer rc.Close()
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, sample, string(content))
}

func TestOpenEmptyZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, zip.NewWriter(f).Close())
	require.NoError(t, f.Close())

	_, err = Open(path)
	assert.Error(t, err)
}
