package export

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPackageSingleEntry(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>` + "\n<questestinterop>" + strings.Repeat("<item/>", 200) + "</questestinterop>"

	pkg, err := BuildPackage(doc)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(pkg), int64(len(pkg)))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)

	f := zr.File[0]
	assert.Equal(t, EntryName, f.Name)
	assert.Equal(t, zip.Deflate, f.Method)
	assert.Less(t, f.CompressedSize64, f.UncompressedSize64)

	rc, err := f.Open()
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, doc, string(got))
}

func TestBuildPackageEmptyDocument(t *testing.T) {
	pkg, err := BuildPackage("")
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(pkg), int64(len(pkg)))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.Zero(t, zr.File[0].UncompressedSize64)
}
