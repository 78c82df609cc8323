package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/flate"
)

const (
	// EntryName is the name of the document inside the archive.
	EntryName   = "output.xml"
	ArchiveName = "output.zip"
)

// BuildPackage wraps an XML document in a zip archive with a single
// output.xml entry, deflated at best compression.
func BuildPackage(xmlDoc string) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := WritePackage(buf, xmlDoc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WritePackage streams the archive to w.
func WritePackage(w io.Writer, xmlDoc string) error {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	ew, err := zw.CreateHeader(&zip.FileHeader{
		Name:     EntryName,
		Method:   zip.Deflate,
		Modified: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("create %s: %w", EntryName, err)
	}
	if _, err := io.WriteString(ew, xmlDoc); err != nil {
		return fmt.Errorf("write %s: %w", EntryName, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}
	return nil
}
