// Package samples ships the downloadable question bank templates.
package samples

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/mind-engage/mindengage-qtigen/internal/storage"
)

//go:embed template_txt/*.txt
var files embed.FS

// Names lists the embedded templates.
func Names() []string {
	entries, _ := fs.ReadDir(files, "template_txt")
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name())
	}
	return out
}

// Read returns one embedded template.
func Read(name string) ([]byte, error) {
	return files.ReadFile(path.Join("template_txt", name))
}

// Seed copies every embedded template missing from bs. Existing files are
// left alone so operators can replace them. It returns the keys written.
func Seed(bs storage.BlobStore) ([]string, error) {
	var written []string
	for _, name := range Names() {
		rc, err := bs.Get(name)
		if err == nil {
			_ = rc.Close()
			continue
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return written, fmt.Errorf("seed %s: %w", name, err)
		}
		b, err := Read(name)
		if err != nil {
			return written, err
		}
		key, err := bs.Put(name, bytes.NewReader(b))
		if err != nil {
			return written, fmt.Errorf("seed %s: %w", name, err)
		}
		written = append(written, key)
	}
	return written, nil
}
