package samples

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-qtigen/internal/qti/parser"
	"github.com/mind-engage/mindengage-qtigen/internal/storage"
)

func TestEmbeddedTemplatesParse(t *testing.T) {
	want := map[string]int{"multiple_answers.txt": 2, "multiple_choice.txt": 2, "true_false.txt": 2}
	assert.ElementsMatch(t, []string{"multiple_answers.txt", "multiple_choice.txt", "true_false.txt"}, Names())

	for name, n := range want {
		b, err := Read(name)
		require.NoError(t, err)
		qs := parser.Parse(string(b))
		require.Len(t, qs, n, name)
		for _, q := range qs {
			assert.NotEmpty(t, q.Answer, name)
		}
	}
}

func TestSeedKeepsExisting(t *testing.T) {
	bs, err := storage.NewFSStore(t.TempDir())
	require.NoError(t, err)
	_, err = bs.Put("true_false.txt", strings.NewReader("custom"))
	require.NoError(t, err)

	written, err := Seed(bs)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"multiple_answers.txt", "multiple_choice.txt"}, written)

	rc, err := bs.Get("true_false.txt")
	require.NoError(t, err)
	defer rc.Close()
	b, _ := io.ReadAll(rc)
	assert.Equal(t, "custom", string(b))

	again, err := Seed(bs)
	require.NoError(t, err)
	assert.Empty(t, again)
}
