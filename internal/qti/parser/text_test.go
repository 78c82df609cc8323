package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-qtigen/internal/qti"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []qti.Question
	}{
		{
			name: "multiple choice",
			in:   "1 What is 2+2?\nA) 3\nB) 4\nANSWER: B",
			want: []qti.Question{{Text: "1 What is 2+2?", Options: []string{"3", "4"}, Answer: "B"}},
		},
		{
			name: "multiple answers",
			in:   "1 Pick primes\nA) 2\nB) 4\nC) 3\nANSWER: AC",
			want: []qti.Question{{Text: "1 Pick primes", Options: []string{"2", "4", "3"}, Answer: "AC"}},
		},
		{
			name: "true false strips one trailing colon",
			in:   "1 Sky is blue:\nANSWER: True",
			want: []qti.Question{{Text: "1 Sky is blue", Options: []string{}, Answer: "True"}},
		},
		{
			name: "only the last colon goes",
			in:   "1 Ratio::\nANSWER:A",
			want: []qti.Question{{Text: "1 Ratio:", Options: []string{}, Answer: "A"}},
		},
		{
			name: "malformed answer line",
			in:   "1 Capital of France?\nA) Paris\nB) Rome\nAnswer - A",
			want: []qti.Question{{Text: "1 Capital of France?", Options: []string{"Paris", "Rome"}, Answer: ""}},
		},
		{
			name: "empty answer value",
			in:   "1 Q\nA) x\nANSWER:",
			want: []qti.Question{{Text: "1 Q", Options: []string{"x"}, Answer: ""}},
		},
		{
			name: "options without labels kept verbatim",
			in:   "1 Q\n  first  \na) lower\nAB) two letters\nC)no space\nANSWER: C",
			want: []qti.Question{{Text: "1 Q", Options: []string{"first", "a) lower", "AB) two letters", "no space"}, Answer: "C"}},
		},
		{
			name: "blank lines and CRLF",
			in:   "1 Q one\r\n\r\nA) a\r\n   \r\nB) b\r\nANSWER:  A  \r\n",
			want: []qti.Question{{Text: "1 Q one", Options: []string{"a", "b"}, Answer: "A"}},
		},
		{
			name: "several blocks",
			in:   "1 First\nA) x\nANSWER: A\n2 Second\nA) y\nB) z\nANSWER: B\n10\tTenth\nANSWER: True\n",
			want: []qti.Question{
				{Text: "1 First", Options: []string{"x"}, Answer: "A"},
				{Text: "2 Second", Options: []string{"y", "z"}, Answer: "B"},
				{Text: "10\tTenth", Options: []string{}, Answer: "True"},
			},
		},
		{
			name: "short blocks dropped",
			in:   "1 Lonely question\n2 Real one\nA) a\nANSWER: A\n3\n",
			want: []qti.Question{{Text: "2 Real one", Options: []string{"a"}, Answer: "A"}},
		},
		{
			name: "numbers inside an option do not split",
			in:   "1 Which year?\nA) 1999 or so\n 2000 indented\nANSWER: A",
			want: []qti.Question{{Text: "1 Which year?", Options: []string{"1999 or so", "2000 indented"}, Answer: "A"}},
		},
		{
			name: "byte order mark",
			in:   "\ufeff1 Q\nANSWER: True",
			want: []qti.Question{{Text: "1 Q", Options: []string{}, Answer: "True"}},
		},
		{
			name: "empty input",
			in:   "",
			want: []qti.Question{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseLeadingLinesBeforeFirstNumber(t *testing.T) {
	// text before the first numbered line forms its own block
	got := Parse("Chapter 1\nIntro\n1 Q\nA) a\nANSWER: A")
	require.Len(t, got, 2)
	assert.Equal(t, "Chapter 1", got[0].Text)
	assert.Empty(t, got[0].Options)
	assert.Equal(t, "", got[0].Answer)
	assert.Equal(t, "1 Q", got[1].Text)
}

func TestSplitBlocks(t *testing.T) {
	assert.Equal(t, []string{"1 a\nb", "2 c"}, SplitBlocks("1 a\nb\n2 c"))
	assert.Equal(t, []string{"x", "12\ny"}, SplitBlocks("x\n12\ny"))
	assert.Equal(t, []string{"x\n12"}, SplitBlocks("x\n12"), "a bare number on the last line has no following whitespace")
	assert.Equal(t, []string{""}, SplitBlocks(""))
}

func TestParseOptionCount(t *testing.T) {
	for n := 2; n <= 30; n++ {
		var b strings.Builder
		b.WriteString("1 Q\n")
		for k := 0; k < n-2; k++ {
			b.WriteString("opt\n")
		}
		b.WriteString("ANSWER: A")

		got := Parse(b.String())
		require.Len(t, got, 1, "n=%d", n)
		assert.Len(t, got[0].Options, n-2, "n=%d", n)
	}
}
