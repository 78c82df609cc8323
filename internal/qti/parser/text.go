package parser

import (
	"regexp"
	"strings"

	"github.com/mind-engage/mindengage-qtigen/internal/qti"
)

var (
	blockStart  = regexp.MustCompile(`^\d+\s`)
	optionLabel = regexp.MustCompile(`^[A-Z]\)\s*`)
	answerLine  = regexp.MustCompile(`^ANSWER:\s*(.+?)\s*$`)
)

// Parse turns a plain-text question bank into question records.
//
// A block starts at every line beginning with digits followed by
// whitespace. Inside a block the first non-blank line is the prompt, the
// last is the ANSWER: line and everything in between are options. Blocks
// with fewer than two non-blank lines are dropped. Parse never fails.
func Parse(raw string) []qti.Question {
	raw = strings.TrimPrefix(raw, "\ufeff")
	out := []qti.Question{}
	for _, block := range SplitBlocks(raw) {
		if q, ok := parseBlock(block); ok {
			out = append(out, q)
		}
	}
	return out
}

// SplitBlocks cuts raw at each newline that is followed by a numbered
// line. The number itself stays in the block.
func SplitBlocks(raw string) []string {
	lines := strings.Split(raw, "\n")
	blocks := []string{}
	start := 0
	for i := 1; i < len(lines); i++ {
		probe := lines[i]
		if i < len(lines)-1 {
			// a bare number still counts when the line break follows it
			probe += "\n"
		}
		if blockStart.MatchString(probe) {
			blocks = append(blocks, strings.Join(lines[start:i], "\n"))
			start = i
		}
	}
	return append(blocks, strings.Join(lines[start:], "\n"))
}

func parseBlock(block string) (qti.Question, bool) {
	var lines []string
	for _, l := range strings.Split(strings.TrimSpace(block), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) < 2 {
		return qti.Question{}, false
	}

	q := qti.Question{
		Text:    strings.TrimSuffix(lines[0], ":"),
		Options: make([]string, 0, len(lines)-2),
	}
	for _, l := range lines[1 : len(lines)-1] {
		q.Options = append(q.Options, optionLabel.ReplaceAllString(l, ""))
	}
	if m := answerLine.FindStringSubmatch(lines[len(lines)-1]); m != nil {
		q.Answer = m[1]
	}
	return q, true
}
