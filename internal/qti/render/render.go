// Package render writes parsed questions as an IMS QTI 1.2 questestinterop
// document. Output is assembled from string fragments; question and option
// text is copied verbatim unless Options.EscapeText is set.
package render

import (
	"encoding/xml"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mind-engage/mindengage-qtigen/internal/logger"
	"github.com/mind-engage/mindengage-qtigen/internal/qti"
)

const DefaultTitleLabel = "Câu"

type Options struct {
	// TitleLabel precedes the 1-based index in each item title.
	TitleLabel string
	// EscapeText entity-escapes question text, options and answers.
	// Off by default so output matches existing exports byte for byte.
	EscapeText bool
}

type Renderer struct {
	opts Options
}

func New(opts Options) *Renderer {
	if opts.TitleLabel == "" {
		opts.TitleLabel = DefaultTitleLabel
	}
	return &Renderer{opts: opts}
}

var defaultRenderer = New(Options{})

// Document renders qs with default options.
func Document(qs []qti.Question, t qti.QuestionType) string {
	return defaultRenderer.Document(qs, t)
}

// Document renders one questestinterop document with an item per question.
// An unknown type yields the empty section and a logged warning.
func (r *Renderer) Document(qs []qti.Question, t qti.QuestionType) string {
	var b strings.Builder
	b.WriteString(header)
	if _, ok := qti.TypeFromCode(int(t)); ok {
		for i, q := range qs {
			b.WriteString(r.Item(i, q, t))
		}
	} else {
		logger.Get().Warn("unknown question type, rendering empty section",
			zap.Int("question_type", int(t)),
			zap.Int("questions", len(qs)),
		)
	}
	b.WriteString(footer)
	return b.String()
}

// Item renders the i-th (0-based) question as a complete <item>.
func (r *Renderer) Item(i int, q qti.Question, t qti.QuestionType) string {
	q = r.prepare(q)
	n := strconv.Itoa(i + 1)
	choices := t.Choices(q)

	var b strings.Builder
	b.WriteString(ItemOpen(t.ItemPrefix()+n, r.opts.TitleLabel+" "+n, t.Tag(), q.Text))
	b.WriteString(ResponseLid(ResponseIdent, t.Cardinality(), RenderChoice(choices)))
	if t.Cardinality() == qti.CardinalityMultiple {
		b.WriteString(MultipleResprocessing(choices, q.Answer))
	} else {
		b.WriteString(SingleResprocessing(q.Answer))
	}
	b.WriteString("</item>\n")
	return b.String()
}

func (r *Renderer) prepare(q qti.Question) qti.Question {
	if !r.opts.EscapeText {
		return q
	}
	out := qti.Question{
		Text:    escape(q.Text),
		Answer:  escape(q.Answer),
		Options: make([]string, len(q.Options)),
	}
	for k, o := range q.Options {
		out.Options[k] = escape(o)
	}
	return out
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
