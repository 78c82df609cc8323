// Package convert runs one upload through the parser and renderer and
// records a summary of the conversion.
package convert

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mind-engage/mindengage-qtigen/internal/logger"
	"github.com/mind-engage/mindengage-qtigen/internal/qti"
	"github.com/mind-engage/mindengage-qtigen/internal/qti/export"
	"github.com/mind-engage/mindengage-qtigen/internal/qti/parser"
	"github.com/mind-engage/mindengage-qtigen/internal/qti/render"
	syncx "github.com/mind-engage/mindengage-qtigen/internal/sync"
)

// EventSink receives one event per finished conversion.
type EventSink interface {
	Append(ctx context.Context, e syncx.Event) error
}

type Request struct {
	Text     string
	Selector string // form value, e.g. "1"
	Filename string // informational
}

type Result struct {
	ID        string
	Type      qti.QuestionType
	Questions []qti.Question
	XML       string
}

type Service struct {
	renderer *render.Renderer
	events   EventSink
	siteID   string
	pack     func(xmlDoc string) ([]byte, error)
}

type Option func(*Service)

// WithEvents records a ConversionCompleted event for every conversion.
func WithEvents(sink EventSink, siteID string) Option {
	return func(s *Service) {
		s.events = sink
		s.siteID = siteID
	}
}

func WithRenderOptions(opts render.Options) Option {
	return func(s *Service) { s.renderer = render.New(opts) }
}

func NewService(opts ...Option) *Service {
	s := &Service{renderer: render.New(render.Options{}), pack: export.BuildPackage}
	for _, o := range opts {
		o(s)
	}
	return s
}

// DecodeText turns uploaded bytes into parser input. Invalid UTF-8
// sequences become U+FFFD.
func DecodeText(b []byte) string {
	return strings.ToValidUTF8(string(b), "\uFFFD")
}

// Preview parses the request without rendering.
func (s *Service) Preview(req Request) ([]qti.Question, qti.QuestionType) {
	t, _ := qti.TypeFromSelector(req.Selector)
	return parser.Parse(req.Text), t
}

// Convert parses and renders req. Malformed input never fails: it yields
// fewer or emptier items, and an unknown selector yields an empty section.
func (s *Service) Convert(ctx context.Context, req Request) Result {
	res := s.convert(req)
	s.record(ctx, req, res)
	return res
}

// Package converts req and wraps the document for download. The
// conversion is recorded only once the archive is built.
func (s *Service) Package(ctx context.Context, req Request) (Result, []byte, error) {
	res := s.convert(req)
	pkg, err := s.pack(res.XML)
	if err != nil {
		return res, nil, err
	}
	s.record(ctx, req, res)
	return res, pkg, nil
}

func (s *Service) convert(req Request) Result {
	qs, t := s.Preview(req)
	return Result{
		ID:        uuid.NewString(),
		Type:      t,
		Questions: qs,
		XML:       s.renderer.Document(qs, t),
	}
}

type eventData struct {
	QuestionType string `json:"question_type"`
	Items        int    `json:"items"`
	XMLBytes     int    `json:"xml_bytes"`
	Filename     string `json:"filename,omitempty"`
}

func (s *Service) record(ctx context.Context, req Request, res Result) {
	log := logger.Get().With(zap.String("conversion_id", res.ID))
	items := len(res.Questions)
	if res.Type == qti.TypeUnknown {
		items = 0
	}
	log.Info("conversion completed",
		zap.Stringer("question_type", res.Type),
		zap.Int("items", items),
		zap.Int("xml_bytes", len(res.XML)),
	)
	if s.events == nil {
		return
	}
	data, _ := json.Marshal(eventData{
		QuestionType: res.Type.String(),
		Items:        items,
		XMLBytes:     len(res.XML),
		Filename:     req.Filename,
	})
	err := s.events.Append(ctx, syncx.Event{
		SiteID:   s.siteID,
		Type:     syncx.TypeConversionCompleted,
		Key:      res.ID,
		DataJSON: string(data),
	})
	if err != nil {
		log.Warn("record conversion event", zap.Error(err))
	}
}
