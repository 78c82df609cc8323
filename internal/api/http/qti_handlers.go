package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/mind-engage/mindengage-qtigen/internal/apperr"
	"github.com/mind-engage/mindengage-qtigen/internal/convert"
	"github.com/mind-engage/mindengage-qtigen/internal/logger"
	"github.com/mind-engage/mindengage-qtigen/internal/qti"
	"github.com/mind-engage/mindengage-qtigen/internal/qti/export"
)

const multipartMemory = 8 << 20

// POST /api/upload (multipart: file=<bank.txt>, questionType=1|2|3)
// Responds with output.zip holding output.xml.
func UploadHandler(svc *convert.Service, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := readUpload(w, r, maxBytes)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		res, pkg, err := svc.Package(r.Context(), req)
		if err != nil {
			logger.Get().Error("package conversion", zap.String("conversion_id", res.ID), zap.Error(err))
			apperr.Write(w, apperr.Internal("Error processing file.", err))
			return
		}

		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", `attachment; filename="`+export.ArchiveName+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(len(pkg)))
		w.Header().Set("X-Conversion-Id", res.ID)
		_, _ = w.Write(pkg)
	}
}

type previewChoice struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type previewQuestion struct {
	Text    string          `json:"text"`
	Choices []previewChoice `json:"choices"`
	Answer  string          `json:"answer"`
}

type previewResponse struct {
	QuestionType string            `json:"question_type"`
	Known        bool              `json:"known_type"`
	Questions    []previewQuestion `json:"questions"`
}

// POST /api/preview (same form as /api/upload)
// Returns the parsed questions with the identifiers they will receive.
func PreviewHandler(svc *convert.Service, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := readUpload(w, r, maxBytes)
		if err != nil {
			apperr.Write(w, err)
			return
		}
		qs, t := svc.Preview(req)
		out := previewResponse{
			QuestionType: t.Tag(),
			Known:        t != qti.TypeUnknown,
			Questions:    make([]previewQuestion, 0, len(qs)),
		}
		for _, q := range qs {
			pq := previewQuestion{Text: q.Text, Answer: q.Answer, Choices: []previewChoice{}}
			for k, c := range t.Choices(q) {
				pq.Choices = append(pq.Choices, previewChoice{ID: qti.ChoiceIdent(k), Text: c})
			}
			out.Questions = append(out.Questions, pq)
		}
		respondJSON(w, http.StatusOK, out)
	}
}

func readUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) (convert.Request, error) {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return convert.Request{}, apperr.TooLarge(err)
		}
		return convert.Request{}, apperr.NoFile()
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		return convert.Request{}, apperr.NoFile()
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return convert.Request{}, apperr.Internal("Error processing file.", err)
	}
	return convert.Request{
		Text:     convert.DecodeText(b),
		Selector: r.FormValue("questionType"),
		Filename: hdr.Filename,
	}, nil
}
