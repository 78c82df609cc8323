package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/mind-engage/mindengage-qtigen/internal/apperr"
	auth "github.com/mind-engage/mindengage-qtigen/internal/auth/middleware"
	"github.com/mind-engage/mindengage-qtigen/internal/logger"
	syncx "github.com/mind-engage/mindengage-qtigen/internal/sync"
)

type EventLister interface {
	Recent(ctx context.Context, limit int) ([]syncx.Event, error)
}

type conversionRow struct {
	ID        string          `json:"id"`
	SiteID    string          `json:"site_id"`
	Data      json.RawMessage `json:"data"`
	CreatedAt int64           `json:"created_at"`
}

// GET /api/conversions?limit=50
func ListConversionsHandler(events EventLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		evs, err := events.Recent(r.Context(), limit)
		if err != nil {
			logger.Get().Error("list conversions", zap.Error(err))
			apperr.Write(w, apperr.Internal("Error listing conversions.", err))
			return
		}
		rows := make([]conversionRow, 0, len(evs))
		for _, e := range evs {
			if e.Type != syncx.TypeConversionCompleted {
				continue
			}
			data := json.RawMessage(e.DataJSON)
			if !json.Valid(data) {
				data = json.RawMessage("null")
			}
			rows = append(rows, conversionRow{ID: e.Key, SiteID: e.SiteID, Data: data, CreatedAt: e.CreatedAt})
		}
		logger.Get().Debug("conversions listed",
			zap.String("viewer", auth.SubjectFromContext(r.Context())),
			zap.Int("rows", len(rows)),
		)
		respondJSON(w, http.StatusOK, rows)
	}
}
