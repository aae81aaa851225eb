package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/danielwaldman/cadence/internal/calendar"
	"github.com/danielwaldman/cadence/internal/domain"
	"github.com/danielwaldman/cadence/internal/export"
	"github.com/danielwaldman/cadence/internal/schedule"
	"github.com/danielwaldman/cadence/internal/store"
	"github.com/danielwaldman/cadence/internal/variations"
)

// Handler serves the content-scheduling API.
type Handler struct {
	source   variations.Source
	items    store.ItemStore
	logger   *zap.Logger
	validate *validator.Validate
}

// NewHandler creates the API handler.
func NewHandler(source variations.Source, items store.ItemStore, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		source:   source,
		items:    items,
		logger:   logger,
		validate: validator.New(),
	}
}

type generateRequest struct {
	Idea string `json:"idea" validate:"required"`
}

type generateResponse struct {
	Variations []string `json:"variations"`
}

// GenerateVariations handles POST /api/v1/variations.
func (h *Handler) GenerateVariations(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "idea is required")
		return
	}

	vars, err := h.source.Generate(r.Context(), req.Idea)
	if err != nil {
		var genErr *variations.GenerationError
		if errors.As(err, &genErr) && genErr.Raw != "" {
			// Raw payload goes to the log for diagnostics, not to the user.
			h.logger.Warn("variation generation failed",
				zap.String("reason", genErr.Reason),
				zap.String("raw", genErr.Raw),
			)
		}
		writeError(w, statusFor(err), "failed to generate variations")
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{Variations: vars})
}

type itemPayload struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Content  string `json:"content"`
	Platform string `json:"platform"`
}

type scheduleResponse struct {
	Mode   string                   `json:"mode"`
	From   string                   `json:"from"`
	To     string                   `json:"to"`
	Days   map[string][]itemPayload `json:"days"`
	Counts int                      `json:"count"`
}

// GetSchedule handles GET /api/v1/schedule?mode=&anchor=.
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	mode, anchor, ok := h.viewParams(w, r)
	if !ok {
		return
	}

	ident := IdentityFrom(r.Context())
	from, to := calendar.Range(mode, anchor)
	items, err := h.items.SelectRange(r.Context(), ident, from, to)
	if err != nil {
		writeError(w, statusFor(err), "failed to load schedule")
		return
	}

	days := make(map[string][]itemPayload)
	for _, item := range items {
		key := item.Day.Key()
		days[key] = append(days[key], toPayload(item))
	}

	writeJSON(w, http.StatusOK, scheduleResponse{
		Mode:   string(mode),
		From:   from.Key(),
		To:     to.Key(),
		Days:   days,
		Counts: len(items),
	})
}

type insertRequest struct {
	Date     string `json:"date" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Platform string `json:"platform"`
}

// InsertItem handles POST /api/v1/schedule.
func (h *Handler) InsertItem(w http.ResponseWriter, r *http.Request) {
	var req insertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "date and content are required")
		return
	}

	day, err := domain.ParseDay(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	platform, ok := domain.ParsePlatform(req.Platform)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown platform")
		return
	}

	ident := IdentityFrom(r.Context())
	item, err := h.items.Insert(r.Context(), ident, day, req.Content, platform)
	if err != nil {
		writeError(w, statusFor(err), "failed to schedule item")
		return
	}

	writeJSON(w, http.StatusCreated, toPayload(item))
}

// DeleteItem handles DELETE /api/v1/schedule/{itemID}.
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "itemID")
	if id == "" {
		writeError(w, http.StatusBadRequest, "item id is required")
		return
	}

	ident := IdentityFrom(r.Context())
	if err := h.items.Delete(r.Context(), ident, id); err != nil {
		writeError(w, statusFor(err), "failed to delete item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExportSchedule handles GET /api/v1/export?mode=&anchor=&target=.
func (h *Handler) ExportSchedule(w http.ResponseWriter, r *http.Request) {
	mode, anchor, ok := h.viewParams(w, r)
	if !ok {
		return
	}
	target, err := export.ParseTarget(r.URL.Query().Get("target"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// The export endpoint is stateless, so it assembles a cache for the
	// requested range; the builder itself stays pure over that slice.
	ident := IdentityFrom(r.Context())
	sched := schedule.New(h.items, h.logger)
	from, to := calendar.Range(mode, anchor)
	if err := sched.Refresh(r.Context(), ident, from, to); err != nil {
		writeError(w, statusFor(err), "failed to load schedule")
		return
	}

	rows := export.BuildRows(target, mode, anchor, sched)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(target)+`"`)
	if err := export.WriteCSV(w, rows); err != nil {
		h.logger.Error("writing export", zap.Error(err))
	}
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) viewParams(w http.ResponseWriter, r *http.Request) (calendar.ViewMode, domain.Day, bool) {
	mode, err := calendar.ParseViewMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", domain.Day{}, false
	}

	anchorParam := r.URL.Query().Get("anchor")
	var anchor domain.Day
	if anchorParam == "" {
		anchor = calendar.Today(mode, timeNow())
	} else {
		anchor, err = domain.ParseDay(anchorParam)
		if err != nil {
			writeError(w, http.StatusBadRequest, "anchor must be YYYY-MM-DD")
			return "", domain.Day{}, false
		}
	}
	return mode, anchor, true
}

func toPayload(item domain.ScheduledItem) itemPayload {
	return itemPayload{
		ID:       item.ID,
		Date:     item.Day.Key(),
		Content:  item.Content,
		Platform: string(item.Platform),
	}
}
