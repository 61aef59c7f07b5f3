package httpserver

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pviana/matchview-api/internal/auth"
	"github.com/pviana/matchview-api/internal/domain/datasets"
	domainstats "github.com/pviana/matchview-api/internal/domain/stats"
	"github.com/pviana/matchview-api/internal/domain/uploads"
	"github.com/pviana/matchview-api/internal/events"
	"github.com/pviana/matchview-api/internal/ingest"
	"github.com/pviana/matchview-api/internal/metrics"
	"github.com/pviana/matchview-api/internal/projections"
	"github.com/pviana/matchview-api/internal/storage/postgres"
)

type Dependencies struct {
	Store          *postgres.Store
	Bus            *events.Bus
	Metrics        *metrics.Recorder
	APIToken       string
	DefaultOwnerID uuid.UUID
}

type Server struct {
	store        *postgres.Store
	projection   *projections.Service
	bus          *events.Bus
	recorder     *metrics.Recorder
	auth         auth.Middleware
	defaultOwner uuid.UUID
}

func NewServer(deps Dependencies) *Server {
	s := &Server{
		store:        deps.Store,
		projection:   projections.NewService(deps.Store),
		bus:          deps.Bus,
		recorder:     deps.Metrics,
		auth:         auth.NewMiddleware(deps.APIToken, deps.DefaultOwnerID),
		defaultOwner: deps.DefaultOwnerID,
	}

	// Every upload merge ends with a full derived-view rebuild.
	s.bus.Subscribe(events.DatasetUploaded, func(ctx context.Context, e events.Event) error {
		datasetID, ok := e.Payload.(uuid.UUID)
		if !ok {
			return nil
		}
		return s.projection.RecomputeForDataset(ctx, datasetID)
	})

	return s
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /v1/datasets", s.handleCreateDataset)
	mux.HandleFunc("GET /v1/datasets", s.handleListDatasets)
	mux.HandleFunc("POST /v1/datasets/{id}/matches", s.handleReupload)
	mux.HandleFunc("GET /v1/datasets/{id}/matches", s.handleListMatches)
	mux.HandleFunc("GET /v1/datasets/{id}/analysis/goal-rates", s.handleGoalRates)
	mux.HandleFunc("GET /v1/datasets/{id}/analysis/outcomes", s.handleOutcomes)
	mux.HandleFunc("GET /v1/datasets/{id}/analysis/xg-summary", s.handleXgSummary)
	mux.HandleFunc("GET /v1/datasets/{id}/analysis/xg-series", s.handleXgSeries)
	mux.HandleFunc("GET /v1/datasets/{id}/analysis/ppg", s.handlePpg)
	mux.HandleFunc("GET /v1/datasets/{id}/analysis/weeks", s.handleWeeks)
	mux.HandleFunc("GET /v1/metrics/requests", s.handleRequestMetrics)

	return s.auth.Guard(s.loggingMiddleware(mux))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateDataset(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.OwnerIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	parsed, err := ingest.ParseSchedule(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "uploaded schedule"
	}
	now := time.Now().UTC()
	dataset := datasets.Dataset{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      name,
		Season:    r.URL.Query().Get("season"),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateDataset(r.Context(), dataset); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	summary, err := s.mergeSchedule(r.Context(), dataset.ID, parsed)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, summary)
}

func (s *Server) handleReupload(w http.ResponseWriter, r *http.Request) {
	datasetID, ok := s.datasetFromPath(w, r)
	if !ok {
		return
	}

	parsed, err := ingest.ParseSchedule(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := s.mergeSchedule(r.Context(), datasetID, parsed)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) mergeSchedule(ctx context.Context, datasetID uuid.UUID, parsed ingest.Result) (uploads.Summary, error) {
	now := time.Now().UTC()
	counts := uploads.RowCounts{Skipped: parsed.Skipped}

	for _, row := range parsed.Rows {
		row.ID = uuid.New()
		row.DatasetID = datasetID
		row.CreatedAt = now
		row.UpdatedAt = now

		decision, err := s.store.UpsertMatchByFixture(ctx, row)
		if err != nil {
			return uploads.Summary{}, err
		}
		counts.Apply(decision)
	}

	if err := s.store.RefreshDatasetRowCount(ctx, datasetID); err != nil {
		return uploads.Summary{}, err
	}
	if err := s.bus.Publish(ctx, events.Event{Name: events.DatasetUploaded, Payload: datasetID}); err != nil {
		return uploads.Summary{}, err
	}

	return uploads.Summary{DatasetID: datasetID, Rows: counts, ServerTimestamp: time.Now().UTC()}, nil
}

func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.OwnerIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	items, err := s.store.ListDatasetsByOwner(r.Context(), ownerID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"datasets": items})
}

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	datasetID, ok := s.datasetFromPath(w, r)
	if !ok {
		return
	}

	page, pageSize := parsePageParams(r)
	items, err := s.store.ListMatchesPage(r.Context(), datasetID, pageSize, (page-1)*pageSize)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	total, err := s.store.CountMatchesByDataset(r.Context(), datasetID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"matches":  items,
		"page":     page,
		"pageSize": pageSize,
		"total":    total,
	})
}

func (s *Server) handleGoalRates(w http.ResponseWriter, r *http.Request) {
	datasetID, ok := s.datasetFromPath(w, r)
	if !ok {
		return
	}
	rates, err := s.store.ListTeamGoalRates(r.Context(), datasetID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"goalRates": rates})
}

func (s *Server) handleOutcomes(w http.ResponseWriter, r *http.Request) {
	datasetID, ok := s.datasetFromPath(w, r)
	if !ok {
		return
	}
	summary, err := s.store.GetOutcomeSummary(r.Context(), datasetID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleXgSummary(w http.ResponseWriter, r *http.Request) {
	datasetID, ok := s.datasetFromPath(w, r)
	if !ok {
		return
	}
	summaries, err := s.store.ListTeamXgSummaries(r.Context(), datasetID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"teams": summaries})
}

func (s *Server) handleXgSeries(w http.ResponseWriter, r *http.Request) {
	datasetID, ok := s.datasetFromPath(w, r)
	if !ok {
		return
	}
	items, err := s.store.ListMatchesByDataset(r.Context(), datasetID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	team := normalizeTeamParam(r.URL.Query().Get("team"))
	writeJSON(w, http.StatusOK, map[string]any{
		"team":   team,
		"points": domainstats.XgSeries(items, team),
	})
}

func (s *Server) handlePpg(w http.ResponseWriter, r *http.Request) {
	datasetID, ok := s.datasetFromPath(w, r)
	if !ok {
		return
	}
	team := normalizeTeamParam(r.URL.Query().Get("team"))
	if team == "" {
		http.Error(w, "team is required", http.StatusBadRequest)
		return
	}
	compare := normalizeTeamParam(r.URL.Query().Get("compare"))

	items, err := s.store.ListMatchesByDataset(r.Context(), datasetID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	compareSeries := make([]domainstats.PpgPoint, 0)
	if compare != "" {
		compareSeries = domainstats.PointsPerGame(items, compare)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"team":          team,
		"compare":       compare,
		"series":        domainstats.PointsPerGame(items, team),
		"compareSeries": compareSeries,
	})
}

func (s *Server) handleWeeks(w http.ResponseWriter, r *http.Request) {
	datasetID, ok := s.datasetFromPath(w, r)
	if !ok {
		return
	}
	items, err := s.store.ListMatchesByDataset(r.Context(), datasetID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	index := domainstats.WeekIndex{Weeks: domainstats.Weeks(items)}
	if team := normalizeTeamParam(r.URL.Query().Get("team")); team != "" {
		index.TeamWeeks = domainstats.TeamWeeks(items, team)
	}
	writeJSON(w, http.StatusOK, index)
}

func (s *Server) handleRequestMetrics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"requests": s.recorder.Snapshot()})
}

// datasetFromPath parses the {id} segment and verifies the dataset exists,
// writing the error response itself when it does not.
func (s *Server) datasetFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	datasetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid dataset id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	dataset, err := s.store.GetDataset(r.Context(), datasetID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return uuid.Nil, false
	}
	if dataset.ID == uuid.Nil {
		http.Error(w, "dataset not found", http.StatusNotFound)
		return uuid.Nil, false
	}
	return datasetID, true
}

// The selection parameters arrive as "none" when the dashboard has no team
// picked; that is the same as absent.
func normalizeTeamParam(raw string) string {
	if raw == "none" {
		return ""
	}
	return raw
}

func parsePageParams(r *http.Request) (page, pageSize int) {
	page = 1
	pageSize = 50
	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if raw := r.URL.Query().Get("pageSize"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 200 {
			pageSize = parsed
		}
	}
	return page, pageSize
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		elapsed := time.Since(start)
		log.Printf("%s %s status=%d duration=%s", r.Method, r.URL.Path, sw.status, elapsed)
		if s.recorder != nil {
			s.recorder.Record(metrics.RequestSample{
				Path:      r.URL.Path,
				Method:    r.Method,
				Status:    sw.status,
				Latency:   elapsed,
				Timestamp: start.UTC(),
			})
		}
	})
}
