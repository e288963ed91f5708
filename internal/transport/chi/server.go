// Package chi exposes the search engine over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/casevault/filesift/internal/domain"
	"github.com/casevault/filesift/internal/domain/casefile"
	"github.com/casevault/filesift/internal/domain/occurrence"
	"github.com/casevault/filesift/internal/domain/search/filter"
	"github.com/casevault/filesift/internal/domain/search/result"
	healthuc "github.com/casevault/filesift/internal/usecase/health"
)

// searchRunner runs a compiled filter list.
type searchRunner interface {
	RunQueries(ctx context.Context, filters []filter.Filter) ([]*result.File, error)
}

// catalogWriter is the catalog ingest surface.
type catalogWriter interface {
	InsertDataSource(ctx context.Context, name string) (casefile.DataSource, error)
	InsertFile(ctx context.Context, f *casefile.CaseFile) error
	InsertKeywordHit(ctx context.Context, fileObjID int64, listName, keyword string) error
	ListDataSources(ctx context.Context) ([]casefile.DataSource, error)
}

// OccurrenceWriter is the occurrence ingest surface. Nil when the occurrence
// store is not configured.
type OccurrenceWriter interface {
	LookupFrequencyType(ctx context.Context) (occurrence.AttributeType, error)
	RecordOccurrence(ctx context.Context, attrType occurrence.AttributeType, hash, caseID, dataSourceID string) error
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server wires the HTTP API to the search engine and repositories.
type Server struct {
	search            searchRunner
	catalog           catalogWriter
	occurrences       OccurrenceWriter
	health            *healthuc.Service
	logger            *zap.Logger
	enrichmentWorkers int
	errorHandlers     []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search searchRunner,
	catalog catalogWriter,
	occurrences OccurrenceWriter,
	health *healthuc.Service,
	logger *zap.Logger,
	enrichmentWorkers int,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		search:            search,
		catalog:           catalog,
		occurrences:       occurrences,
		health:            health,
		logger:            logger,
		enrichmentWorkers: enrichmentWorkers,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, CodeInvalidInput),
		sentinelHandler(domain.ErrMisconfiguredFilter, http.StatusConflict, CodeMisconfiguredFilter),
		sentinelHandler(domain.ErrStoreFailure, http.StatusBadGateway, CodeStoreFailure),
		sentinelHandler(domain.ErrEnrichmentFailure, http.StatusBadGateway, CodeEnrichmentFailure),
	}
	return s
}

// Routes registers all API routes on the router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/search", s.Search)
	r.Get("/datasources", s.ListDataSources)
	r.Post("/catalog/datasources", s.CreateDataSource)
	r.Post("/catalog/files", s.IngestFile)
	r.Post("/occurrences", s.RecordOccurrence)
	r.Get("/health", s.Health)
	r.Handle("/metrics", promhttp.Handler())
}

// Search handles POST /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	filters, err := buildFilters(req.Filters, s.enrichmentWorkers)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	files, err := s.search.RunQueries(r.Context(), filters)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := SearchResponse{Count: len(files), Files: make([]FileResult, 0, len(files))}
	for _, rf := range files {
		resp.Files = append(resp.Files, fileToResult(rf))
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListDataSources handles GET /datasources.
func (s *Server) ListDataSources(w http.ResponseWriter, r *http.Request) {
	sources, err := s.catalog.ListDataSources(r.Context())
	if err != nil {
		s.logger.Error("list data sources", zap.Error(err))
		writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
		return
	}

	out := make([]DataSourceResponse, 0, len(sources))
	for _, ds := range sources {
		out = append(out, DataSourceResponse{ObjID: ds.ObjID(), Name: ds.Name()})
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateDataSource handles POST /catalog/datasources.
func (s *Server) CreateDataSource(w http.ResponseWriter, r *http.Request) {
	var req DataSourceResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Data source name is required")
		return
	}

	ds, err := s.catalog.InsertDataSource(r.Context(), req.Name)
	if err != nil {
		s.logger.Error("create data source", zap.Error(err))
		writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, DataSourceResponse{ObjID: ds.ObjID(), Name: ds.Name()})
}

// IngestFile handles POST /catalog/files.
func (s *Server) IngestFile(w http.ResponseWriter, r *http.Request) {
	var req IngestFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Name == "" || req.DataSourceObjID <= 0 {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "File name and data source are required")
		return
	}

	f := &casefile.CaseFile{
		DataSourceObjID: req.DataSourceObjID,
		Name:            req.Name,
		ParentPath:      req.ParentPath,
		Size:            req.Size,
		MimeType:        req.MimeType,
		MD5Hash:         req.MD5Hash,
	}
	if err := s.catalog.InsertFile(r.Context(), f); err != nil {
		s.logger.Error("ingest file", zap.Error(err))
		writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
		return
	}
	for _, hit := range req.KeywordHits {
		if err := s.catalog.InsertKeywordHit(r.Context(), f.ObjID, hit.ListName, hit.Keyword); err != nil {
			s.logger.Error("ingest keyword hit", zap.Error(err))
			writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
			return
		}
	}
	writeJSON(w, http.StatusCreated, FileResult{
		ObjID:           f.ObjID,
		DataSourceObjID: f.DataSourceObjID,
		Name:            f.Name,
		ParentPath:      f.ParentPath,
		Size:            f.Size,
		MimeType:        f.MimeType,
		MD5Hash:         f.MD5Hash,
	})
}

// RecordOccurrence handles POST /occurrences.
func (s *Server) RecordOccurrence(w http.ResponseWriter, r *http.Request) {
	if s.occurrences == nil {
		writeError(w, http.StatusConflict, CodeMisconfiguredFilter, "Occurrence store is not configured")
		return
	}

	var req RecordOccurrenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.MD5Hash == "" {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Content hash is required")
		return
	}

	attrType, err := s.occurrences.LookupFrequencyType(r.Context())
	if err != nil {
		s.logger.Error("lookup frequency type", zap.Error(err))
		writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
		return
	}
	if err := s.occurrences.RecordOccurrence(r.Context(), attrType, req.MD5Hash, req.CaseID, req.DataSourceID); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// handleDomainError maps a search error onto an HTTP response.
func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("search error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err, err.Error()) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
