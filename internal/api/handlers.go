package api

import (
	"fmt"
	"net/http"

	"vehicle-market-lab/internal/dashboard"
	"vehicle-market-lab/internal/domain"
	"vehicle-market-lab/internal/observability"
	"vehicle-market-lab/internal/reporting"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	opts, err := s.views.Filters(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	includeRows, err := parseBool(r.URL.Query(), paramIncludeRows)
	if err != nil {
		s.writeError(w, err)
		return
	}

	d, ok := s.computeFromQuery(w, r, includeRows)
	if !ok {
		return
	}

	etag := fmt.Sprintf("%q", d.ViewID)
	w.Header().Set("ETag", etag)
	if !includeRows && r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	d, ok := s.computeFromQuery(w, r, false)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("ETag", fmt.Sprintf("%q", d.ViewID))
	_, _ = w.Write([]byte(reporting.RenderMarkdown(d)))
	observability.RecordReport("markdown")
}

func (s *Server) handleSummaryCSV(w http.ResponseWriter, r *http.Request) {
	table, err := reporting.ParseTable(r.URL.Query().Get(paramTable))
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	d, ok := s.computeFromQuery(w, r, false)
	if !ok {
		return
	}

	content, err := reporting.RenderCSV(table, d)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", string(table)+".csv"))
	_, _ = w.Write([]byte(content))
	observability.RecordReport("csv")
}

// computeFromQuery resolves the request params against the dataset defaults
// and computes the view. On failure the error response is already written.
func (s *Server) computeFromQuery(w http.ResponseWriter, r *http.Request, includeRows bool) (*domain.Dashboard, bool) {
	ctx := r.Context()

	filters, err := s.views.Filters(ctx)
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}

	params, err := parseParams(r.URL.Query(), filters.Defaults)
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	if err := s.validateParams(params); err != nil {
		s.writeError(w, err)
		return nil, false
	}

	d, err := s.views.Compute(ctx, params, dashboard.Options{
		IncludeRows: includeRows,
		RowsLimit:   s.opts.IncludeRowsLimit,
	})
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return d, true
}
