package web

import (
	"net/http"

	"github.com/JonMunkholm/rollfinder/internal/core"
	"github.com/JonMunkholm/rollfinder/internal/logging"
	"github.com/JonMunkholm/rollfinder/internal/sheet"
	"github.com/JonMunkholm/rollfinder/internal/web/templates"
	"github.com/go-chi/chi/v5"
)

const pageTitle = "Student Lookup"

// OptionsResponse is the body of GET /api/options/{level}.
// An empty Values list means the control is disabled.
type OptionsResponse struct {
	Level  string   `json:"level"`
	Values []string `json:"values"`
}

// RecordResponse is the body of GET /api/record.
type RecordResponse struct {
	Record  sheet.Record `json:"record"`
	Columns []string     `json:"columns"`
}

// handleIndex renders the lookup page, or only the cascade fragment for HTMX.
// The page is always rendered, even before the dataset is ready; the banner
// explains why the controls are disabled.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := s.lookupData(parseSelection(r))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	component := templates.Page(pageTitle, data)
	if isHTMX(r) {
		component = templates.Lookup(data)
	}
	if err := component.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "error", err)
	}
}

// lookupData builds the fragment model for sel from one snapshot of the
// status and dataset, so enabled controls never carry the loading poll.
func (s *Server) lookupData(sel selection) templates.LookupData {
	st, ds := s.service.Snapshot()
	data := templates.LookupData{Banner: buildBanner(st)}

	if ds == nil {
		data.Levels = buildLevels(core.View{})
		return data
	}

	v := sel.replay(ds.NewCascade())
	data.Levels = buildLevels(v)
	data.Record = recordFields(ds.Columns(), v.Record)
	data.NotFound = v.Phase == core.PhaseNotFound
	return data
}

// handleStatus returns the current load status.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.service.Status())
}

// handleOptions returns the option list for one level.
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	level := chi.URLParam(r, "level")
	q := r.URL.Query()

	values, err := s.service.Options(core.Role(level), q.Get("class"), q.Get("division"))
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	writeJSON(w, r, http.StatusOK, OptionsResponse{Level: level, Values: values})
}

// handleRecord returns the record for a complete selection, or 404 (REC001).
func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	rec, err := s.service.FindRecord(q.Get("class"), q.Get("division"), q.Get("roll"))
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	ds, _ := s.service.Dataset()
	writeJSON(w, r, http.StatusOK, RecordResponse{Record: rec, Columns: ds.Columns()})
}

// handleCascade replays the query selection and returns the resulting view.
func (s *Server) handleCascade(w http.ResponseWriter, r *http.Request) {
	c, err := s.service.NewCascade()
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	q := r.URL.Query()
	sel := selection{Class: q.Get("class"), Division: q.Get("division"), Roll: q.Get("roll")}
	writeJSON(w, r, http.StatusOK, sel.replay(c))
}

// handleHealthz reports 200 once the dataset is loaded, 503 otherwise.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	st := s.service.Status()
	if !st.Ready {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(st.Message + "\n"))
		return
	}
	_, _ = w.Write([]byte("ok\n"))
}
