package server

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/artsmap/artsmap/internal/dataset"
	"github.com/artsmap/artsmap/internal/geo"
)

// featureSummary is one row of the renderer's table: the feature's plain
// data plus its anchor coordinate.
type featureSummary struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	City         string            `json:"city"`
	Neighborhood string            `json:"neighborhood"`
	Type         dataset.SpaceType `json:"type"`
	URL          string            `json:"url,omitempty"`
	Lon          float64           `json:"lon"`
	Lat          float64           `json:"lat"`
}

// selectionState describes the active selection and its overlap group for
// the popup's "i / N, next" control.
type selectionState struct {
	Feature featureSummary `json:"feature"`
	Index   int            `json:"index"`
	Size    int            `json:"size"`
}

// stateResponse is the renderer boundary: everything the renderer needs to
// draw, as plain data.
type stateResponse struct {
	Loading       bool                    `json:"loading"`
	Error         string                  `json:"error,omitempty"`
	Cities        []string                `json:"cities"`
	Neighborhoods []string                `json:"neighborhoods"`
	Filter        dataset.FilterSelection `json:"filter"`
	Visible       []featureSummary        `json:"visible"`
	Selection     *selectionState         `json:"selection,omitempty"`
	Viewport      *geo.ViewState          `json:"viewport,omitempty"`
}

func (s *Server) handleFeatures(w http.ResponseWriter, r *http.Request) {
	if err := s.session.LoadErr(); err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	data, err := s.session.MarshalFeatures()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	token, err := s.resolveToken(r.Context())
	if err != nil {
		s.log.Error("map token unavailable", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleBoundaries(w http.ResponseWriter, r *http.Request) {
	if s.boundaryPath == "" {
		writeError(w, http.StatusNotFound, "no boundary file configured")
		return
	}
	if _, err := os.Stat(s.boundaryPath); err != nil {
		writeError(w, http.StatusNotFound, "boundary file unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	http.ServeFile(w, r, s.boundaryPath)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.currentState())
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var sel dataset.FilterSelection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		writeError(w, http.StatusBadRequest, "malformed filter selection")
		return
	}
	s.session.SetFilter(sel)
	writeJSON(w, http.StatusOK, s.currentState())
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeError(w, http.StatusBadRequest, "malformed selection")
		return
	}
	if !s.session.Activate(req.ID) {
		writeError(w, http.StatusNotFound, "unknown feature id")
		return
	}
	writeJSON(w, http.StatusOK, s.currentState())
}

func (s *Server) handleSelectNext(w http.ResponseWriter, r *http.Request) {
	s.session.CycleNext()
	writeJSON(w, http.StatusOK, s.currentState())
}

func (s *Server) handleDeselect(w http.ResponseWriter, r *http.Request) {
	s.session.Deselect()
	writeJSON(w, http.StatusOK, s.currentState())
}

func (s *Server) currentState() stateResponse {
	resp := stateResponse{
		Loading:       s.session.Loading(),
		Cities:        s.session.Cities(),
		Neighborhoods: s.session.Neighborhoods(),
		Filter:        s.session.Filter(),
		Visible:       summarize(s.session.Filtered()),
	}
	if err := s.session.LoadErr(); err != nil {
		resp.Error = err.Error()
	}
	if vs, ok := s.session.Viewport(); ok {
		resp.Viewport = &vs
	}
	if selected, ok := s.session.Selected(); ok {
		_, index, size := s.session.Overlap()
		resp.Selection = &selectionState{
			Feature: summary(selected),
			Index:   index,
			Size:    size,
		}
	}
	return resp
}

func summarize(features []dataset.Feature) []featureSummary {
	out := make([]featureSummary, len(features))
	for i, f := range features {
		out[i] = summary(f)
	}
	return out
}

func summary(f dataset.Feature) featureSummary {
	sum := featureSummary{
		ID:           f.ID(),
		Name:         f.Name(),
		City:         f.City(),
		Neighborhood: f.Neighborhood(),
		Type:         f.Class(),
		URL:          f.URL(),
	}
	if a, ok := f.Anchor(); ok {
		sum.Lon = a[0]
		sum.Lat = a[1]
	}
	return sum
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
