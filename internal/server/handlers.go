package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/meridian-legal/pfas-intake/internal/intake"
	"github.com/meridian-legal/pfas-intake/internal/model"
)

// coordinateRequest decodes the verdict request body. Pointers distinguish an
// absent field from a legitimate zero: (0, 0) is a valid coordinate.
type coordinateRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (cr coordinateRequest) complete() bool {
	return cr.Latitude != nil && cr.Longitude != nil
}

func (cr coordinateRequest) coordinate() model.Coordinate {
	return model.Coordinate{Latitude: *cr.Latitude, Longitude: *cr.Longitude}
}

func (s *Server) handleGeolocation(w http.ResponseWriter, r *http.Request) {
	var req coordinateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.complete() {
		writeError(w, http.StatusBadRequest, "Latitude and longitude are required")
		return
	}

	v := s.verdicts.Check(r.Context(), req.coordinate())
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleGeolocationBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Coordinates []coordinateRequest `json:"coordinates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Coordinates) == 0 {
		writeError(w, http.StatusBadRequest, "coordinates are required")
		return
	}
	if len(req.Coordinates) > s.opts.BatchMaxCoords {
		writeError(w, http.StatusBadRequest, "too many coordinates")
		return
	}
	for _, c := range req.Coordinates {
		if !c.complete() {
			writeError(w, http.StatusBadRequest, "Latitude and longitude are required")
			return
		}
	}

	verdicts := make([]model.Verdict, len(req.Coordinates))
	g, gCtx := errgroup.WithContext(r.Context())
	g.SetLimit(s.opts.BatchConcurrency)
	for i, c := range req.Coordinates {
		g.Go(func() error {
			// Check never fails; lookup errors degrade inside the verdict.
			verdicts[i] = s.verdicts.Check(gCtx, c.coordinate())
			return nil
		})
	}
	_ = g.Wait()

	writeJSON(w, http.StatusOK, map[string]any{"verdicts": verdicts})
}

func (s *Server) handleZones(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"zones": s.catalog.Zones()})
}

func (s *Server) handleZonesGeoJSON(w http.ResponseWriter, _ *http.Request) {
	data, err := s.catalog.GeoJSON()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode zones")
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// claimState is the wizard snapshot returned by every claim endpoint.
type claimState struct {
	SessionID   string              `json:"session_id"`
	Status      intake.Status       `json:"status"`
	Step        string              `json:"step"`
	Verdict     *model.Verdict      `json:"verdict,omitempty"`
	FieldErrors []model.FieldError  `json:"field_errors,omitempty"`
	Data        model.ClaimFormData `json:"data"`
}

func (s *Server) claimState(id string, wiz *intake.Wizard) claimState {
	return claimState{
		SessionID: id,
		Status:    wiz.Status(),
		Step:      wiz.Step().String(),
		Data:      wiz.Data(),
	}
}

func (s *Server) handleCreateClaim(w http.ResponseWriter, r *http.Request) {
	var req coordinateRequest
	// The body is optional: a claim can start without a location check.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var v *model.Verdict
	if req.complete() {
		checked := s.verdicts.Check(r.Context(), req.coordinate())
		v = &checked
	}

	id, wiz := s.sessions.Create(v)
	state := s.claimState(id, wiz)
	state.Verdict = v
	writeJSON(w, http.StatusCreated, state)
}

// session looks up the wizard for the request, writing a 404 when absent.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (string, *intake.Wizard, bool) {
	id := chi.URLParam(r, "id")
	wiz, ok := s.sessions.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown claim session")
		return "", nil, false
	}
	return id, wiz, true
}

func (s *Server) handleGetClaim(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.claimState(id, wiz))
}

func (s *Server) handleSetSection(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := s.session(w, r)
	if !ok {
		return
	}

	var err error
	switch chi.URLParam(r, "section") {
	case "personal":
		var p model.PersonalInfo
		if decodeErr := json.NewDecoder(r.Body).Decode(&p); decodeErr != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		err = wiz.SetPersonal(p)
	case "injury":
		var in model.InjuryInfo
		if decodeErr := json.NewDecoder(r.Body).Decode(&in); decodeErr != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		err = wiz.SetInjury(in)
	case "exposure":
		var e model.ExposureInfo
		if decodeErr := json.NewDecoder(r.Body).Decode(&e); decodeErr != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		err = wiz.SetExposure(e)
	case "legal":
		var l model.LegalInfo
		if decodeErr := json.NewDecoder(r.Body).Decode(&l); decodeErr != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		err = wiz.SetLegal(l)
	default:
		writeError(w, http.StatusNotFound, "unknown section")
		return
	}

	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.claimState(id, wiz))
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := s.session(w, r)
	if !ok {
		return
	}

	fieldErrs, err := wiz.Next()
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if len(fieldErrs) > 0 {
		state := s.claimState(id, wiz)
		state.FieldErrors = fieldErrs
		writeJSON(w, http.StatusUnprocessableEntity, state)
		return
	}
	writeJSON(w, http.StatusOK, s.claimState(id, wiz))
}

func (s *Server) handlePrevious(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := wiz.Previous(); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.claimState(id, wiz))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := s.session(w, r)
	if !ok {
		return
	}

	fieldErrs, err := wiz.Submit(r.Context(), s.sink)
	switch {
	case eris.Is(err, intake.ErrDisqualified):
		writeError(w, http.StatusConflict, "claim is disqualified")
		return
	case eris.Is(err, intake.ErrNotOnFinalStep), eris.Is(err, intake.ErrTerminal):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		// Sink failure: report it honestly and leave the session retryable.
		writeError(w, http.StatusBadGateway, "submission failed, please try again")
		return
	}
	if len(fieldErrs) > 0 {
		state := s.claimState(id, wiz)
		state.FieldErrors = fieldErrs
		writeJSON(w, http.StatusUnprocessableEntity, state)
		return
	}
	writeJSON(w, http.StatusOK, s.claimState(id, wiz))
}

func (s *Server) handleSettlements(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"settlements":      s.library.Settlements,
		"total_amount_usd": s.library.TotalSettlementAmount(),
	})
}

func (s *Server) handleTestimonials(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"testimonials": s.library.Testimonials})
}
