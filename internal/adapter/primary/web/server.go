package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"audioctl/internal/domain"
	"audioctl/internal/logging"
	"audioctl/internal/usecase"
)

// Server is a primary adapter that exposes the mixer operations as a JSON
// API. It depends on the use case (primary port).
type Server struct {
	usecase usecase.MixerUseCase
	server  *http.Server
	logger  *zap.SugaredLogger
}

// NewServer creates the HTTP server bound to addr.
func NewServer(uc usecase.MixerUseCase, addr string) *Server {
	srv := &Server{usecase: uc, logger: logging.Named("http")}
	srv.server = &http.Server{
		Addr:              addr,
		Handler:           srv.loggingMiddleware(srv.routes()),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/card", s.handleCard)
	mux.HandleFunc("POST /api/card/refresh", s.handleRefresh)
	mux.HandleFunc("GET /api/controls", s.handleControls)

	mux.HandleFunc("GET /api/volume/{control}", s.handleGetVolume)
	mux.HandleFunc("PUT /api/volume/{control}", s.handleSetVolume)
	mux.HandleFunc("GET /api/gain/{control}", s.handleGetGain)
	mux.HandleFunc("PUT /api/gain/{control}", s.handleSetGain)
	mux.HandleFunc("GET /api/switch/{control}", s.handleGetSwitch)
	mux.HandleFunc("PUT /api/switch/{control}", s.handleSetSwitch)
	mux.HandleFunc("GET /api/phantom/{input}", s.handleGetPhantom)
	mux.HandleFunc("PUT /api/phantom/{input}", s.handleSetPhantom)
	mux.HandleFunc("GET /api/sensitivity/{control}", s.handleGetSensitivity)
	mux.HandleFunc("PUT /api/sensitivity/{control}", s.handleSetSensitivity)

	mux.HandleFunc("GET /api/send/{source}/{destination}", s.handleGetSend)
	mux.HandleFunc("PUT /api/send/{source}/{destination}", s.handleSetSend)
	mux.HandleFunc("GET /api/outputs", s.handleOutputs)
	mux.HandleFunc("GET /api/route/{input}/{output}", s.handleGetRoute)
	mux.HandleFunc("PUT /api/route/{input}/{output}", s.handleSetRoute)
	mux.HandleFunc("PUT /api/output/{output}", s.handleSetOutput)

	mux.HandleFunc("GET /api/port/{port}", s.handleGetPort)
	mux.HandleFunc("PUT /api/port/{port}", s.handleSetPort)

	mux.HandleFunc("GET /api/profiles", s.handleProfiles)
	mux.HandleFunc("GET /api/profile", s.handleGetProfile)
	mux.HandleFunc("PUT /api/profile", s.handleSetProfile)
	mux.HandleFunc("GET /api/quantum", s.handleGetQuantum)
	mux.HandleFunc("PUT /api/quantum", s.handleSetQuantum)

	mux.HandleFunc("GET /api/settings", s.handleSettings)
	mux.HandleFunc("POST /api/settings/restore", s.handleRestore)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleRoot)
	return mux
}

// Start blocks and serves HTTP traffic.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>audioctl</title>
    <style>
        body { font-family: sans-serif; max-width: 640px; margin: 50px auto; padding: 20px; }
        .info { background: #f0f0f0; padding: 15px; border-radius: 5px; margin: 20px 0; white-space: pre; }
        button { background: #007bff; color: white; border: none; padding: 10px 20px; border-radius: 5px; cursor: pointer; }
        input { padding: 8px; margin: 5px; }
    </style>
</head>
<body>
    <h1>audioctl</h1>
    <div class="info" id="health">Loading...</div>
    <div>
        <label>Buffer size:</label>
        <input type="number" id="quantum" step="32" min="32" max="2048">
        <button onclick="setQuantum()">Apply</button>
    </div>
    <script>
        async function load() {
            const health = await (await fetch('/api/health')).json();
            document.getElementById('health').textContent =
                health.map(c => (c.ok ? 'ok   ' : 'FAIL ') + c.name + ': ' + c.detail).join('\n');
            const q = await (await fetch('/api/quantum')).json();
            if (q.quantum) document.getElementById('quantum').value = q.quantum;
        }
        async function setQuantum() {
            const quantum = parseInt(document.getElementById('quantum').value);
            await fetch('/api/quantum', {
                method: 'PUT',
                headers: {'Content-Type': 'application/json'},
                body: JSON.stringify({quantum})
            });
            await load();
        }
        load();
    </script>
</body>
</html>`))
}

func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	card, err := s.usecase.Card(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"card": int(card)})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.usecase.Refresh()
	card, err := s.usecase.InitCard(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"card": int(card)})
}

func (s *Server) handleControls(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("describe") != "" {
		infos, err := s.usecase.DescribeControls(r.Context())
		if err != nil {
			s.respondError(w, err)
			return
		}
		views := make([]controlView, 0, len(infos))
		for _, info := range infos {
			views = append(views, toControlView(info))
		}
		respondJSON(w, http.StatusOK, views)
		return
	}
	controls, err := s.usecase.Controls(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, controls)
}

func (s *Server) handleGetVolume(w http.ResponseWriter, r *http.Request) {
	v, err := s.usecase.Volume(r.Context(), r.PathValue("control"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"volume": v, "db": domain.PercentToDB(v)})
}

func (s *Server) handleSetVolume(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Volume *int `json:"volume"`
	}
	if !decode(w, r, &req) || !required(w, req.Volume != nil, "volume") {
		return
	}
	s.respondDone(w, s.usecase.SetVolume(r.Context(), r.PathValue("control"), *req.Volume))
}

func (s *Server) handleGetGain(w http.ResponseWriter, r *http.Request) {
	v, err := s.usecase.Gain(r.Context(), r.PathValue("control"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"gain": v})
}

func (s *Server) handleSetGain(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Gain *int `json:"gain"`
	}
	if !decode(w, r, &req) || !required(w, req.Gain != nil, "gain") {
		return
	}
	s.respondDone(w, s.usecase.SetGain(r.Context(), r.PathValue("control"), *req.Gain))
}

type switchPayload struct {
	On *bool `json:"on"`
}

func (s *Server) handleGetSwitch(w http.ResponseWriter, r *http.Request) {
	on, err := s.usecase.Switch(r.Context(), r.PathValue("control"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"on": on})
}

func (s *Server) handleSetSwitch(w http.ResponseWriter, r *http.Request) {
	var req switchPayload
	if !decode(w, r, &req) || !required(w, req.On != nil, "on") {
		return
	}
	s.respondDone(w, s.usecase.SetSwitch(r.Context(), r.PathValue("control"), *req.On))
}

func (s *Server) handleGetPhantom(w http.ResponseWriter, r *http.Request) {
	on, err := s.usecase.Phantom(r.Context(), r.PathValue("input"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"on": on})
}

func (s *Server) handleSetPhantom(w http.ResponseWriter, r *http.Request) {
	var req switchPayload
	if !decode(w, r, &req) || !required(w, req.On != nil, "on") {
		return
	}
	s.respondDone(w, s.usecase.SetPhantom(r.Context(), r.PathValue("input"), *req.On))
}

func (s *Server) handleGetSensitivity(w http.ResponseWriter, r *http.Request) {
	v, err := s.usecase.Sensitivity(r.Context(), r.PathValue("control"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"sensitivity": v})
}

func (s *Server) handleSetSensitivity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Sensitivity string `json:"sensitivity"`
	}
	if !decode(w, r, &req) {
		return
	}
	s.respondDone(w, s.usecase.SetSensitivity(r.Context(), r.PathValue("control"), req.Sensitivity))
}

type levelPayload struct {
	Level *float64 `json:"level"`
}

func (s *Server) handleGetSend(w http.ResponseWriter, r *http.Request) {
	level, err := s.usecase.SendLevel(r.Context(), r.PathValue("source"), r.PathValue("destination"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"level": level})
}

func (s *Server) handleSetSend(w http.ResponseWriter, r *http.Request) {
	var req levelPayload
	if !decode(w, r, &req) || !required(w, req.Level != nil, "level") {
		return
	}
	s.respondDone(w, s.usecase.SetSendLevel(r.Context(), r.PathValue("source"), r.PathValue("destination"), *req.Level))
}

func (s *Server) handleOutputs(w http.ResponseWriter, r *http.Request) {
	outputs := s.usecase.Outputs()
	views := make([]map[string]string, 0, len(outputs))
	for _, o := range outputs {
		views = append(views, map[string]string{"name": o.Name, "left": o.Route.Left, "right": o.Route.Right})
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetRoute(w http.ResponseWriter, r *http.Request) {
	left, right, err := s.usecase.Route(r.Context(), r.PathValue("input"), r.PathValue("output"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"left": left, "right": right})
}

func (s *Server) handleSetRoute(w http.ResponseWriter, r *http.Request) {
	var req levelPayload
	if !decode(w, r, &req) || !required(w, req.Level != nil, "level") {
		return
	}
	s.respondDone(w, s.usecase.SetRoute(r.Context(), r.PathValue("input"), r.PathValue("output"), *req.Level))
}

func (s *Server) handleSetOutput(w http.ResponseWriter, r *http.Request) {
	var req levelPayload
	if !decode(w, r, &req) || !required(w, req.Level != nil, "level") {
		return
	}
	s.respondDone(w, s.usecase.SetOutputVolume(r.Context(), r.PathValue("output"), *req.Level))
}

func (s *Server) handleGetPort(w http.ResponseWriter, r *http.Request) {
	v, err := s.usecase.PortVolume(r.Context(), r.PathValue("port"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"volume": v})
}

func (s *Server) handleSetPort(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Volume *float64 `json:"volume"`
	}
	if !decode(w, r, &req) || !required(w, req.Volume != nil, "volume") {
		return
	}
	s.respondDone(w, s.usecase.SetPortVolume(r.Context(), r.PathValue("port"), *req.Volume))
}

func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.usecase.Profiles(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	views := make([]profileView, 0, len(profiles))
	for _, p := range profiles {
		views = append(views, profileView{Name: p.Name, Description: p.Description, Available: p.Available})
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.usecase.ActiveProfile(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"profile": profile})
}

func (s *Server) handleSetProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Profile string `json:"profile"`
	}
	if !decode(w, r, &req) || !required(w, req.Profile != "", "profile") {
		return
	}
	s.respondDone(w, s.usecase.SetProfile(r.Context(), req.Profile))
}

func (s *Server) handleGetQuantum(w http.ResponseWriter, r *http.Request) {
	q, err := s.usecase.Quantum(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"quantum": q})
}

func (s *Server) handleSetQuantum(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantum *int `json:"quantum"`
	}
	if !decode(w, r, &req) || !required(w, req.Quantum != nil, "quantum") {
		return
	}
	s.respondDone(w, s.usecase.SetQuantum(r.Context(), *req.Quantum))
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.usecase.Settings()
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toSettingsView(settings))
}

func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	s.respondDone(w, s.usecase.Restore(r.Context()))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	checks := s.usecase.Health(r.Context())
	views := make([]healthView, 0, len(checks))
	status := http.StatusOK
	for _, c := range checks {
		views = append(views, healthView{Name: c.Name, OK: c.OK, Detail: c.Detail})
		if !c.OK {
			status = http.StatusServiceUnavailable
		}
	}
	respondJSON(w, status, views)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondJSON(w, http.StatusBadRequest, errorView{Error: "invalid JSON"})
		return false
	}
	return true
}

func required(w http.ResponseWriter, ok bool, field string) bool {
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorView{Error: field + " is required"})
	}
	return ok
}

// statusFor maps an error kind to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantum), errors.Is(err, domain.ErrInvalidSensitivity):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrCommandRejected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrParseFailure):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrExecutionFailure), errors.Is(err, domain.ErrCardNotInitialized):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	s.logger.Debugw("Request failed", "status", status, "error", err)
	respondJSON(w, status, errorView{Error: err.Error()})
}

func (s *Server) respondDone(w http.ResponseWriter, err error) {
	if err != nil {
		s.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Warnf("encode JSON: %v", err)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Infow("Request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "took", time.Since(start))
	})
}
