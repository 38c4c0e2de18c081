package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"audioctl/internal/adapter/secondary/alsa"
	"audioctl/internal/adapter/secondary/command"
	"audioctl/internal/adapter/secondary/pipewire"
	"audioctl/internal/adapter/secondary/repository"
	"audioctl/internal/domain"
	"audioctl/internal/resolver"
	"audioctl/internal/usecase"
)

const aplay = "card 1: Pro [Babyface Pro (72040386)], device 0: USB Audio [USB Audio]\n"

type procs struct{}

func (procs) Running(string) (bool, error)  { return true, nil }
func (procs) OnPath(b string) (string, error) { return "/usr/bin/" + b, nil }

func newTestServer(t *testing.T) (*Server, *command.DryRun) {
	t.Helper()
	run := command.NewDryRun().
		Respond(aplay, "aplay", "-l").
		Respond("Simple mixer control 'Main-Out AN1',0\n  Mono: Playback 49151 [75%] [-3.00dB]\n", "amixer", "-c", "1", "get", "Main-Out AN1").
		Respond("Simple mixer control 'Mic-AN1 48V',0\n  Mono: Playback [on]\n", "amixer", "-c", "1", "get", "Mic-AN1 48V").
		Respond("update: id:0 key:'clock.quantum' value:'1024' type:''\n", "pw-metadata", "-n", "settings").
		Fail(domain.CommandRejected("amixer", "amixer: Unable to find simple control 'Nope',0\n"), "amixer", "-c", "1", "get", "Nope")

	repo, err := repository.NewFileRepository(filepath.Join(t.TempDir(), "settings.json"))
	if err != nil {
		t.Fatal(err)
	}
	mixer := alsa.NewMixer(run, alsa.DefaultTools())
	graph := pipewire.NewGraph(run, pipewire.DefaultTools())
	res := resolver.New(mixer, graph, resolver.Names{Mixer: "Babyface", Graph: "RME_Babyface"})
	uc := usecase.NewMixerUseCase(mixer, graph, res, repo, procs{}, usecase.Options{
		Outputs:  []domain.Output{{Name: "main", Route: domain.StereoPair{Left: "AN1", Right: "AN2"}}},
		Playback: domain.StereoPair{Left: "PCM-AN1", Right: "PCM-AN2"},
		Binaries: []string{"amixer"},
	})
	return NewServer(uc, "127.0.0.1:0"), run
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func lastArgv(run *command.DryRun) string {
	calls := run.Calls()
	if len(calls) == 0 {
		return ""
	}
	return strings.Join(calls[len(calls)-1], " ")
}

func TestGetVolume(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/volume/Main-Out%20AN1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}
	var got struct {
		Volume int     `json:"volume"`
		DB     float64 `json:"db"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Volume != 75 {
		t.Fatalf("volume = %d", got.Volume)
	}
}

func TestSetVolumeClamps(t *testing.T) {
	s, run := newTestServer(t)
	rec := do(t, s, http.MethodPut, "/api/volume/Main-Out%20AN1", `{"volume":150}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}
	if got := lastArgv(run); got != "amixer -c 1 set Main-Out AN1 100%" {
		t.Fatalf("ran %q", got)
	}
}

func TestSetVolumeRequiresBody(t *testing.T) {
	s, _ := newTestServer(t)
	if rec := do(t, s, http.MethodPut, "/api/volume/Master", `{}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec := do(t, s, http.MethodPut, "/api/volume/Master", `{`); rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRejectedCarriesStderr(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/volume/Nope", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	var got errorView
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Error != "amixer: Unable to find simple control 'Nope',0\n" {
		t.Fatalf("error = %q", got.Error)
	}
}

func TestPhantom(t *testing.T) {
	s, run := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/phantom/Mic-AN1", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"on":true`) {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}
	rec = do(t, s, http.MethodPut, "/api/phantom/Mic-AN1", `{"on":false}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := lastArgv(run); got != "amixer -c 1 set Mic-AN1 48V off" {
		t.Fatalf("ran %q", got)
	}
}

func TestQuantum(t *testing.T) {
	s, run := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/quantum", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"quantum":1024`) {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}

	before := len(run.Calls())
	rec = do(t, s, http.MethodPut, "/api/quantum", `{"quantum":100}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(run.Calls()) != before {
		t.Fatal("tool invoked for an invalid quantum")
	}
}

func TestRouteUnknownOutput(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPut, "/api/route/Mic-AN1/phones", `{"level":0.5}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestOutputVolume(t *testing.T) {
	s, run := newTestServer(t)
	rec := do(t, s, http.MethodPut, "/api/output/main", `{"level":0.5}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}
	if got := lastArgv(run); got != "amixer -c 1 set PCM-AN2-AN2 50%" {
		t.Fatalf("ran %q", got)
	}
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}
}

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		domain.ErrInvalidQuantum:                           http.StatusBadRequest,
		domain.NotFound("x", "missing"):                    http.StatusNotFound,
		domain.ParseFailure("x", "bad"):                    http.StatusBadGateway,
		domain.ExecutionFailure("amixer", errors.New("x")): http.StatusServiceUnavailable,
		domain.CommandRejected("amixer", "no"):             http.StatusUnprocessableEntity,
		context.Canceled:                                   http.StatusInternalServerError,
	}
	for err, want := range cases {
		if got := statusFor(err); got != want {
			t.Errorf("statusFor(%v) = %d, want %d", err, got, want)
		}
	}
}
