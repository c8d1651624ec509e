package httpapi

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/beamframe/beamframe/pkg/iec"
	"github.com/beamframe/beamframe/pkg/setup"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := NewServer(setup.Default(), log.New(io.Discard))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, wantStatus int, out any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("GET %s: status = %d, want %d (body %s)", url, resp.StatusCode, wantStatus, body)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	var body map[string]string
	getJSON(t, ts.URL+"/healthz", http.StatusOK, &body)
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestFrames(t *testing.T) {
	ts := newTestServer(t)

	var body frameResponse
	getJSON(t, ts.URL+"/api/frames", http.StatusOK, &body)
	if got, want := len(body.Frames), len(iec.Frames()); got != want {
		t.Fatalf("len(frames) = %d, want %d", got, want)
	}
	found := false
	for _, name := range body.Frames {
		if name == "FixedReference" {
			found = true
		}
	}
	if !found {
		t.Error("FixedReference missing from frame list")
	}
}

func TestEdges(t *testing.T) {
	ts := newTestServer(t)

	var body []edgeResponse
	getJSON(t, ts.URL+"/api/edges", http.StatusOK, &body)
	if got, want := len(body), len(iec.Edges()); got != want {
		t.Fatalf("len(edges) = %d, want %d", got, want)
	}
	for _, e := range body {
		if e.Name == "" || e.From == "" || e.To == "" {
			t.Errorf("incomplete edge entry: %+v", e)
		}
	}
}

func TestEdgeByName(t *testing.T) {
	ts := newTestServer(t)

	var body matrixResponse
	getJSON(t, ts.URL+"/api/edges/DICOMToPatient", http.StatusOK, &body)
	// Fixed -90 degree rotation about the patient X axis.
	if body.Matrix[1][2] != 1 || body.Matrix[2][1] != -1 {
		t.Errorf("DicomToPatient matrix = %v", body.Matrix)
	}

	getJSON(t, ts.URL+"/api/edges/NoSuchEdge", http.StatusNotFound, nil)
}

func TestTransformIdentityOnFreshMachine(t *testing.T) {
	ts := newTestServer(t)

	var body matrixResponse
	getJSON(t, ts.URL+"/api/transform?from=Gantry&to=FixedReference", http.StatusOK, &body)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			if math.Abs(body.Matrix[i][j]-want) > 1e-12 {
				t.Fatalf("matrix[%d][%d] = %g, want %g", i, j, body.Matrix[i][j], want)
			}
		}
	}
}

func TestTransformBadFrame(t *testing.T) {
	ts := newTestServer(t)

	getJSON(t, ts.URL+"/api/transform?from=Gantry&to=Nowhere", http.StatusBadRequest, nil)
	getJSON(t, ts.URL+"/api/transform?from=&to=Gantry", http.StatusBadRequest, nil)
	getJSON(t, ts.URL+"/api/transform?from=Gantry&to=FixedReference&beam=maybe", http.StatusBadRequest, nil)
}

func TestPostParameters(t *testing.T) {
	ts := newTestServer(t)

	p := setup.Default()
	p.Gantry.RotationDeg = 90
	buf, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(ts.URL+"/api/parameters", "application/json", strings.NewReader(string(buf)))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST status = %d, want 200", resp.StatusCode)
	}

	// The gantry edge now carries the 90 degree rotation.
	var body matrixResponse
	getJSON(t, ts.URL+"/api/transform?from=Gantry&to=FixedReference", http.StatusOK, &body)
	p0 := body.Matrix
	// Ry(90) maps (0,0,1) to (1,0,0).
	if math.Abs(p0[0][2]-1) > 1e-12 || math.Abs(p0[2][0]+1) > 1e-12 {
		t.Errorf("gantry transform = %v, want Ry(90)", p0)
	}

	// GET reflects the stored parameters.
	var stored setup.Parameters
	getJSON(t, ts.URL+"/api/parameters", http.StatusOK, &stored)
	if stored.Gantry.RotationDeg != 90 {
		t.Errorf("stored gantry rotation = %g, want 90", stored.Gantry.RotationDeg)
	}
}

func TestPostParametersRejectsUnknownFields(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/parameters", "application/json",
		strings.NewReader(`{"gantry":{"rotation_deg":10},"bogus":1}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("POST status = %d, want 400", resp.StatusCode)
	}
}

func TestRequestIDHeader(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
}
