package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/threatlingo/threatlingo/internal/oracle"
	"github.com/threatlingo/threatlingo/internal/pipeline"
)

func postQuery(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	return rr
}

func TestQueryRawInput(t *testing.T) {
	fake := oracle.NewFake("never used")
	s := New(pipeline.New(fake, pipeline.Options{}, nil), nil)

	rr := postQuery(t, s, `{"query": "8.8.8.8"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var parsed map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed["formatted_query"] != "8.8.8.8" {
		t.Fatalf("expected raw literal back, got %v", parsed["formatted_query"])
	}
	if parsed["vt_format"] != "8.8.8.8" {
		t.Fatalf("expected raw vt_format, got %v", parsed["vt_format"])
	}
	if parsed["category"] != "IP" {
		t.Fatalf("expected category IP, got %v", parsed["category"])
	}
	if fake.CallCount() != 0 {
		t.Fatalf("raw path must not call the oracle, got %d calls", fake.CallCount())
	}
}

func TestQueryEndToEnd(t *testing.T) {
	fake := &oracle.Fake{Responses: []string{
		"FILE",
		`{"file_type": {"is_negative": false, "value": "pdf"}, "min_file_size": {"value": 2097152}}`,
	}}
	s := New(pipeline.New(fake, pipeline.Options{}, nil), nil)

	rr := postQuery(t, s, `{"query": "malicious PDFs larger than 2MB"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var parsed struct {
		FormattedQuery map[string]any `json:"formatted_query"`
		VTFormat       string         `json:"vt_format"`
		Category       string         `json:"category"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Category != "FILE" {
		t.Fatalf("expected FILE, got %q", parsed.Category)
	}
	if parsed.VTFormat != "type:pdf size:2MB+" {
		t.Fatalf("unexpected vt_format %q", parsed.VTFormat)
	}
	ft, ok := parsed.FormattedQuery["file_type"].(map[string]any)
	if !ok {
		t.Fatalf("expected structured file_type, got %v", parsed.FormattedQuery["file_type"])
	}
	if ft["value"] != "pdf" {
		t.Fatalf("expected file_type value pdf, got %v", ft["value"])
	}
}

func TestQueryExplicitCategory(t *testing.T) {
	fake := oracle.NewFake(`{"ip_cidr_range": {"value": "10.0.0.0/8"}}`)
	s := New(pipeline.New(fake, pipeline.Options{}, nil), nil)

	rr := postQuery(t, s, `{"query": "internal ranges", "category": "IP"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestQueryErrorPayloads(t *testing.T) {
	cases := []struct {
		name       string
		fake       *oracle.Fake
		body       string
		wantStatus int
		wantKind   string
	}{
		{
			name:       "missing query",
			fake:       oracle.NewFake("x"),
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantKind:   "missing_query",
		},
		{
			name:       "invalid body",
			fake:       oracle.NewFake("x"),
			body:       `{"query": `,
			wantStatus: http.StatusBadRequest,
			wantKind:   "invalid_body",
		},
		{
			name:       "unknown category",
			fake:       oracle.NewFake("x"),
			body:       `{"query": "stuff", "category": "GADGET"}`,
			wantStatus: http.StatusBadRequest,
			wantKind:   "unknown_category",
		},
		{
			name:       "collection unsupported",
			fake:       oracle.NewFake("x"),
			body:       `{"query": "stuff", "category": "COLLECTION"}`,
			wantStatus: http.StatusBadRequest,
			wantKind:   "unsupported_category",
		},
		{
			name:       "classification failed",
			fake:       oracle.NewFake("no label here"),
			body:       `{"query": "gibberish"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   "classification_failed",
		},
		{
			name:       "extraction failed",
			fake:       &oracle.Fake{Responses: []string{"FILE", "no json"}},
			body:       `{"query": "weird"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   "extraction_failed",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := New(pipeline.New(tc.fake, pipeline.Options{}, nil), nil)
			rr := postQuery(t, s, tc.body)

			if rr.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d body=%s", tc.wantStatus, rr.Code, rr.Body.String())
			}

			var parsed errorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &parsed); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if parsed.Error.Kind != tc.wantKind {
				t.Fatalf("expected kind %q, got %q", tc.wantKind, parsed.Error.Kind)
			}
			if parsed.Error.Message == "" {
				t.Fatal("expected a user-visible message")
			}
		})
	}
}

func TestQueryRelevanceGateRefusal(t *testing.T) {
	fake := &oracle.Fake{Responses: []string{"false"}}
	s := New(pipeline.New(fake, pipeline.Options{RelevanceGate: true}, nil), nil)

	rr := postQuery(t, s, `{"query": "tell me a joke"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}

	var parsed errorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Error.Kind != "not_security_query" {
		t.Fatalf("expected not_security_query, got %q", parsed.Error.Kind)
	}
}

func TestQueryCORSPreflight(t *testing.T) {
	s := New(pipeline.New(oracle.NewFake("x"), pipeline.Options{}, nil), nil)

	req := httptest.NewRequest(http.MethodOptions, "/query", nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("expected CORS allow-origin header")
	}
}

func TestQueryMethodNotAllowed(t *testing.T) {
	s := New(pipeline.New(oracle.NewFake("x"), pipeline.Options{}, nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/query", nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
}

func TestHealthz(t *testing.T) {
	s := New(pipeline.New(oracle.NewFake("x"), pipeline.Options{}, nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}
