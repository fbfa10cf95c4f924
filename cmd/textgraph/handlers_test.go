package main

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"textgraph"
)

func newUpstream(t *testing.T, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}, "finish_reason": "stop"},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestHandler(upstreamURL string) *handler {
	cfg := textgraph.DefaultConfig()
	cfg.LLM = textgraph.LLMConfig{Provider: "custom", Model: "test", BaseURL: upstreamURL}
	return newHandler(cfg)
}

func postJSON(t *testing.T, h *handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.handleGenerate(w, req)
	return w
}

func TestHandleGenerate(t *testing.T) {
	upstream := newUpstream(t, `{"entities":[
  {"name":"Ada","type":"person","description":""},
  {"name":"Babbage","type":"person","description":""}
],"relationships":[
  {"source":"Ada","target":"Babbage","relationship":"collaborated_with","description":""}
]}`)
	h := newTestHandler(upstream.URL)

	w := postJSON(t, h, `{"text":"Ada worked with Babbage."}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var res textgraph.Result
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(res.Nodes) != 2 || len(res.Edges) != 1 {
		t.Errorf("nodes = %d, edges = %d", len(res.Nodes), len(res.Edges))
	}
	if res.Figure == nil {
		t.Error("figure missing from response")
	}
}

func TestHandleGenerateStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		upstream   http.HandlerFunc
		body       string
		wantStatus int
	}{
		{
			name: "empty input",
			upstream: func(w http.ResponseWriter, r *http.Request) {
				t.Error("upstream must not be called for empty input")
			},
			body:       `{"text":"   "}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "invalid body",
			upstream: func(w http.ResponseWriter, r *http.Request) {
				t.Error("upstream must not be called for an invalid body")
			},
			body:       `not json`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "upstream failure",
			upstream: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":"overloaded"}`, http.StatusServiceUnavailable)
			},
			body:       `{"text":"some text"}`,
			wantStatus: http.StatusBadGateway,
		},
		{
			name: "unparseable response",
			upstream: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{
					"choices": []map[string]any{
						{"message": map[string]any{"content": "no json here"}},
					},
				})
			},
			body:       `{"text":"some text"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "empty extraction",
			upstream: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{
					"choices": []map[string]any{
						{"message": map[string]any{"content": `{"entities":[],"relationships":[]}`}},
					},
				})
			},
			body:       `{"text":"some text"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := httptest.NewServer(tt.upstream)
			defer upstream.Close()

			w := postJSON(t, newTestHandler(upstream.URL), tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestHandleGenerateMissingKey(t *testing.T) {
	// A hosted provider with no server-side key and no request key is 401.
	cfg := textgraph.DefaultConfig() // gemini
	cfg.LLM.APIKey = ""
	h := newHandler(cfg)

	w := postJSON(t, h, `{"text":"some text"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestHandleGenerateUpload(t *testing.T) {
	upstream := newUpstream(t, `{"entities":[{"name":"Go","type":"concept","description":""}],"relationships":[]}`)
	h := newTestHandler(upstream.URL)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "notes.txt")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("Go is a language."))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/generate", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	h.handleGenerate(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestHandleGenerateUploadUnsupported(t *testing.T) {
	upstream := newUpstream(t, `{"entities":[],"relationships":[]}`)
	h := newTestHandler(upstream.URL)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", "payload.exe")
	part.Write([]byte("binary"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/generate", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	h.handleGenerate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body %s)", w.Code, w.Body.String())
	}
}

func TestHandleHealth(t *testing.T) {
	h := newTestHandler("http://localhost:0")
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	h.handleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestHandleIndex(t *testing.T) {
	h := newTestHandler("http://localhost:0")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.handleIndex(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), "Knowledge Graph") {
		t.Error("page body missing title")
	}
}
