package handlers_test

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/image-forge/pkg/handlers"
)

func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()

	handlers.RespondJSON(w, http.StatusCreated, map[string]int{"succeeded": 3})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var body map[string]int
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["succeeded"] != 3 {
		t.Errorf("succeeded = %d, want 3", body["succeeded"])
	}
}

func TestRespondError(t *testing.T) {
	w := httptest.NewRecorder()
	logger := slog.New(slog.DiscardHandler)

	handlers.RespondError(w, logger, http.StatusBadRequest, errors.New("no images selected"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), "no images selected") {
		t.Errorf("body = %q, want error message", w.Body.String())
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Format string `json:"format"`
	}

	tests := []struct {
		name        string
		contentType string
		body        string
		wantErr     bool
	}{
		{"valid", "application/json", `{"format":"webp"}`, false},
		{"valid with charset", "application/json; charset=utf-8", `{"format":"webp"}`, false},
		{"unknown field", "application/json", `{"format":"webp","color":"red"}`, true},
		{"malformed", "application/json", `{"format":`, true},
		{"too large", "application/json", `{"format":"` + strings.Repeat("x", 200) + `"}`, true},
		{"form post", "application/x-www-form-urlencoded", `{"format":"webp"}`, true},
		{"text plain", "text/plain", `{"format":"webp"}`, true},
		{"missing content type", "", `{"format":"webp"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()

			got, err := handlers.DecodeJSON[payload](w, req, 128)
			if tt.wantErr {
				if err == nil {
					t.Error("DecodeJSON() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeJSON() error = %v", err)
			}
			if got.Format != "webp" {
				t.Errorf("Format = %q, want webp", got.Format)
			}
		})
	}
}

func TestDecodeStatus(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "text/plain")

	_, err := handlers.DecodeJSON[map[string]any](httptest.NewRecorder(), req, 128)
	if !errors.Is(err, handlers.ErrUnsupportedMediaType) {
		t.Fatalf("DecodeJSON() error = %v, want ErrUnsupportedMediaType", err)
	}
	if got := handlers.DecodeStatus(err); got != http.StatusUnsupportedMediaType {
		t.Errorf("DecodeStatus(media type) = %d, want 415", got)
	}
	if got := handlers.DecodeStatus(errors.New("decode request: EOF")); got != http.StatusBadRequest {
		t.Errorf("DecodeStatus(other) = %d, want 400", got)
	}
}
