package openai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"voice-analysis/internal/domain"
	"voice-analysis/internal/infra/openai"
)

func writeAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "voice_file.wav")
	if err := os.WriteFile(path, []byte("RIFF....WAVEfmt fake audio"), 0644); err != nil {
		t.Fatalf("writing audio: %v", err)
	}
	return path
}

func TestWhisperClient_Transcribe(t *testing.T) {
	var gotModel, gotFile, gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/audio/transcriptions") {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotModel = r.FormValue("model")
		gotAuth = r.Header.Get("Authorization")
		if _, header, err := r.FormFile("file"); err == nil {
			gotFile = header.Filename
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"text": "hello world"})
	}))
	defer server.Close()

	client := openai.NewWhisperClientWithURL("test-key", "", "", server.URL+"/v1")

	text, err := client.Transcribe(context.Background(), writeAudio(t))
	if err != nil {
		t.Fatalf("Transcribe error: %v", err)
	}

	if text != "hello world" {
		t.Errorf("text: got %q, want hello world", text)
	}
	if gotModel != "whisper-1" {
		t.Errorf("model: got %q, want whisper-1", gotModel)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("authorization: got %q", gotAuth)
	}
	if filepath.Base(gotFile) != "voice_file.wav" {
		t.Errorf("file name: got %q, want voice_file.wav", gotFile)
	}
}

func TestWhisperClient_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"message": "Incorrect API key provided",
				"type":    "invalid_request_error",
			},
		})
	}))
	defer server.Close()

	client := openai.NewWhisperClientWithURL("bad-key", "whisper-1", "", server.URL+"/v1")

	text, err := client.Transcribe(context.Background(), writeAudio(t))
	if !errors.Is(err, domain.ErrTranscription) {
		t.Fatalf("error: got %v, want ErrTranscription", err)
	}
	if text != "" {
		t.Errorf("text: got %q, want empty", text)
	}
	if !strings.Contains(err.Error(), "Incorrect API key") {
		t.Errorf("error should carry the service message: %v", err)
	}
}

func TestWhisperClient_MissingFile(t *testing.T) {
	client := openai.NewWhisperClientWithURL("test-key", "", "", "http://127.0.0.1:0/v1")

	_, err := client.Transcribe(context.Background(), filepath.Join(t.TempDir(), "missing.wav"))
	if !errors.Is(err, domain.ErrTranscription) {
		t.Errorf("error: got %v, want ErrTranscription", err)
	}
}

func TestWhisperClient_NoRecording(t *testing.T) {
	client := openai.NewWhisperClientWithURL("test-key", "", "", "http://127.0.0.1:0/v1")

	_, err := client.Transcribe(context.Background(), "")
	if !errors.Is(err, domain.ErrNoRecording) {
		t.Errorf("error: got %v, want ErrNoRecording", err)
	}
	if !errors.Is(err, domain.ErrTranscription) {
		t.Errorf("error: got %v, want ErrTranscription", err)
	}
}
