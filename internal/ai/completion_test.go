// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/Aljon0/AI-RB-API/internal/skills"
)

// completionResponse builds the minimal Chat Completions JSON body the client
// needs to decode.
func completionResponse(content string) string {
	body := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	}
	data, _ := json.Marshal(body)
	return string(data)
}

func TestOpenAIClient_Complete_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Unexpected Authorization header: %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionResponse(`["Go", "SQL", "Docker"]`)))
	}))
	defer srv.Close()

	client := NewOpenAIClient("test-key", "", srv.URL)
	got, err := client.Complete(context.Background(), "Backend Developer")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	want := []string{"Go", "SQL", "Docker"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Complete = %v, want %v", got, want)
	}
}

func TestOpenAIClient_Complete_RateLimited429(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "Too many requests"}}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient("test-key", "", srv.URL)
	_, err := client.Complete(context.Background(), "Nurse")
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("Expected ErrRateLimited, got %v", err)
	}
}

func TestOpenAIClient_Complete_RateLimitMarkerInBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"message": "Rate limit reached for gpt-3.5-turbo"}}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient("test-key", "", srv.URL)
	_, err := client.Complete(context.Background(), "Nurse")
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("Expected ErrRateLimited for rate-limit body marker, got %v", err)
	}
}

func TestOpenAIClient_Complete_OtherError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"message": "server exploded"}}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient("test-key", "", srv.URL)
	_, err := client.Complete(context.Background(), "Nurse")
	if err == nil {
		t.Fatal("Expected an error for 500 response")
	}
	if errors.Is(err, ErrRateLimited) {
		t.Errorf("500 must not be classified as rate limiting: %v", err)
	}
}

func TestOpenAIClient_Complete_UnparseableContentUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionResponse("   ")))
	}))
	defer srv.Close()

	client := NewOpenAIClient("test-key", "", srv.URL)
	got, err := client.Complete(context.Background(), "Registered Nurse")
	if err != nil {
		t.Fatalf("Degraded parse must not be an error, got %v", err)
	}

	// Whitespace-only content yields no skills, so the deterministic
	// fallback list is substituted without surfacing an error.
	want := skills.Fallback("Registered Nurse")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Complete = %v, want fallback %v", got, want)
	}
}

func TestOpenAIClient_Complete_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient("test-key", "", srv.URL)
	if _, err := client.Complete(context.Background(), "Nurse"); err == nil {
		t.Error("Expected error for empty choices")
	}
}
