package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/samerh/leadline/internal/models"
)

// TestBuildScriptPrompt verifies the business context lands in the prompt
func TestBuildScriptPrompt(t *testing.T) {
	business := &models.Business{
		Name:       "Alpha Diner",
		Address:    "1 First Ave, New York, NY",
		Rating:     4.3,
		Categories: []string{"restaurant", "diner"},
	}

	prompt := buildScriptPrompt("Web Design & Development", "restaurant", business)

	for _, want := range []string{
		"Service provided: Web Design & Development",
		"Business name: Alpha Diner",
		"Business type: restaurant, diner",
		"Location: 1 First Ave, New York, NY",
		"Rating: 4.3",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

// TestBuildScriptPromptDefaults verifies fallbacks for sparse records
func TestBuildScriptPromptDefaults(t *testing.T) {
	business := &models.Business{Name: "Beta Pizza"}

	prompt := buildScriptPrompt("SEO", "pizza", business)

	if !strings.Contains(prompt, "Business type: pizza") {
		t.Error("expected search query as business type when categories are empty")
	}
	if !strings.Contains(prompt, "Location: your area") {
		t.Error("expected location fallback for empty address")
	}
	if !strings.Contains(prompt, "Rating: N/A") {
		t.Error("expected N/A rating for unrated business")
	}
}

// TestGenerateParsesCompletion exercises the client against a stub server
func TestGenerateParsesCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Model != scriptModel {
			t.Errorf("model = %q, want %q", req.Model, scriptModel)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "  Hi, quick question for you. [PAUSE]  "}},
			},
		})
	}))
	defer srv.Close()

	client := NewScriptClient("test-key", nil)
	client.baseURL = srv.URL

	script, err := client.Generate("SEO", "restaurant", &models.Business{Name: "Alpha Diner"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if script != "Hi, quick question for you. [PAUSE]" {
		t.Errorf("Generate() = %q, want trimmed completion", script)
	}
}

// TestGenerateWithoutKey verifies a missing key errors instead of calling out
func TestGenerateWithoutKey(t *testing.T) {
	client := NewScriptClient("", nil)
	if _, err := client.Generate("SEO", "restaurant", &models.Business{Name: "X"}); err == nil {
		t.Error("expected error with no API key")
	}
}

// TestFallbackScript verifies the offline template mentions the prospect
func TestFallbackScript(t *testing.T) {
	script := FallbackScript("SEO & Online Visibility", "restaurant", "Alpha Diner")

	if !strings.Contains(script, "Alpha Diner") {
		t.Error("fallback script missing business name")
	}
	if !strings.Contains(script, "SEO & Online Visibility") {
		t.Error("fallback script missing caller service")
	}
	if !strings.Contains(script, "[PAUSE") {
		t.Error("fallback script missing pause marker")
	}
}
