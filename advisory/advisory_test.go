package advisory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Client{
		APIKey:     "test-key",
		Model:      "gemini-1.5-flash",
		BaseURL:    srv.URL,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestGenerateExtractsFirstCandidate(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Contents) != 1 || !strings.Contains(req.Contents[0].Parts[0].Text, "soybean") {
			t.Fatalf("prompt not forwarded: %+v", req.Contents)
		}
		json.NewEncoder(w).Encode(generateResponse{
			Candidates: []struct {
				Content content `json:"content"`
			}{{Content: content{Parts: []part{{Text: "sow after first rain"}}}}},
		})
	})

	got, err := c.Generate(context.Background(), "advice for soybean")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "sow after first rain" {
		t.Fatalf("got %q", got)
	}
}

func TestGenerateErrorOnUpstreamFailure(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota"}`, http.StatusTooManyRequests)
	})
	if _, err := c.Generate(context.Background(), "anything"); err == nil {
		t.Fatalf("expected error on 429")
	}
}

func TestGenerateErrorOnEmptyCandidates(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})
	if _, err := c.Generate(context.Background(), "anything"); err == nil {
		t.Fatalf("expected error on empty candidates")
	}
}

func TestGenerateRequiresKey(t *testing.T) {
	c := &Client{HTTPClient: http.DefaultClient}
	if _, err := c.Generate(context.Background(), "x"); err == nil {
		t.Fatalf("expected error without api key")
	}
}

func TestFallbackFor(t *testing.T) {
	if fallbackFor("en") != fallbackAnswer {
		t.Fatalf("en fallback wrong")
	}
	if fallbackFor("mr") != fallbackAnswerMR {
		t.Fatalf("mr fallback wrong")
	}
	if fallbackFor("") != fallbackAnswer {
		t.Fatalf("default fallback wrong")
	}
}
