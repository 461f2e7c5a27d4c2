package assist

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cutplan/internal/transcript"
)

func completionBody(content string) string {
	return fmt.Sprintf(`{"choices":[{"message":{"content":%q}}]}`, content)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *[]time.Duration) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	var sleeps []time.Duration
	client := NewClient(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "test-model",
	}, WithSleeper(func(d time.Duration) {
		sleeps = append(sleeps, d)
	}))
	return client, &sleeps
}

func TestCompleteJSON(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		fmt.Fprint(w, completionBody(`{"start":1.5,"end":3.0}`))
	})

	content, err := client.CompleteJSON(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("CompleteJSON() error = %v", err)
	}
	if content != `{"start":1.5,"end":3.0}` {
		t.Errorf("content = %q", content)
	}
}

func TestCompleteJSONRequiresAPIKey(t *testing.T) {
	client := NewClient(Config{Model: "test-model"})
	if _, err := client.CompleteJSON(context.Background(), "system", "user"); err == nil {
		t.Fatal("CompleteJSON() without api key should fail")
	}
}

func TestCompleteJSONRetriesServerErrors(t *testing.T) {
	var calls int
	client, sleeps := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			http.Error(w, "overloaded", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, completionBody(`{"ok":true}`))
	})

	content, err := client.CompleteJSON(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("CompleteJSON() error = %v", err)
	}
	if content == "" || calls != 3 {
		t.Errorf("content = %q, calls = %d, want success on third call", content, calls)
	}
	// Exponential backoff: 1s then 2s.
	if len(*sleeps) != 2 || (*sleeps)[0] != time.Second || (*sleeps)[1] != 2*time.Second {
		t.Errorf("sleeps = %v, want [1s 2s]", *sleeps)
	}
}

func TestCompleteJSONHonorsRetryAfter(t *testing.T) {
	var calls int
	client, sleeps := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Retry-After", "4")
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, completionBody(`{"ok":true}`))
	})

	if _, err := client.CompleteJSON(context.Background(), "system", "user"); err != nil {
		t.Fatalf("CompleteJSON() error = %v", err)
	}
	if len(*sleeps) != 1 || (*sleeps)[0] != 4*time.Second {
		t.Errorf("sleeps = %v, want [4s]", *sleeps)
	}
}

func TestCompleteJSONDoesNotRetryClientErrors(t *testing.T) {
	var calls int
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "bad request", http.StatusBadRequest)
	})

	if _, err := client.CompleteJSON(context.Background(), "system", "user"); err == nil {
		t.Fatal("CompleteJSON() should fail on 400")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestCompleteJSONGivesUpAfterMaxAttempts(t *testing.T) {
	var calls int
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "overloaded", http.StatusInternalServerError)
	})

	_, err := client.CompleteJSON(context.Background(), "system", "user")
	if err == nil {
		t.Fatal("CompleteJSON() should fail after retries exhaust")
	}
	if calls != defaultRetryAttempts {
		t.Errorf("calls = %d, want %d", calls, defaultRetryAttempts)
	}
}

func TestProposeSpan(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionBody("```json\n{\"start\": 10.0, \"end\": 12.0}\n```"))
	})

	tokens := []transcript.Token{
		{Word: "Hello", Start: 10, End: 11},
		{Word: "world", Start: 11, End: 12},
	}
	proposal, err := client.ProposeSpan(context.Background(), "Hello world", tokens)
	if err != nil {
		t.Fatalf("ProposeSpan() error = %v", err)
	}
	if proposal.Start != 10 || proposal.End != 12 {
		t.Errorf("proposal = %+v, want [10, 12]", proposal)
	}
}

func TestProposeSpanRejectsNoUsableRange(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionBody(`{"start": -1, "end": -1}`))
	})

	tokens := []transcript.Token{{Word: "Hello", Start: 0, End: 1}}
	if _, err := client.ProposeSpan(context.Background(), "Hello world", tokens); err == nil {
		t.Fatal("ProposeSpan() should reject a sentinel range")
	}
}

func TestProposeSpanValidatesInput(t *testing.T) {
	client := NewClient(Config{APIKey: "key"})
	if _, err := client.ProposeSpan(context.Background(), "  ", nil); err == nil {
		t.Fatal("ProposeSpan() should reject empty cue text")
	}
	if _, err := client.ProposeSpan(context.Background(), "Hello", nil); err == nil {
		t.Fatal("ProposeSpan() should reject an empty transcript")
	}
}

func TestDecodeJSONPayload(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"direct", `{"start": 1, "end": 2}`, false},
		{"fenced", "```json\n{\"start\": 1, \"end\": 2}\n```", false},
		{"prose wrapped", `Here is the range: {"start": 1, "end": 2} as requested.`, false},
		{"empty", "   ", true},
		{"no json", "sorry, I cannot help", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var parsed struct {
				Start float64 `json:"start"`
				End   float64 `json:"end"`
			}
			err := DecodeJSONPayload(tt.content, &parsed)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeJSONPayload(%q) error = %v, wantErr %v", tt.content, err, tt.wantErr)
			}
			if err == nil && (parsed.Start != 1 || parsed.End != 2) {
				t.Errorf("parsed = %+v, want {1 2}", parsed)
			}
		})
	}
}

func TestSummarizePayloadSnippetTruncates(t *testing.T) {
	long := strings.Repeat("word ", 100)
	snippet := summarizePayloadSnippet(long)
	if !strings.HasSuffix(snippet, "...") {
		t.Errorf("snippet = %q, want truncated", snippet)
	}
}
