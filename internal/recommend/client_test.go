package recommend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("unexpected content type: %s", got)
		}

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if !reflect.DeepEqual(req.Main, []int{1, 2}) {
			t.Errorf("unexpected main ids: %v", req.Main)
		}

		json.NewEncoder(w).Encode(Response{
			Main:  []int{1, 2, 3, 4},
			Extra: []int{10},
			Side:  []int{20},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	got, err := client.Complete(context.Background(), &Request{
		Main:  []int{1, 2},
		Extra: []int{},
		Side:  []int{},
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if !reflect.DeepEqual(got.Main, []int{1, 2, 3, 4}) {
		t.Errorf("unexpected main: %v", got.Main)
	}
	if !reflect.DeepEqual(got.Extra, []int{10}) {
		t.Errorf("unexpected extra: %v", got.Extra)
	}
	if !reflect.DeepEqual(got.Side, []int{20}) {
		t.Errorf("unexpected side: %v", got.Side)
	}
}

func TestCompleteServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.Complete(context.Background(), &Request{}); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestCompleteNoEndpoint(t *testing.T) {
	client := NewClient("")
	if _, err := client.Complete(context.Background(), &Request{}); err == nil {
		t.Error("expected error for unconfigured endpoint")
	}
}
