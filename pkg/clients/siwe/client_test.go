package siwe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/metamask/message" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		var req MessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Address == "" || req.Domain == "" || req.URI == "" {
			t.Errorf("incomplete message request: %+v", req)
		}
		_ = json.NewEncoder(w).Encode(MessageResponse{Message: "Sign in\nNonce: 42"})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	resp, err := client.Message(context.Background(), MessageRequest{
		Address: "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045",
		Domain:  "localhost",
		URI:     "http://localhost",
	})
	if err != nil {
		t.Fatalf("Message: %v", err)
	}
	if resp.Message != "Sign in\nNonce: 42" {
		t.Fatalf("unexpected challenge: %q", resp.Message)
	}
}

func TestMessageRejectsEmptyChallenge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(MessageResponse{})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	if _, err := client.Message(context.Background(), MessageRequest{Address: "0xabc"}); err == nil {
		t.Fatal("expected error for empty challenge")
	}
}

func TestVerify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/metamask/verify" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req VerifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Signature != "0xsig" {
			t.Errorf("signature not forwarded: %q", req.Signature)
		}
		_ = json.NewEncoder(w).Encode(VerifyResponse{Success: true, Token: "tok"})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	resp, err := client.Verify(context.Background(), VerifyRequest{Message: "m", Signature: "0xsig"})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !resp.Success || resp.Token != "tok" {
		t.Fatalf("unexpected verdict: %+v", resp)
	}
}

func TestVerifyFailurePropagatesStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(VerifyResponse{Success: false, Error: "bad signature"})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	if _, err := client.Verify(context.Background(), VerifyRequest{Message: "m", Signature: "0xsig"}); err == nil {
		t.Fatal("expected error on 401")
	}
}
