package pinning

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dyslex7c/Decentralized-Twitter/pkg/models"
)

func TestPin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pinning/pinFileToIPFS" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer jwt-token" {
			t.Errorf("missing bearer token, got %q", got)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "cat.png" {
			t.Errorf("filename not forwarded: %s", header.Filename)
		}
		content, _ := io.ReadAll(file)
		if string(content) != "pngbytes" {
			t.Errorf("content not forwarded: %q", content)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"IpfsHash": "QmTest123", "PinSize": 8})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, JWT: "jwt-token"})
	cid, err := client.Pin(context.Background(), "cat.png", strings.NewReader("pngbytes"))
	if err != nil {
		t.Fatalf("Pin: %v", err)
	}
	if cid != "QmTest123" {
		t.Fatalf("unexpected cid %q", cid)
	}
}

func TestPinRejectsEmptyHash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"PinSize": 0})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	if _, err := client.Pin(context.Background(), "x", strings.NewReader("data")); err == nil {
		t.Fatal("expected error for missing content id")
	}
}

func TestPinPropagatesAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	if _, err := client.Pin(context.Background(), "x", strings.NewReader("data")); err == nil {
		t.Fatal("expected error on 403")
	}
}

func TestGatewayURL(t *testing.T) {
	client := NewClient(Config{GatewayURL: "https://gateway.pinata.cloud/"})
	if got := client.GatewayURL("QmTest123"); got != "https://gateway.pinata.cloud/ipfs/QmTest123" {
		t.Fatalf("unexpected gateway url %s", got)
	}
	if got := client.GatewayURL(""); got != "" {
		t.Fatalf("empty cid should yield empty url, got %s", got)
	}
}

func TestProbeKind(t *testing.T) {
	contentType := "image/png"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("expected HEAD, got %s", r.Method)
		}
		if !strings.HasPrefix(r.URL.Path, "/ipfs/") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", contentType)
	}))
	defer server.Close()

	client := NewClient(Config{GatewayURL: server.URL})

	kind, err := client.ProbeKind(context.Background(), "QmTest123")
	if err != nil {
		t.Fatalf("ProbeKind: %v", err)
	}
	if kind != models.MediaKindImage {
		t.Fatalf("expected image, got %s", kind)
	}

	contentType = "video/mp4"
	kind, err = client.ProbeKind(context.Background(), "QmTest123")
	if err != nil {
		t.Fatalf("ProbeKind: %v", err)
	}
	if kind != models.MediaKindVideo {
		t.Fatalf("expected video, got %s", kind)
	}

	contentType = "application/pdf"
	kind, err = client.ProbeKind(context.Background(), "QmTest123")
	if err != nil {
		t.Fatalf("ProbeKind: %v", err)
	}
	if kind != models.MediaKindFile {
		t.Fatalf("expected file, got %s", kind)
	}
}

func TestProbeKindEmptyCID(t *testing.T) {
	client := NewClient(Config{GatewayURL: "https://gateway.invalid"})
	kind, err := client.ProbeKind(context.Background(), "")
	if err != nil {
		t.Fatalf("ProbeKind: %v", err)
	}
	if kind != models.MediaKindNone {
		t.Fatalf("expected none, got %q", kind)
	}
}

func TestKindFromContentType(t *testing.T) {
	tests := []struct {
		contentType string
		want        models.MediaKind
	}{
		{"image/jpeg", models.MediaKindImage},
		{"image/png; charset=binary", models.MediaKindImage},
		{"VIDEO/MP4", models.MediaKindVideo},
		{"application/octet-stream", models.MediaKindFile},
		{"", models.MediaKindFile},
	}
	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			if got := KindFromContentType(tt.contentType); got != tt.want {
				t.Errorf("KindFromContentType(%q) = %q, want %q", tt.contentType, got, tt.want)
			}
		})
	}
}
