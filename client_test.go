package hfget_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/hfget/hfget"
)

func TestClientListFiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/models/openai/whisper-tiny/tree/main" {
			http.NotFound(w, r)
			return
		}

		if r.URL.Query().Get("recursive") != "true" {
			t.Errorf("expected recursive listing, got %s", r.URL.RawQuery)
		}

		_ = json.NewEncoder(w).Encode([]hfget.FileInfo{
			{Path: "onnx/decoder.onnx", Size: 12, Type: "file"},
			{Path: "onnx", Type: "directory"},
			{Path: "config.json", Size: 7, Type: "file"},
		})
	}))
	defer srv.Close()

	base, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatal(err)
	}

	cli := &hfget.Client{Base: base}

	files, err := cli.ListFiles(context.Background(), &hfget.Repo{Owner: "openai", Name: "whisper-tiny"})
	if err != nil {
		t.Fatal(err)
	}

	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}

	if files[0].Path != "config.json" || files[1].Path != "onnx/decoder.onnx" {
		t.Errorf("unexpected order: %s, %s", files[0].Path, files[1].Path)
	}
}

func TestClientListFilesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
	}))
	defer srv.Close()

	base, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatal(err)
	}

	cli := &hfget.Client{Base: base}

	_, err = cli.ListFiles(context.Background(), &hfget.Repo{Owner: "openai", Name: "whisper-tiny"})
	if err == nil {
		t.Fatal("expected error")
	}

	if !strings.Contains(err.Error(), "401") || !strings.Contains(err.Error(), "Invalid credentials") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestClientResolveURL(t *testing.T) {
	cli := &hfget.Client{}

	url := cli.ResolveURL(&hfget.Repo{Owner: "openai", Name: "whisper-tiny"}, "config.json")
	expected := "https://huggingface.co/openai/whisper-tiny/resolve/main/config.json"
	if url != expected {
		t.Errorf("ResolveURL = %s, expected %s", url, expected)
	}
}

func TestValidateRepo(t *testing.T) {
	tests := []struct {
		repo  hfget.Repo
		valid bool
	}{
		{hfget.Repo{Owner: "openai", Name: "whisper-tiny"}, true},
		{hfget.Repo{Owner: "openai", Name: "whisper-tiny", Revision: "refs/pr/1"}, true},
		{hfget.Repo{Owner: "", Name: "whisper-tiny"}, false},
		{hfget.Repo{Owner: "openai", Name: "has spaces"}, false},
	}

	for _, test := range tests {
		err := hfget.ValidateRepo(&test.repo)
		if test.valid && err != nil {
			t.Errorf("ValidateRepo(%v): %v", test.repo, err)
		} else if !test.valid && err == nil {
			t.Errorf("ValidateRepo(%v) expected error", test.repo)
		}
	}
}
