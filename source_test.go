package hfget_test

import (
	"testing"

	"github.com/hfget/hfget"
)

func TestParseSourceFile(t *testing.T) {
	tests := []struct {
		raw      string
		url      string
		filename string
	}{
		{
			"https://huggingface.co/openai/whisper-tiny/resolve/main/model.safetensors",
			"https://huggingface.co/openai/whisper-tiny/resolve/main/model.safetensors",
			"model.safetensors",
		},
		{
			"https://huggingface.co/openai/whisper-tiny/blob/main/onnx/decoder.onnx?download=true",
			"https://huggingface.co/openai/whisper-tiny/resolve/main/onnx/decoder.onnx",
			"decoder.onnx",
		},
		{
			"https://hf-mirror.com/TheBloke/Llama-2-7B-GGUF/resolve/main/llama-2-7b.Q4_K_M.gguf",
			"https://hf-mirror.com/TheBloke/Llama-2-7B-GGUF/resolve/main/llama-2-7b.Q4_K_M.gguf",
			"llama-2-7b.Q4_K_M.gguf",
		},
		{
			"https://example.com/files/archive%20v2.zip",
			"https://example.com/files/archive%20v2.zip",
			"archive v2.zip",
		},
		{
			"https://example.com/",
			"https://example.com/",
			"downloaded_file",
		},
	}

	for _, test := range tests {
		src, err := hfget.ParseSource(test.raw)
		if err != nil {
			t.Errorf("ParseSource(%s): %v", test.raw, err)
			continue
		}

		if src.IsTree() {
			t.Errorf("ParseSource(%s) = tree, expected file", test.raw)
		}

		if src.URL != test.url {
			t.Errorf("ParseSource(%s).URL = %s, expected %s", test.raw, src.URL, test.url)
		}

		if src.Filename != test.filename {
			t.Errorf("ParseSource(%s).Filename = %s, expected %s", test.raw, src.Filename, test.filename)
		}
	}
}

func TestParseSourceTree(t *testing.T) {
	tests := []struct {
		raw  string
		repo hfget.Repo
	}{
		{
			"https://huggingface.co/openai/whisper-tiny/tree/main",
			hfget.Repo{Owner: "openai", Name: "whisper-tiny", Revision: "main"},
		},
		{
			"https://hf-mirror.com/TheBloke/Llama-2-7B-GGUF/tree/gptq-4bit/sub/dir",
			hfget.Repo{Owner: "TheBloke", Name: "Llama-2-7B-GGUF", Revision: "gptq-4bit", Subpath: "sub/dir"},
		},
	}

	for _, test := range tests {
		src, err := hfget.ParseSource(test.raw)
		if err != nil {
			t.Errorf("ParseSource(%s): %v", test.raw, err)
			continue
		}

		if !src.IsTree() {
			t.Errorf("ParseSource(%s) = file, expected tree", test.raw)
			continue
		}

		if *src.Repo != test.repo {
			t.Errorf("ParseSource(%s).Repo = %v, expected %v", test.raw, *src.Repo, test.repo)
		}
	}
}

func TestParseSourceInvalid(t *testing.T) {
	for _, raw := range []string{
		"ftp://example.com/file.bin",
		"not a url at all",
	} {
		if _, err := hfget.ParseSource(raw); err == nil {
			t.Errorf("ParseSource(%s) expected error", raw)
		}
	}
}
