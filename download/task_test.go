package download

import (
	"strings"
	"testing"
)

func TestTaskProgress(t *testing.T) {
	tests := []struct {
		received int64
		size     int64
		expected float64
	}{
		{0, 0, 0},
		{512, 0, 0},
		{0, 100, 0},
		{25, 100, 0.25},
		{100, 100, 1},
	}

	for _, test := range tests {
		task := &Task{Received: test.received, Size: test.size}
		if progress := task.Progress(); progress != test.expected {
			t.Errorf("Progress() with %d/%d = %f, expected %f", test.received, test.size, progress, test.expected)
		}
	}
}

func TestTaskProgressString(t *testing.T) {
	task := &Task{Received: 512, Size: 2048}

	s := task.ProgressString()
	if !strings.Contains(s, "25.0%") {
		t.Errorf("ProgressString() = %s, expected it to contain 25.0%%", s)
	}

	unknown := &Task{Received: 512}
	if s := unknown.ProgressString(); strings.Contains(s, "%") {
		t.Errorf("ProgressString() with unknown size = %s, expected no percentage", s)
	}
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"model.safetensors", "model.safetensors"},
		{"onnx/decoder.onnx", "onnx/decoder.onnx"},
		{"we:ird<name>.bin", "we_ird_name_.bin"},
	}

	for _, test := range tests {
		if sanitized := sanitizePath(test.name); sanitized != test.expected {
			t.Errorf("sanitizePath(%s) = %s, expected %s", test.name, sanitized, test.expected)
		}
	}
}
