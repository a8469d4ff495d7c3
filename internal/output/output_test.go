package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

type testItem struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

func TestNewWriter_Formats(t *testing.T) {
	buf := &bytes.Buffer{}

	w, err := NewWriter(buf, FormatJSON)
	if err != nil {
		t.Fatalf("NewWriter(json) error = %v", err)
	}
	if _, ok := w.(*JSONWriter); !ok {
		t.Errorf("expected *JSONWriter, got %T", w)
	}

	w, err = NewWriter(buf, FormatYAML)
	if err != nil {
		t.Fatalf("NewWriter(yaml) error = %v", err)
	}
	if _, ok := w.(*YAMLWriter); !ok {
		t.Errorf("expected *YAMLWriter, got %T", w)
	}

	if _, err := NewWriter(buf, Format("toml")); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestJSONWriter_SingleItem(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf)

	if err := w.Write(testItem{Name: "a", Value: 1}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var got testItem
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output should be a single JSON object: %v", err)
	}
	if got.Name != "a" || got.Value != 1 {
		t.Errorf("got %+v, want {a 1}", got)
	}
}

func TestJSONWriter_MultipleItems(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf)

	if err := w.WriteAll([]any{
		testItem{Name: "a", Value: 1},
		testItem{Name: "b", Value: 2},
	}); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var got []testItem
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output should be a JSON array: %v", err)
	}
	if len(got) != 2 || got[1].Name != "b" {
		t.Errorf("got %+v, want two items ending with b", got)
	}
}

func TestYAMLWriter_SingleItem(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewYAMLWriter(buf)

	if err := w.Write(testItem{Name: "a", Value: 1}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	var got testItem
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output should be YAML: %v", err)
	}
	if got.Name != "a" || got.Value != 1 {
		t.Errorf("got %+v, want {a 1}", got)
	}
}

func TestDestination_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.html")
	w, err := Destination(path)
	if err != nil {
		t.Fatalf("Destination() error = %v", err)
	}
	if _, err := w.Write([]byte("content")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "content" {
		t.Errorf("file content = %q, want %q", data, "content")
	}
}

func TestDestination_BadPath(t *testing.T) {
	if _, err := Destination(filepath.Join(t.TempDir(), "no", "such", "dir", "f")); err == nil {
		t.Error("Destination() should fail for an uncreatable path")
	}
}

func TestDestination_StdoutNotClosed(t *testing.T) {
	w, err := Destination("")
	if err != nil {
		t.Fatalf("Destination(\"\") error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() on stdout destination should be a no-op, got %v", err)
	}
}
