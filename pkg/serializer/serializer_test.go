// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type sample struct {
	Name     string   `json:"name" yaml:"name"`
	Servings int      `json:"servings" yaml:"servings"`
	Steps    []string `json:"steps" yaml:"steps"`
}

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusCreated, sample{Name: "Tacos", Servings: 4})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var got sample
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Name != "Tacos" || got.Servings != 4 {
		t.Errorf("unexpected body: %+v", got)
	}
}

func TestRespondJSON_EncodingFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusOK, map[string]any{"bad": make(chan int)})

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestFormat_IsUnknown(t *testing.T) {
	for _, f := range SupportedFormats() {
		if Format(f).IsUnknown() {
			t.Errorf("%q should be known", f)
		}
	}
	if !Format("xml").IsUnknown() {
		t.Error("xml should be unknown")
	}
}

func TestWriter_Serialize(t *testing.T) {
	v := sample{Name: "Salad Bowl", Servings: 2, Steps: []string{"chop", "toss"}}

	tests := []struct {
		format Format
		want   []string
	}{
		{FormatJSON, []string{`"name": "Salad Bowl"`, `"servings": 2`}},
		{FormatYAML, []string{"name: Salad Bowl", "servings: 2", "- chop"}},
		{FormatTable, []string{"FIELD", "name", "Salad Bowl", "steps.[1]", "toss"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(tt.format, &buf)
			if err := w.Serialize(context.Background(), v); err != nil {
				t.Fatalf("Serialize() error = %v", err)
			}
			out := buf.String()
			for _, s := range tt.want {
				if !strings.Contains(out, s) {
					t.Errorf("output missing %q:\n%s", s, out)
				}
			}
		})
	}
}

func TestWriter_UnknownFormatDefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(Format("xml"), &buf)
	if err := w.Serialize(context.Background(), sample{Name: "Soup"}); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if !json.Valid(buf.Bytes()) {
		t.Errorf("expected JSON output, got %s", buf.String())
	}
}

func TestWriter_TableRows(t *testing.T) {
	type page struct {
		Results    []sample `json:"results"`
		TotalItems int64    `json:"totalItems"`
		Page       int      `json:"page"`
	}
	v := page{
		Results:    []sample{{Name: "Flan", Servings: 4}, {Name: "Pho", Servings: 2}},
		TotalItems: 2,
		Page:       1,
	}

	var buf bytes.Buffer
	if err := NewWriter(FormatTable, &buf).Serialize(context.Background(), v); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected summary, header and 2 rows, got:\n%s", buf.String())
	}
	if lines[0] != "totalItems: 2  page: 1" {
		t.Errorf("summary = %q", lines[0])
	}
	if strings.Join(strings.Fields(lines[1]), " ") != "NAME SERVINGS" {
		t.Errorf("header = %q", lines[1])
	}
	if strings.Join(strings.Fields(lines[3]), " ") != "Pho 2" {
		t.Errorf("row = %q", lines[3])
	}

	buf.Reset()
	if err := NewWriter(FormatTable, &buf).Serialize(context.Background(), []*sample{}); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "<empty>" {
		t.Errorf("got %q", buf.String())
	}
}

func TestNewFileWriter_Errors(t *testing.T) {
	if _, err := NewFileWriter(FormatJSON, filepath.Join(t.TempDir(), "missing", "out.json")); err == nil {
		t.Error("expected error for missing directory")
	}
	w, err := NewFileWriter(FormatJSON, "  ")
	if err != nil || w == nil {
		t.Fatalf("blank path should write to stdout, got %v", err)
	}
}

func TestWriter_EmptyTable(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(FormatTable, &buf).Serialize(context.Background(), map[string]string{}); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "<empty>" {
		t.Errorf("got %q", buf.String())
	}
}

func TestFileWriterAndFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.yaml")

	w, err := NewFileWriter(FormatYAML, path)
	if err != nil {
		t.Fatalf("NewFileWriter() error = %v", err)
	}
	if err := w.Serialize(context.Background(), sample{Name: "Steak", Servings: 1}); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}

	got, err := FromFile[sample](context.Background(), path)
	if err != nil {
		t.Fatalf("FromFile() error = %v", err)
	}
	if got.Name != "Steak" || got.Servings != 1 {
		t.Errorf("unexpected value: %+v", got)
	}
}

func TestFromFile_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != HTTPReaderUserAgent {
			t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		_, _ = w.Write([]byte(`{"name":"Bread","servings":8}`))
	}))
	defer srv.Close()

	got, err := FromFile[sample](context.Background(), srv.URL+"/recipes.json")
	if err != nil {
		t.Fatalf("FromFile() error = %v", err)
	}
	if got.Name != "Bread" {
		t.Errorf("Name = %q", got.Name)
	}
}

func TestFromFile_Errors(t *testing.T) {
	if _, err := FromFile[sample](context.Background(), filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := FromFile[sample](context.Background(), path); err == nil {
		t.Error("expected decode error")
	}
}

func TestNewReader_TableUnsupported(t *testing.T) {
	if _, err := NewReader(FormatTable, strings.NewReader("")); err == nil {
		t.Error("expected error for table format")
	}
	if _, err := NewReader(Format("csv"), strings.NewReader("")); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"a.json":  FormatJSON,
		"a.YAML":  FormatYAML,
		"a.yml":   FormatYAML,
		"a.other": FormatJSON,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}
