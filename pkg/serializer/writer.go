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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Format names an output encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// IsUnknown reports whether f is not one of SupportedFormats.
func (f Format) IsUnknown() bool {
	return !slices.Contains(SupportedFormats(), string(f))
}

// SupportedFormats lists the values accepted by --format.
func SupportedFormats() []string {
	return []string{string(FormatJSON), string(FormatYAML), string(FormatTable)}
}

// Writer encodes values onto an output stream.
type Writer struct {
	format Format
	output io.Writer
	closer io.Closer
}

// NewWriter returns a Writer for output, stdout when nil. Unknown formats
// fall back to JSON.
func NewWriter(format Format, output io.Writer) *Writer {
	if output == nil {
		output = os.Stdout
	}
	if format.IsUnknown() {
		slog.Warn("unknown format, defaulting to JSON", "format", format)
		format = FormatJSON
	}
	return &Writer{format: format, output: output}
}

// NewFileWriter returns a Writer that creates or truncates path. A blank
// path writes to stdout. Close releases the file.
func NewFileWriter(format Format, path string) (*Writer, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return NewWriter(format, os.Stdout), nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file %s: %w", path, err)
	}
	w := NewWriter(format, f)
	w.closer = f
	return w, nil
}

// Close releases the output file, if any. Repeated calls are no-ops.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	err := w.closer.Close()
	w.closer = nil
	return err
}

// Serialize writes v in the writer's format.
func (w *Writer) Serialize(_ context.Context, v any) error {
	switch w.format {
	case FormatJSON:
		enc := json.NewEncoder(w.output)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w.output)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatTable:
		return w.writeTable(reflect.ValueOf(v))
	default:
		return fmt.Errorf("unsupported format: %s", w.format)
	}
}

var stringerType = reflect.TypeFor[fmt.Stringer]()

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// fieldName is the json name of f, or its Go name when untagged.
func fieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func isScalar(t reflect.Type) bool {
	if t.Implements(stringerType) || reflect.PointerTo(t).Implements(stringerType) {
		return true
	}
	switch t.Kind() {
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array, reflect.Func, reflect.Chan:
		return false
	case reflect.Pointer:
		return isScalar(t.Elem())
	default:
		return true
	}
}

// recordType returns the struct type of the elements of a slice of
// records.
func recordType(v reflect.Value) (reflect.Type, bool) {
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, false
	}
	t := v.Type().Elem()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t, t.Kind() == reflect.Struct && !isScalar(t)
}

func (w *Writer) writeTable(v reflect.Value) error {
	v = indirect(v)
	if t, ok := recordType(v); ok {
		return w.writeRows(t, v)
	}

	// a page: scalar summary followed by its records
	if v.Kind() == reflect.Struct {
		var list reflect.Value
		var summary []string
		for i := range v.NumField() {
			f := v.Type().Field(i)
			if !f.IsExported() {
				continue
			}
			fv := v.Field(i)
			switch {
			case isScalar(f.Type):
				summary = append(summary, fmt.Sprintf("%s: %s", fieldName(f), cell(fv)))
			case !list.IsValid():
				if _, ok := recordType(fv); ok {
					list = fv
				}
			}
		}
		if list.IsValid() {
			if len(summary) > 0 {
				fmt.Fprintln(w.output, strings.Join(summary, "  "))
			}
			t, _ := recordType(list)
			return w.writeRows(t, list)
		}
	}

	flat := map[string]string{}
	flatten(flat, v, "")
	if len(flat) == 0 {
		_, err := fmt.Fprintln(w.output, "<empty>")
		return err
	}
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	tw := tabwriter.NewWriter(w.output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE")
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%s\n", k, flat[k])
	}
	return tw.Flush()
}

// writeRows renders one line per record with a column per scalar field.
func (w *Writer) writeRows(t reflect.Type, list reflect.Value) error {
	var cols []int
	var header []string
	for i := range t.NumField() {
		f := t.Field(i)
		if f.IsExported() && isScalar(f.Type) {
			cols = append(cols, i)
			header = append(header, strings.ToUpper(fieldName(f)))
		}
	}
	if list.Len() == 0 || len(cols) == 0 {
		_, err := fmt.Fprintln(w.output, "<empty>")
		return err
	}

	tw := tabwriter.NewWriter(w.output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for i := range list.Len() {
		rec := indirect(list.Index(i))
		row := make([]string, len(cols))
		for j, c := range cols {
			if rec.IsValid() {
				row[j] = cell(rec.Field(c))
			}
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func cell(v reflect.Value) string {
	v = indirect(v)
	if !v.IsValid() {
		return "-"
	}
	s := fmt.Sprint(v.Interface())
	// keep rows on one line
	return strings.NewReplacer("\n", " ", "\t", " ").Replace(s)
}

func flatten(out map[string]string, v reflect.Value, prefix string) {
	v = indirect(v)
	if !v.IsValid() {
		if prefix != "" {
			out[prefix] = "-"
		}
		return
	}
	key := func(k string) string {
		if prefix == "" {
			return k
		}
		return prefix + "." + k
	}

	switch {
	case isScalar(v.Type()):
		if prefix == "" {
			prefix = "value"
		}
		out[prefix] = cell(v)
	case v.Kind() == reflect.Struct:
		for i := range v.NumField() {
			if f := v.Type().Field(i); f.IsExported() {
				flatten(out, v.Field(i), key(fieldName(f)))
			}
		}
	case v.Kind() == reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			flatten(out, iter.Value(), key(fmt.Sprint(iter.Key().Interface())))
		}
	case v.Kind() == reflect.Slice || v.Kind() == reflect.Array:
		for i := range v.Len() {
			flatten(out, v.Index(i), key(fmt.Sprintf("[%d]", i)))
		}
	}
}
