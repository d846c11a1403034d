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

package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// Entry is a log record in its persisted form.
type Entry struct {
	Level      string
	Message    string
	Attributes string
	Time       time.Time
}

// Sink stores log entries.
type Sink interface {
	WriteLogEntry(ctx context.Context, e Entry) error
}

// PersistentHandler forwards every record to the wrapped handler and also
// writes records at or above a minimum level to a Sink.
type PersistentHandler struct {
	next  slog.Handler
	sink  Sink
	min   slog.Level
	attrs []slog.Attr
	group string
}

// NewPersistentHandler wraps next so that records at min or above are also
// written to sink. Sink failures are reported on stderr and never block logging.
func NewPersistentHandler(next slog.Handler, sink Sink, min slog.Level) *PersistentHandler {
	return &PersistentHandler{next: next, sink: sink, min: min}
}

// Enabled implements slog.Handler.
func (h *PersistentHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level) || (h.sink != nil && level >= h.min)
}

// Handle implements slog.Handler.
func (h *PersistentHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error
	if h.next.Enabled(ctx, r.Level) {
		err = h.next.Handle(ctx, r)
	}

	if h.sink == nil || r.Level < h.min {
		return err
	}

	attrs := make(map[string]any, r.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		attrs[h.key(a.Key)] = attrValue(a.Value.Resolve())
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[h.key(a.Key)] = attrValue(a.Value.Resolve())
		return true
	})

	encoded, mErr := json.Marshal(attrs)
	if mErr != nil {
		encoded = []byte(fmt.Sprintf("%q", fmt.Sprint(attrs)))
	}

	entry := Entry{
		Level:      r.Level.String(),
		Message:    r.Message,
		Attributes: string(encoded),
		Time:       r.Time,
	}
	// detached from the request context so a cancelled request still records its failure
	if wErr := h.sink.WriteLogEntry(context.WithoutCancel(ctx), entry); wErr != nil {
		fmt.Fprintf(os.Stderr, "failed to persist log entry: %v\n", wErr)
	}

	return err
}

// WithAttrs implements slog.Handler.
func (h *PersistentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.next = h.next.WithAttrs(attrs)
	c.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &c
}

// WithGroup implements slog.Handler.
func (h *PersistentHandler) WithGroup(name string) slog.Handler {
	c := *h
	c.next = h.next.WithGroup(name)
	c.group = h.key(name)
	return &c
}

func (h *PersistentHandler) key(k string) string {
	if h.group == "" {
		return k
	}
	return h.group + "." + k
}

func attrValue(v slog.Value) any {
	switch v.Kind() {
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return v.Any()
	case slog.KindGroup:
		m := make(map[string]any)
		for _, a := range v.Group() {
			m[a.Key] = attrValue(a.Value.Resolve())
		}
		return m
	default:
		return v.Any()
	}
}
