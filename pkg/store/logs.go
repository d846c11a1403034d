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

package store

import (
	"context"
	"time"

	"github.com/NVIDIA/recipes-api/pkg/logging"
)

// LogEntry is a persisted log record.
type LogEntry struct {
	ID             uint      `gorm:"primaryKey" json:"id" yaml:"id"`
	Level          string    `gorm:"size:10;not null;index" json:"level" yaml:"level"`
	Message        string    `gorm:"type:text;not null" json:"message" yaml:"message"`
	Attributes     string    `gorm:"type:text" json:"attributes,omitempty" yaml:"attributes,omitempty"`
	InsertDateTime time.Time `gorm:"not null" json:"insertDateTime" yaml:"insertDateTime"`
}

func (LogEntry) TableName() string { return "log_entries" }

// WriteLogEntry implements logging.Sink.
func (db *DB) WriteLogEntry(ctx context.Context, e logging.Entry) error {
	row := LogEntry{
		Level:          e.Level,
		Message:        e.Message,
		Attributes:     e.Attributes,
		InsertDateTime: e.Time,
	}
	if row.InsertDateTime.IsZero() {
		row.InsertDateTime = time.Now()
	}
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		return internal("write log entry", err)
	}
	return nil
}

// LogEntries returns the latest limit entries, newest first.
func (db *DB) LogEntries(ctx context.Context, limit int) ([]LogEntry, error) {
	var out []LogEntry
	q := db.WithContext(ctx).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, internal("list log entries", err)
	}
	return out, nil
}
