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
	"errors"

	"gorm.io/gorm"

	"github.com/NVIDIA/recipes-api/pkg/media"
)

// MediaFor returns the media rows of table owned by ids.
func (db *DB) MediaFor(ctx context.Context, foreignTable string, ids []uint) ([]media.Media, error) {
	var out []media.Media
	if len(ids) == 0 {
		return out, nil
	}
	err := db.WithContext(ctx).
		Where("foreign_table = ? AND foreign_id IN ?", foreignTable, ids).
		Order("foreign_id ASC").
		Find(&out).Error
	if err != nil {
		return nil, internal("find media", err)
	}
	return out, nil
}

// UpsertMedia stores m as the only media row of its owner and returns the
// row it replaced, if any.
func (db *DB) UpsertMedia(ctx context.Context, m *media.Media) (*media.Media, error) {
	var previous *media.Media
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing media.Media
		err := tx.Where("foreign_table = ? AND foreign_id = ?", m.ForeignTable, m.ForeignID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(m).Error
		case err != nil:
			return err
		}

		previous = &existing
		m.ID = existing.ID
		m.InsertDateTime = existing.InsertDateTime
		return tx.Save(m).Error
	})
	if err != nil {
		return nil, internal("upsert media", err)
	}
	return previous, nil
}
