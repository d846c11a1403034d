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
	"gorm.io/gorm/clause"

	recerrors "github.com/NVIDIA/recipes-api/pkg/errors"
	"github.com/NVIDIA/recipes-api/pkg/settings"
)

func (db *DB) firstSetting(ctx context.Context, column, v string) (*settings.Setting, error) {
	var s settings.Setting
	err := db.WithContext(ctx).Where(clause.Eq{Column: clause.Column{Name: column}, Value: v}).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, recerrors.NewWithContext(recerrors.ErrCodeNotFound, "Setting not found", map[string]any{column: v})
		}
		return nil, internal("get setting", err)
	}
	return &s, nil
}

// GetSetting returns the setting stored under key.
func (db *DB) GetSetting(ctx context.Context, key string) (*settings.Setting, error) {
	return db.firstSetting(ctx, "key", key)
}

// FindSettingByValue returns the first setting holding value.
func (db *DB) FindSettingByValue(ctx context.Context, value string) (*settings.Setting, error) {
	return db.firstSetting(ctx, "value", value)
}

// ListSettings returns every setting ordered by key.
func (db *DB) ListSettings(ctx context.Context) ([]settings.Setting, error) {
	var out []settings.Setting
	if err := db.WithContext(ctx).Order("key ASC").Find(&out).Error; err != nil {
		return nil, internal("list settings", err)
	}
	return out, nil
}

// SaveSettings inserts list, replacing the value and type of existing keys.
func (db *DB) SaveSettings(ctx context.Context, list []settings.Setting) error {
	if len(list) == 0 {
		return nil
	}
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "type"}),
	}).Create(&list).Error
	if err != nil {
		return internal("save settings", err)
	}
	return nil
}

// UpdateSetting sets the value of an existing key.
func (db *DB) UpdateSetting(ctx context.Context, key, value string) error {
	res := db.WithContext(ctx).Model(&settings.Setting{}).Where("key = ?", key).Update("value", value)
	if res.Error != nil {
		return internal("update setting", res.Error)
	}
	if res.RowsAffected == 0 {
		return recerrors.NewWithContext(recerrors.ErrCodeNotFound, "Setting not found", map[string]any{"key": key})
	}
	return nil
}
