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

package settings

import (
	"context"
	"time"
)

// Keys of the runtime settings read by the service.
const (
	KeySelectorEmail     = "send-recipe-selector-email"
	KeySelectorCounter   = "send-recipe-selector-counter"
	KeyEmailFrom         = "email-from"
	KeyEmailTo           = "email-to"
	KeyRateLimit         = "should-rate-limit"
	KeyImageURL          = "image-url"
	KeyAllowedExtensions = "allowed-extensions"
	KeyMaxFileSize       = "max-file-size"
	KeyAPIVersion        = "api-version"
)

// Setting types group related keys.
const (
	TypeApp        = "app-config"
	TypeThresholds = "thresholds"
	TypePruning    = "pruning"
)

// Setting is one persisted configuration row.
type Setting struct {
	ID             uint      `gorm:"primaryKey" json:"id" yaml:"id"`
	Key            string    `gorm:"size:255;uniqueIndex;not null" json:"key" yaml:"key"`
	Value          string    `gorm:"size:255" json:"value" yaml:"value"`
	Type           string    `gorm:"size:255;not null" json:"type" yaml:"type"`
	InsertDateTime time.Time `gorm:"autoCreateTime" json:"insertDateTime" yaml:"insertDateTime"`
}

func (Setting) TableName() string { return "recipe_settings" }

// Defaults returns the settings seeded into an empty store.
func Defaults() []Setting {
	return []Setting{
		{Key: KeySelectorEmail, Value: "0", Type: TypeApp},
		{Key: KeySelectorCounter, Value: "2", Type: TypeApp},
		{Key: KeyEmailFrom, Value: "recipes@localhost", Type: TypeApp},
		{Key: KeyEmailTo, Value: "", Type: TypeApp},
		{Key: KeyRateLimit, Value: "0", Type: TypeThresholds},
		{Key: KeyImageURL, Value: "/media/", Type: TypeApp},
		{Key: KeyAllowedExtensions, Value: "gif,jpg,jpeg,png", Type: TypeApp},
		{Key: KeyMaxFileSize, Value: "2", Type: TypeThresholds},
		{Key: KeyAPIVersion, Value: "1.0", Type: TypeApp},
	}
}

// Store persists settings. Lookups of missing keys return a NOT_FOUND
// structured error.
type Store interface {
	GetSetting(ctx context.Context, key string) (*Setting, error)
	FindSettingByValue(ctx context.Context, value string) (*Setting, error)
	ListSettings(ctx context.Context) ([]Setting, error)
	SaveSettings(ctx context.Context, settings []Setting) error
	UpdateSetting(ctx context.Context, key, value string) error
}
