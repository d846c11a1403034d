package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	recerrors "github.com/NVIDIA/recipes-api/pkg/errors"
	"github.com/NVIDIA/recipes-api/pkg/settings"
)

func TestSettings(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	_, err := db.GetSetting(ctx, "missing")
	assert.True(t, recerrors.IsCode(err, recerrors.ErrCodeNotFound))

	err = db.UpdateSetting(ctx, "missing", "1")
	assert.True(t, recerrors.IsCode(err, recerrors.ErrCodeNotFound))

	require.NoError(t, db.UpdateSetting(ctx, settings.KeyRateLimit, "1"))
	s, err := db.GetSetting(ctx, settings.KeyRateLimit)
	require.NoError(t, err)
	assert.Equal(t, "1", s.Value)

	s, err = db.FindSettingByValue(ctx, "recipes@localhost")
	require.NoError(t, err)
	assert.Equal(t, settings.KeyEmailFrom, s.Key)

	_, err = db.FindSettingByValue(ctx, "nobody")
	assert.True(t, recerrors.IsCode(err, recerrors.ErrCodeNotFound))
}

func TestSaveSettings_Upserts(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	require.NoError(t, db.SaveSettings(ctx, nil))
	require.NoError(t, db.SaveSettings(ctx, []settings.Setting{
		{Key: settings.KeySelectorCounter, Value: "4", Type: settings.TypeThresholds},
		{Key: "prune-after-days", Value: "30", Type: settings.TypePruning},
	}))

	s, err := db.GetSetting(ctx, settings.KeySelectorCounter)
	require.NoError(t, err)
	assert.Equal(t, "4", s.Value)
	assert.Equal(t, settings.TypeThresholds, s.Type)

	list, err := db.ListSettings(ctx)
	require.NoError(t, err)
	assert.Len(t, list, len(settings.Defaults())+1)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].Key, list[i].Key)
	}
}

func TestSettingsCacheOverStore(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	cache := settings.NewCache(db)

	assert.Equal(t, 2, cache.Int(ctx, settings.KeySelectorCounter, 0))
	require.NoError(t, cache.Set(ctx, settings.KeySelectorCounter, "3"))
	assert.Equal(t, 3, cache.Int(ctx, settings.KeySelectorCounter, 0))
	assert.False(t, cache.RateLimitEnabled(ctx))
}
