package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	assert.Equal(t, "memory", cfg.GetString("store.type"))
	assert.Equal(t, "info", cfg.GetString("logging.level"))
	assert.Equal(t, "json", cfg.GetString("logging.format"))
	assert.Equal(t, 0.5, cfg.GetFloat64("classifier.default_threshold"))

	maxAge, err := cfg.GetDuration("cache.max_age")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, maxAge)

	evictFreq, err := cfg.GetDuration("cache.evict_frequency")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, evictFreq)
}

func TestGetStoreSection(t *testing.T) {
	v := NewEmptyViper()
	v.Set("store.type", "sqlite")
	v.Set("store.sqlite_path", "/tmp/models.db")
	cfg := NewFromViper(v)

	store := cfg.GetStore()
	assert.Equal(t, "sqlite", store.Type)
	assert.Equal(t, "/tmp/models.db", store.SQLitePath)
}

func TestGetRules(t *testing.T) {
	v := NewEmptyViper()
	v.Set("matcher.rules", []map[string]interface{}{
		{"id": "r1", "key": "u", "case": "url", "action": "open"},
		{"id": "r2", "key": "c", "case": "", "action": "copy"},
	})
	cfg := NewFromViper(v)

	rules, err := cfg.GetRules()
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "url", rules[0].Case)
	assert.Equal(t, "copy", rules[1].Action)
}

func TestGetModelsAndRegexps(t *testing.T) {
	v := NewEmptyViper()
	v.Set("matcher.models", []map[string]interface{}{
		{"id": "m1", "sample": "INV-1\nINV-2\nINV-3", "threshold": 0.7},
	})
	v.Set("matcher.regexps", []map[string]interface{}{
		{"id": "re1", "pattern": `^\d+$`, "flags": "i"},
	})
	cfg := NewFromViper(v)

	models, err := cfg.GetModels()
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, 0.7, models[0].Threshold)

	regexps, err := cfg.GetRegexps()
	require.NoError(t, err)
	require.Len(t, regexps, 1)
	assert.Equal(t, "i", regexps[0].Flags)
}

func TestGetDurationRejectsInvalid(t *testing.T) {
	v := NewEmptyViper()
	v.Set("cache.max_age", "soon")
	cfg := NewFromViper(v)

	_, err := cfg.GetDuration("cache.max_age")
	assert.Error(t, err)
}
