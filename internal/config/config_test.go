package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grahalabs/jyotish/internal/common"
	"github.com/grahalabs/jyotish/internal/model"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoad_Defaults(t *testing.T) {
	resetViper(t)
	viper.Set("house_system", "whole_sign")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, model.WholeSign, s.HouseSystem)
	assert.Equal(t, []int{9, 10}, s.DivisionalCharts)
	assert.Equal(t, DefaultCacheTTL, s.CacheTTL)
	assert.Equal(t, "memory", s.CacheBackend)
}

func TestLoad_HouseSystemRequired(t *testing.T) {
	resetViper(t)

	_, err := Load()
	var cfgErr *common.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "house_system", cfgErr.Setting)
}

func TestLoad_UnknownHouseSystem(t *testing.T) {
	resetViper(t)
	viper.Set("house_system", "placidus")

	_, err := Load()
	var cfgErr *common.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoad_SqliteBackendNeedsPath(t *testing.T) {
	resetViper(t)
	viper.Set("house_system", "equal")
	viper.Set("cache.backend", "sqlite")

	_, err := Load()
	var cfgErr *common.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "database.path", cfgErr.Setting)

	viper.Set("database.path", "/tmp/jyotish.db")
	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", s.CacheBackend)
}

func TestLoad_BadTTL(t *testing.T) {
	resetViper(t)
	viper.Set("house_system", "equal")
	viper.Set("cache.ttl", -time.Minute)

	_, err := Load()
	var cfgErr *common.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}
