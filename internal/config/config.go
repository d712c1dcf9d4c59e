package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/grahalabs/jyotish/internal/common"
	"github.com/grahalabs/jyotish/internal/model"
)

// Defaults applied when the config file and environment leave a key
// unset. The house system deliberately has no default: the derivation
// engine requires an explicit choice.
const (
	DefaultCacheTTL     = 7 * 24 * time.Hour
	DefaultCacheBackend = "memory"
)

// Settings is the runtime configuration resolved from viper: config
// file, JYOTISH_ environment variables and bound flags.
type Settings struct {
	HouseSystem      model.HouseSystem
	CacheBackend     string
	DatabasePath     string
	RulesPath        string
	DivisionalCharts []int
	CacheTTL         time.Duration
}

// Load resolves settings from viper and validates the choices that
// have to be right before any derivation runs.
func Load() (Settings, error) {
	viper.SetDefault("cache.ttl", DefaultCacheTTL)
	viper.SetDefault("cache.backend", DefaultCacheBackend)
	viper.SetDefault("divisional_charts", []int{9, 10})

	s := Settings{
		HouseSystem:      model.HouseSystem(viper.GetString("house_system")),
		DivisionalCharts: viper.GetIntSlice("divisional_charts"),
		CacheTTL:         viper.GetDuration("cache.ttl"),
		CacheBackend:     viper.GetString("cache.backend"),
		DatabasePath:     ExpandPath(viper.GetString("database.path")),
		RulesPath:        ExpandPath(viper.GetString("rules.path")),
	}

	if s.HouseSystem == "" {
		return Settings{}, common.NewConfiguration("house_system",
			fmt.Errorf("must be set to %q or %q", model.WholeSign, model.Equal))
	}
	if !s.HouseSystem.Valid() {
		return Settings{}, common.NewConfiguration("house_system",
			fmt.Errorf("unknown house system %q", s.HouseSystem))
	}
	if s.CacheTTL <= 0 {
		return Settings{}, common.NewConfiguration("cache.ttl",
			fmt.Errorf("must be positive, got %s", s.CacheTTL))
	}
	switch s.CacheBackend {
	case "memory":
	case "sqlite":
		if s.DatabasePath == "" {
			return Settings{}, common.NewConfiguration("database.path",
				fmt.Errorf("required when cache.backend is sqlite"))
		}
	default:
		return Settings{}, common.NewConfiguration("cache.backend",
			fmt.Errorf("unknown backend %q", s.CacheBackend))
	}

	return s, nil
}
