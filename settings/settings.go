package settings

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"sigs.k8s.io/yaml"
)

// Environment variable suffixes read by FromEnv.
const (
	EnvShowInfo       = "SHOW_INFO"
	EnvShowInfoBorder = "SHOW_INFO_BORDER"
)

// Settings are the badge preferences.
type Settings struct {
	// ShowInfo shows the audio info badge. Default: true
	ShowInfo bool `json:"showInfo"`

	// ShowInfoBorder draws a border around the badge. Default: true
	ShowInfoBorder bool `json:"showInfoBorder"`
}

// Default returns the settings used when nothing is configured.
func Default() Settings {
	return Settings{ShowInfo: true, ShowInfoBorder: true}
}

// Source provides the current settings.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Settings must return quickly and must not block on I/O.
type Source interface {
	Settings() Settings
}

// Static is a Source with fixed values.
type Static Settings

// Settings returns s.
func (s Static) Settings() Settings {
	return Settings(s)
}

// Store is a Source whose value can be replaced while it is being read.
type Store struct {
	v atomic.Pointer[Settings]
}

// NewStore creates a Store holding initial.
func NewStore(initial Settings) *Store {
	s := &Store{}
	s.Set(initial)
	return s
}

// Settings returns the latest value set.
func (s *Store) Settings() Settings {
	if p := s.v.Load(); p != nil {
		return *p
	}
	return Default()
}

// Set replaces the stored value.
func (s *Store) Set(v Settings) {
	s.v.Store(&v)
}

var (
	_ Source = Static{}
	_ Source = (*Store)(nil)
)

// FromEnv reads <prefix>SHOW_INFO and <prefix>SHOW_INFO_BORDER.
// Unset or empty variables keep their defaults.
func FromEnv(prefix string) (Settings, error) {
	out := Default()
	fields := []struct {
		name string
		dst  *bool
	}{
		{prefix + EnvShowInfo, &out.ShowInfo},
		{prefix + EnvShowInfoBorder, &out.ShowInfoBorder},
	}
	for _, f := range fields {
		raw := strings.TrimSpace(os.Getenv(f.name))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return Settings{}, fmt.Errorf("%w: %s=%q", ErrInvalidValue, f.name, raw)
		}
		*f.dst = v
	}
	return out, nil
}

// fileSettings distinguishes absent keys from false values.
type fileSettings struct {
	ShowInfo       *bool `json:"showInfo"`
	ShowInfoBorder *bool `json:"showInfoBorder"`
}

// Parse decodes settings from YAML or JSON. Absent keys keep their defaults.
func Parse(data []byte) (Settings, error) {
	var fs fileSettings
	if err := yaml.UnmarshalStrict(data, &fs); err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrReadFile, err)
	}
	out := Default()
	if fs.ShowInfo != nil {
		out.ShowInfo = *fs.ShowInfo
	}
	if fs.ShowInfoBorder != nil {
		out.ShowInfoBorder = *fs.ShowInfoBorder
	}
	return out, nil
}

// LoadFile reads settings persisted at path.
func LoadFile(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrReadFile, err)
	}
	return Parse(data)
}
