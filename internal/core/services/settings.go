package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/reqdiff/internal/core/domain"
	"github.com/custodia-labs/reqdiff/internal/core/ports/driven"
	"github.com/custodia-labs/reqdiff/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyThreshold  = "matching.threshold"
	keyMaxFiles   = "matching.max_files"
	keyExtensions = "discovery.extensions"
	keyInclude    = "discovery.include"
	keyExclude    = "discovery.exclude"
	keySkipHidden = "discovery.skip_hidden"
	keyMaxIssues  = "parsing.max_issues"
	keyCacheSize  = "parsing.cache_size"
	keyWorkers    = "workers"
)

// SettingKeys returns every key accepted by Set, in display order.
func SettingKeys() []string {
	return []string{
		keyThreshold, keyMaxFiles,
		keyExtensions, keyInclude, keyExclude, keySkipHidden,
		keyMaxIssues, keyCacheSize,
		keyWorkers,
	}
}

// SettingValue formats the value of key for display, in the syntax Set
// accepts. Unknown keys return "".
func SettingValue(settings *domain.AppSettings, key string) string {
	switch key {
	case keyThreshold:
		return strconv.FormatFloat(settings.Matching.Threshold, 'f', -1, 64)
	case keyMaxFiles:
		return strconv.Itoa(settings.Matching.MaxFiles)
	case keyExtensions:
		return strings.Join(settings.Discovery.Extensions, ",")
	case keyInclude:
		return strings.Join(settings.Discovery.Include, ",")
	case keyExclude:
		return strings.Join(settings.Discovery.Exclude, ",")
	case keySkipHidden:
		return strconv.FormatBool(settings.Discovery.SkipHidden)
	case keyMaxIssues:
		return strconv.Itoa(settings.Parsing.MaxIssues)
	case keyCacheSize:
		return strconv.Itoa(settings.Parsing.CacheSize)
	case keyWorkers:
		return strconv.Itoa(settings.Workers)
	default:
		return ""
	}
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Unset keys take their
// default values.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()
	if s.configStore == nil {
		return &defaults, nil
	}

	settings := &domain.AppSettings{
		Matching: domain.MatchingSettings{
			Threshold: s.getFloat(keyThreshold, defaults.Matching.Threshold),
			MaxFiles:  s.getInt(keyMaxFiles, defaults.Matching.MaxFiles),
		},
		Discovery: domain.DiscoverySettings{
			Extensions: s.getStrings(keyExtensions, defaults.Discovery.Extensions),
			Include:    s.getStrings(keyInclude, defaults.Discovery.Include),
			Exclude:    s.getStrings(keyExclude, defaults.Discovery.Exclude),
			SkipHidden: s.getBool(keySkipHidden, defaults.Discovery.SkipHidden),
		},
		Parsing: domain.ParsingSettings{
			MaxIssues: s.getInt(keyMaxIssues, defaults.Parsing.MaxIssues),
			CacheSize: s.getInt(keyCacheSize, defaults.Parsing.CacheSize),
		},
		Workers: s.getInt(keyWorkers, defaults.Workers),
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyThreshold, settings.Matching.Threshold},
		{keyMaxFiles, settings.Matching.MaxFiles},
		{keyExtensions, settings.Discovery.Extensions},
		{keyInclude, settings.Discovery.Include},
		{keyExclude, settings.Discovery.Exclude},
		{keySkipHidden, settings.Discovery.SkipHidden},
		{keyMaxIssues, settings.Parsing.MaxIssues},
		{keyCacheSize, settings.Parsing.CacheSize},
		{keyWorkers, settings.Workers},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value for key and saves the updated settings. List values
// are comma-separated.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch key {
	case keyThreshold:
		settings.Matching.Threshold, err = strconv.ParseFloat(value, 64)
	case keyMaxFiles:
		settings.Matching.MaxFiles, err = strconv.Atoi(value)
	case keyExtensions:
		settings.Discovery.Extensions = normaliseExtensions(splitList(value))
	case keyInclude:
		settings.Discovery.Include = splitList(value)
	case keyExclude:
		settings.Discovery.Exclude = splitList(value)
	case keySkipHidden:
		settings.Discovery.SkipHidden, err = strconv.ParseBool(value)
	case keyMaxIssues:
		settings.Parsing.MaxIssues, err = strconv.Atoi(value)
	case keyCacheSize:
		settings.Parsing.CacheSize, err = strconv.Atoi(value)
	case keyWorkers:
		settings.Workers, err = strconv.Atoi(value)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	return s.Save(settings)
}

// Validate checks the current settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	val, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}
	if b, ok := val.(bool); ok {
		return b
	}
	return defaultVal
}

func (s *SettingsService) getStrings(key string, defaultVal []string) []string {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetStringSlice(key)
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// normaliseExtensions lower-cases extensions and adds the leading dot.
func normaliseExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(e)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}
