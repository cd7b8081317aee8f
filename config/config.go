package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const defaultPath = "."

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Geocoder configuration for the address resolution chain
	Geocoder *GeocoderConfig `json:"geocoder" yaml:"geocoder"`

	// Overpass configuration for the POI query service
	Overpass *OverpassConfig `json:"overpass" yaml:"overpass"`

	// Insight configuration for radii and scoring
	Insight *InsightConfig `json:"insight" yaml:"insight"`

	// History configuration for the local recent-address store
	History *HistoryConfig `json:"history" yaml:"history"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// GeocoderConfig defines the two-tier geocoding chain.
type GeocoderConfig struct {
	// Quiet window before a pending geocode fires; newer calls cancel older ones.
	Debounce time.Duration `json:"debounce" yaml:"debounce"`

	// Per-request timeout applied to both providers.
	RequestTimeout time.Duration `json:"requestTimeout" yaml:"requestTimeout"`

	// Outbound requests per second against the public geocoding endpoints.
	RequestsPerSecond float64 `json:"requestsPerSecond" yaml:"requestsPerSecond"`

	LocationIQ struct {
		Endpoint string `json:"endpoint" yaml:"endpoint"`
		APIKey   string `json:"apiKey" yaml:"apiKey"`
	} `json:"locationiq" yaml:"locationiq"`

	Nominatim struct {
		Endpoint  string `json:"endpoint" yaml:"endpoint"`
		UserAgent string `json:"userAgent" yaml:"userAgent"`
	} `json:"nominatim" yaml:"nominatim"`
}

// OverpassConfig defines the POI query service connection.
type OverpassConfig struct {
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Per-query timeout; an expired query degrades to an empty result.
	RequestTimeout time.Duration `json:"requestTimeout" yaml:"requestTimeout"`

	// Maximum concurrent queries against the endpoint.
	Parallelism int `json:"parallelism" yaml:"parallelism"`

	RequestsPerSecond float64 `json:"requestsPerSecond" yaml:"requestsPerSecond"`
}

// InsightConfig defines the analysis radii and history depth.
type InsightConfig struct {
	WalkingRadiusMeters int `json:"walkingRadiusMeters" yaml:"walkingRadiusMeters"`
	DrivingRadiusMeters int `json:"drivingRadiusMeters" yaml:"drivingRadiusMeters"`
	HistoryLimit        int `json:"historyLimit" yaml:"historyLimit"`
}

// HistoryConfig defines the embedded store holding the recent-address slot.
type HistoryConfig struct {
	Path     string `json:"path" yaml:"path"`
	InMemory bool   `json:"inMemory" yaml:"inMemory"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: GEOCODER_LOCATIONIQ_APIKEY -> geocoder.locationiq.apiKey
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Geocoder == nil {
		cfg.Geocoder = &GeocoderConfig{}
	}
	if cfg.Geocoder.Debounce <= 0 {
		cfg.Geocoder.Debounce = 700 * time.Millisecond
	}
	if cfg.Geocoder.RequestTimeout <= 0 {
		cfg.Geocoder.RequestTimeout = 10 * time.Second
	}
	if cfg.Geocoder.RequestsPerSecond <= 0 {
		cfg.Geocoder.RequestsPerSecond = 1
	}
	if cfg.Geocoder.Nominatim.Endpoint == "" {
		cfg.Geocoder.Nominatim.Endpoint = "https://nominatim.openstreetmap.org/search"
	}
	if cfg.Geocoder.Nominatim.UserAgent == "" {
		cfg.Geocoder.Nominatim.UserAgent = "Address-Insights-App"
	}
	if cfg.Geocoder.LocationIQ.Endpoint == "" {
		cfg.Geocoder.LocationIQ.Endpoint = "https://us1.locationiq.com/v1/search.php"
	}

	if cfg.Overpass == nil {
		cfg.Overpass = &OverpassConfig{}
	}
	if cfg.Overpass.Endpoint == "" {
		cfg.Overpass.Endpoint = "https://overpass-api.de/api/interpreter"
	}
	if cfg.Overpass.RequestTimeout <= 0 {
		cfg.Overpass.RequestTimeout = 10 * time.Second
	}
	if cfg.Overpass.Parallelism <= 0 {
		cfg.Overpass.Parallelism = 2
	}
	if cfg.Overpass.RequestsPerSecond <= 0 {
		cfg.Overpass.RequestsPerSecond = 2
	}

	if cfg.Insight == nil {
		cfg.Insight = &InsightConfig{}
	}
	if cfg.Insight.WalkingRadiusMeters <= 0 {
		cfg.Insight.WalkingRadiusMeters = 500
	}
	if cfg.Insight.DrivingRadiusMeters <= 0 {
		cfg.Insight.DrivingRadiusMeters = 2000
	}
	if cfg.Insight.HistoryLimit <= 0 {
		cfg.Insight.HistoryLimit = 10
	}

	if cfg.History == nil {
		cfg.History = &HistoryConfig{InMemory: true}
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
