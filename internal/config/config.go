package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/rxtech-lab/bovespa-fetcher/pkg/errors"
)

const (
	DefaultTicker       = "^BVSP"
	DefaultPeriod       = "1mo"
	DefaultInterval     = "1d"
	DefaultDataDir      = "data"
	DefaultLogDir       = "logs"
	DefaultLogFile      = "bovespa_data.log"
	DefaultFilePrefix   = "bovespa"
	DefaultProvider     = "yahoo"
	DefaultFormat       = "csv"
	DefaultYahooBaseURL = "https://query1.finance.yahoo.com"
	DefaultHTTPTimeout  = 30 * time.Second
)

// Config holds the fetcher configuration.
type Config struct {
	Ticker        string        `yaml:"ticker" json:"ticker" jsonschema:"title=Ticker,description=Provider symbol of the index,default=^BVSP" validate:"required"`
	Period        string        `yaml:"period" json:"period" jsonschema:"title=Period,description=Lookback window forwarded to the provider,default=1mo" validate:"required"`
	Interval      string        `yaml:"interval" json:"interval" jsonschema:"title=Interval,description=Bar interval,default=1d" validate:"required"`
	DataDir       string        `yaml:"data_dir" json:"data_dir" jsonschema:"title=Data directory,default=data" validate:"required"`
	LogDir        string        `yaml:"log_dir" json:"log_dir" jsonschema:"title=Log directory,default=logs" validate:"required"`
	LogFile       string        `yaml:"log_file" json:"log_file" jsonschema:"title=Log file name,default=bovespa_data.log" validate:"required"`
	FilePrefix    string        `yaml:"file_prefix" json:"file_prefix" jsonschema:"title=Output file prefix,default=bovespa" validate:"required"`
	Provider      string        `yaml:"provider" json:"provider" jsonschema:"title=Provider,enum=yahoo,enum=financego,enum=polygon,default=yahoo" validate:"required,oneof=yahoo financego polygon"`
	Format        string        `yaml:"format" json:"format" jsonschema:"title=Output format,enum=csv,enum=parquet,default=csv" validate:"required,oneof=csv parquet"`
	YahooBaseURL  string        `yaml:"yahoo_base_url" json:"yahoo_base_url" jsonschema:"title=Yahoo base URL" validate:"required,url"`
	PolygonApiKey string        `yaml:"polygon_api_key" json:"polygon_api_key" jsonschema:"title=Polygon API key" validate:"required_if=Provider polygon"`
	Proxy         string        `yaml:"proxy" json:"proxy,omitempty" jsonschema:"title=HTTP proxy URL" validate:"omitempty,url"`
	HTTPTimeout   time.Duration `yaml:"http_timeout" json:"http_timeout" jsonschema:"title=HTTP timeout" validate:"gt=0"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Ticker:        DefaultTicker,
		Period:        DefaultPeriod,
		Interval:      DefaultInterval,
		DataDir:       DefaultDataDir,
		LogDir:        DefaultLogDir,
		LogFile:       DefaultLogFile,
		FilePrefix:    DefaultFilePrefix,
		Provider:      DefaultProvider,
		Format:        DefaultFormat,
		YahooBaseURL:  DefaultYahooBaseURL,
		PolygonApiKey: "",
		Proxy:         "",
		HTTPTimeout:   DefaultHTTPTimeout,
	}
}

// Load reads config from an optional YAML file, then applies environment
// variable overrides and fills defaults for anything left empty.
// An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "read config", err)
		}

		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "parse config", err)
			}
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"BOVESPA_DATA_DIR": &c.DataDir,
		"BOVESPA_LOG_DIR":  &c.LogDir,
		"BOVESPA_PROVIDER": &c.Provider,
		"BOVESPA_FORMAT":   &c.Format,
		"POLYGON_API_KEY":  &c.PolygonApiKey,
		"YAHOO_BASE_URL":   &c.YahooBaseURL,
		"HTTPS_PROXY":      &c.Proxy,
	}

	for key, target := range overrides {
		if v := os.Getenv(key); v != "" {
			*target = v
		}
	}
}

func (c *Config) applyDefaults() {
	defaults := Default()

	fill := func(target *string, value string) {
		if *target == "" {
			*target = value
		}
	}

	fill(&c.Ticker, defaults.Ticker)
	fill(&c.Period, defaults.Period)
	fill(&c.Interval, defaults.Interval)
	fill(&c.DataDir, defaults.DataDir)
	fill(&c.LogDir, defaults.LogDir)
	fill(&c.LogFile, defaults.LogFile)
	fill(&c.FilePrefix, defaults.FilePrefix)
	fill(&c.Provider, defaults.Provider)
	fill(&c.Format, defaults.Format)
	fill(&c.YahooBaseURL, defaults.YahooBaseURL)

	if c.HTTPTimeout == 0 {
		c.HTTPTimeout = defaults.HTTPTimeout
	}
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	return nil
}

// LogPath returns the full path of the log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.LogDir, c.LogFile)
}

// Schema returns the JSON schema of the configuration file.
func Schema() (string, error) {
	//nolint:exhaustruct // empty struct is intentional for schema generation
	schema := jsonschema.Reflect(&Config{})

	schemaBytes, err := json.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config schema: %w", err)
	}

	return string(schemaBytes), nil
}
