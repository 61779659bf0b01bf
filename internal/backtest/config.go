package backtest

import (
	"encoding/json"
	"os"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-alpha/internal/datasource"
	"github.com/rxtech-lab/argo-alpha/internal/indicator"
	"github.com/rxtech-lab/argo-alpha/internal/metrics"
	"github.com/rxtech-lab/argo-alpha/internal/version"
	"github.com/rxtech-lab/argo-alpha/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultLookbackPeriod   = 20
	DefaultDecimalPrecision = 4
)

// Config holds the parameters of a single analysis run.
type Config struct {
	Period           int                        `yaml:"period" json:"period" validate:"min=1" jsonschema:"title=Period,description=Window of the SMA and RSI used by the threshold strategy,minimum=1,default=14"`
	LookbackPeriod   int                        `yaml:"lookback_period" json:"lookback_period" validate:"min=0" jsonschema:"title=Lookback Period,description=Bars skipped before the regime strategy may trade,minimum=0,default=20"`
	VolatilityWindow int                        `yaml:"volatility_window" json:"volatility_window" validate:"min=1" jsonschema:"title=Volatility Window,description=Window of the rolling volatility used by the regime strategy,minimum=1,default=20"`
	RiskFreeRate     float64                    `yaml:"risk_free_rate" json:"risk_free_rate" validate:"gte=-1,lte=1" jsonschema:"title=Risk Free Rate,description=Annual risk-free rate used by the Sharpe ratio,default=0.02"`
	DecimalPrecision int                        `yaml:"decimal_precision" json:"decimal_precision" validate:"gte=0,lte=16" jsonschema:"title=Decimal Precision,description=Decimal places kept in reports,minimum=0,maximum=16,default=4"`
	StartTime        optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time,description=Optional first bar time loaded from data files"`
	EndTime          optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time,description=Optional last bar time loaded from data files"`
	Interval         datasource.Interval        `yaml:"interval,omitempty" json:"interval,omitempty" validate:"omitempty,oneof=1m 5m 15m 30m 1h 4h 1d 1w" jsonschema:"title=Interval,description=Optional bar interval data files are resampled to before analysis,enum=1m,enum=5m,enum=15m,enum=30m,enum=1h,enum=4h,enum=1d,enum=1w"`
	Version          string                     `yaml:"version,omitempty" json:"version,omitempty" jsonschema:"title=Version,description=argo-alpha version the config was written for"`
}

// configFile mirrors Config with pointer fields so absent keys keep their defaults.
type configFile struct {
	Period           *int                `yaml:"period"`
	LookbackPeriod   *int                `yaml:"lookback_period"`
	VolatilityWindow *int                `yaml:"volatility_window"`
	RiskFreeRate     *float64            `yaml:"risk_free_rate"`
	DecimalPrecision *int                `yaml:"decimal_precision"`
	StartTime        *time.Time          `yaml:"start_time,omitempty"`
	EndTime          *time.Time          `yaml:"end_time,omitempty"`
	Interval         datasource.Interval `yaml:"interval,omitempty"`
	Version          string              `yaml:"version,omitempty"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Period:           indicator.DefaultRSIPeriod,
		LookbackPeriod:   DefaultLookbackPeriod,
		VolatilityWindow: indicator.DefaultVolatilityWindow,
		RiskFreeRate:     metrics.DefaultRiskFreeRate,
		DecimalPrecision: DefaultDecimalPrecision,
		StartTime:        optional.None[time.Time](),
		EndTime:          optional.None[time.Time](),
		Interval:         "",
		Version:          "",
	}
}

// UnmarshalYAML implements custom unmarshaling for Config.
// Keys missing from the document keep their default values.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	var file configFile
	if err := value.Decode(&file); err != nil {
		return err
	}

	config := DefaultConfig()
	if file.Period != nil {
		config.Period = *file.Period
	}

	if file.LookbackPeriod != nil {
		config.LookbackPeriod = *file.LookbackPeriod
	}

	if file.VolatilityWindow != nil {
		config.VolatilityWindow = *file.VolatilityWindow
	}

	if file.RiskFreeRate != nil {
		config.RiskFreeRate = *file.RiskFreeRate
	}

	if file.DecimalPrecision != nil {
		config.DecimalPrecision = *file.DecimalPrecision
	}

	if file.StartTime != nil {
		config.StartTime = optional.Some(*file.StartTime)
	}

	if file.EndTime != nil {
		config.EndTime = optional.Some(*file.EndTime)
	}

	config.Interval = file.Interval
	config.Version = file.Version
	*c = config

	return nil
}

// MarshalYAML writes the optional times as plain timestamps.
func (c Config) MarshalYAML() (interface{}, error) {
	file := configFile{
		Period:           &c.Period,
		LookbackPeriod:   &c.LookbackPeriod,
		VolatilityWindow: &c.VolatilityWindow,
		RiskFreeRate:     &c.RiskFreeRate,
		DecimalPrecision: &c.DecimalPrecision,
		StartTime:        nil,
		EndTime:          nil,
		Interval:         c.Interval,
		Version:          c.Version,
	}

	if c.StartTime.IsSome() {
		start := c.StartTime.Unwrap()
		file.StartTime = &start
	}

	if c.EndTime.IsSome() {
		end := c.EndTime.Unwrap()
		file.EndTime = &end
	}

	return file, nil
}

// Validate checks field ranges, the time window and, when Version is set,
// compatibility with the running binary.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	if c.StartTime.IsSome() && c.EndTime.IsSome() && c.EndTime.Unwrap().Before(c.StartTime.Unwrap()) {
		return errors.New(errors.ErrCodeInvalidConfiguration, "invalid config: end_time is before start_time")
	}

	if c.Version != "" {
		if err := version.CheckVersionCompatibility(version.Version, c.Version); err != nil {
			return err
		}
	}

	return nil
}

// ResampleInterval returns the interval data files are resampled to, or None
// to analyse the bars as stored.
func (c Config) ResampleInterval() optional.Option[datasource.Interval] {
	if c.Interval == "" {
		return optional.None[datasource.Interval]()
	}

	return optional.Some(c.Interval)
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
	}

	return ParseConfig(data)
}

// ParseConfig decodes and validates YAML config content.
func ParseConfig(data []byte) (Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// GenerateSchema generates a JSON schema for Config.
func (c *Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == reflect.TypeOf(optional.Option[time.Time]{}) {
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date-time",
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)

	schema.Title = "argo-alpha-config"
	schema.Description = "Configuration schema for argo-alpha analysis runs"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for Config.
func (c *Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
