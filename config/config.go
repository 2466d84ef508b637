package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hupe1980/cohort"
	"github.com/hupe1980/cohort/core"
	"github.com/hupe1980/cohort/graph"
	"github.com/hupe1980/cohort/kmeans"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = fmt.Errorf("%w: invalid configuration", core.ErrInvalidInput)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config is the complete run configuration.
type Config struct {
	Clustering ClusteringConfig `yaml:"clustering"`
	Graph      GraphConfig      `yaml:"graph"`
	Source     SourceConfig     `yaml:"source"`
	Output     OutputConfig     `yaml:"output"`

	// Seed makes clustering reproducible. Nil seeds from the clock.
	Seed *int64 `yaml:"seed,omitempty"`

	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`
}

// ClusteringConfig configures k-means segmentation.
type ClusteringConfig struct {
	K                  int     `yaml:"k" validate:"min=1"`
	MaxIterations      int     `yaml:"max_iterations" validate:"min=0"`
	EmptyClusterPolicy string  `yaml:"empty_cluster_policy" validate:"omitempty,oneof=clone-largest keep-previous"`
	Tolerance          float64 `yaml:"tolerance" validate:"min=0"`
}

// GraphConfig configures the similarity graph and k-core decomposition.
type GraphConfig struct {
	Threshold float64 `yaml:"threshold" validate:"min=0,max=1"`
	Epsilon   float64 `yaml:"epsilon" validate:"gt=0"`
	CoreK     int     `yaml:"core_k" validate:"min=0"`
}

// SourceConfig selects where datasets are read from and reports written to.
type SourceConfig struct {
	Kind      string `yaml:"kind" validate:"oneof=local s3 minio"`
	Root      string `yaml:"root"`
	Bucket    string `yaml:"bucket" validate:"required_unless=Kind local"`
	Prefix    string `yaml:"prefix"`
	Endpoint  string `yaml:"endpoint" validate:"required_if=Kind minio"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Secure    bool   `yaml:"secure"`
}

// redacted replaces credentials in marshaled output.
const redacted = "***"

// MarshalYAML masks the access and secret keys so printed configurations
// never carry credentials expanded from the environment.
func (s SourceConfig) MarshalYAML() (any, error) {
	type plain SourceConfig
	out := plain(s)
	if out.AccessKey != "" {
		out.AccessKey = redacted
	}
	if out.SecretKey != "" {
		out.SecretKey = redacted
	}
	return out, nil
}

// OutputConfig configures report and telemetry output.
type OutputConfig struct {
	Codec string `yaml:"codec" validate:"oneof=json go-json"`
	// Report, when set, is the blob name the report is also stored under.
	Report          string `yaml:"report"`
	MetricsTextfile string `yaml:"metrics_textfile"`
	Trace           bool   `yaml:"trace"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Clustering: ClusteringConfig{
			K:                  cohort.DefaultK,
			MaxIterations:      cohort.DefaultMaxIterations,
			EmptyClusterPolicy: kmeans.CloneLargest.String(),
		},
		Graph: GraphConfig{
			Threshold: graph.DefaultThreshold,
			Epsilon:   graph.DefaultEpsilon,
			CoreK:     cohort.DefaultCoreK,
		},
		Source: SourceConfig{
			Kind: "local",
			Root: ".",
		},
		Output: OutputConfig{
			Codec: "go-json",
		},
		LogLevel: "info",
	}
}

// Load reads, parses and validates the configuration file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(strings.NewReader(os.ExpandEnv(string(data))))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks every field constraint and reports all violations at once.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := fieldPath(fe.Namespace())
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "required_if", "required_unless":
		return fmt.Sprintf("%s is required", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// fieldPath turns "Config.Graph.CoreK" into "graph.corek".
func fieldPath(ns string) string {
	_, rest, found := strings.Cut(ns, ".")
	if !found {
		rest = ns
	}
	return strings.ToLower(rest)
}
