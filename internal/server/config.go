package server

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/auction-analyzer/internal/config"
	"github.com/iwvelando/auction-analyzer/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Environment overrides, applied after the file is read.
const (
	AddressEnvVar       = constants.EnvPrefix + "_SERVER_ADDRESS"
	MaxUploadSizeEnvVar = constants.EnvPrefix + "_SERVER_MAX_UPLOAD_SIZE"
	VersionEnvVar       = constants.EnvPrefix + "_SERVER_VERSION"
)

// Config holds what cmd/auction-server needs to run the API.
type Config struct {
	Address           string               `yaml:"address"`
	MaxUploadSize     string               `yaml:"maxUploadSize"`     // "256K", "1M", plain bytes
	ReadHeaderTimeout string               `yaml:"readHeaderTimeout"` // Go duration, e.g. "5s"
	ShutdownTimeout   string               `yaml:"shutdownTimeout"`
	Version           string               `yaml:"version"`
	Logging           config.LoggingConfig `yaml:"logging"`

	uploadSizeBytes   int64
	readHeaderTimeout time.Duration
	shutdownTimeout   time.Duration
}

// DefaultConfig is the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Address:           constants.DefaultServerAddress,
		uploadSizeBytes:   constants.DefaultMaxUploadSizeBytes,
		readHeaderTimeout: constants.DefaultReadHeaderTimeoutSeconds * time.Second,
		shutdownTimeout:   constants.DefaultShutdownTimeoutSeconds * time.Second,
	}
}

// LoadConfig reads the server configuration at path. A missing file (or an
// empty path) yields DefaultConfig. Environment overrides win over the file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read server config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse server config: %w", err)
			}
		}
	}

	cfg.applyEnv()
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	overrides := []struct {
		name   string
		target *string
	}{
		{AddressEnvVar, &c.Address},
		{MaxUploadSizeEnvVar, &c.MaxUploadSize},
		{VersionEnvVar, &c.Version},
	}
	for _, o := range overrides {
		if v := strings.TrimSpace(os.Getenv(o.name)); v != "" {
			*o.target = v
		}
	}
}

func (c *Config) normalize() error {
	if strings.TrimSpace(c.Address) == "" {
		c.Address = constants.DefaultServerAddress
	}

	size, err := ParseSize(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("maxUploadSize: %w", err)
	}
	if size <= 0 {
		size = constants.DefaultMaxUploadSizeBytes
	}
	c.uploadSizeBytes = size

	if c.readHeaderTimeout, err = parseTimeout(c.ReadHeaderTimeout, c.readHeaderTimeout); err != nil {
		return fmt.Errorf("readHeaderTimeout: %w", err)
	}
	if c.shutdownTimeout, err = parseTimeout(c.ShutdownTimeout, c.shutdownTimeout); err != nil {
		return fmt.Errorf("shutdownTimeout: %w", err)
	}
	return nil
}

func parseTimeout(raw string, fallback time.Duration) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration %q must be positive", raw)
	}
	return d, nil
}

// UploadSizeBytes is the request body limit for POST /api/calculate.
func (c *Config) UploadSizeBytes() int64 {
	return c.uploadSizeBytes
}

// SetUploadSizeBytes replaces the body limit, e.g. from a command-line flag.
// Non-positive sizes are ignored.
func (c *Config) SetUploadSizeBytes(size int64) {
	if size > 0 {
		c.uploadSizeBytes = size
		c.MaxUploadSize = strconv.FormatInt(size, 10)
	}
}

// ReadHeaderTimeoutDuration returns the parsed readHeaderTimeout.
func (c *Config) ReadHeaderTimeoutDuration() time.Duration {
	return c.readHeaderTimeout
}

// ShutdownTimeoutDuration returns the parsed shutdownTimeout.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	return c.shutdownTimeout
}

var sizeUnits = []struct {
	suffix     string
	multiplier int64
}{
	{"GB", 1 << 30}, {"G", 1 << 30},
	{"MB", 1 << 20}, {"M", 1 << 20},
	{"KB", 1 << 10}, {"K", 1 << 10},
	{"B", 1},
}

// ParseSize converts sizes such as "256K", "10MB" or "4096" into bytes.
// An empty value means the default limit.
func ParseSize(value string) (int64, error) {
	raw := strings.ToUpper(strings.TrimSpace(value))
	if raw == "" {
		return constants.DefaultMaxUploadSizeBytes, nil
	}

	multiplier := int64(1)
	for _, unit := range sizeUnits {
		if strings.HasSuffix(raw, unit.suffix) {
			raw = strings.TrimSpace(strings.TrimSuffix(raw, unit.suffix))
			multiplier = unit.multiplier
			break
		}
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", value, err)
	}
	if n < 0 || n > math.MaxInt64/multiplier {
		return 0, fmt.Errorf("size %q is out of range", value)
	}
	return n * multiplier, nil
}
