package vrepsim

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultPort is the port the remote API server listens on when started
// from the simulator's default configuration.
const DefaultPort = 19997

// Config holds the connection settings for a remote API session.
type Config struct {
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"` // Server address (default: 127.0.0.1)
	Port int    `json:"port,omitempty" yaml:"port,omitempty"` // Server port (default: 19997)

	// WaitUntilConnected keeps retrying the connection until Timeout
	// instead of failing on the first refused attempt.
	WaitUntilConnected bool `json:"wait_until_connected,omitempty" yaml:"wait_until_connected,omitempty"`

	Timeout   time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`       // Connection timeout (default: 5s)
	CommCycle time.Duration `json:"comm_cycle,omitempty" yaml:"comm_cycle,omitempty"` // Delay between connection attempts (default: 5ms)
}

// DefaultConfig returns a config for a simulator on the local machine.
func DefaultConfig() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// Validate fills in defaults and checks ranges.
func (cfg *Config) Validate() error {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1"
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return errors.Errorf("port must be between 1 and 65535, got %d", cfg.Port)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	if cfg.CommCycle == 0 {
		cfg.CommCycle = 5 * time.Millisecond
	}
	if cfg.CommCycle < 0 {
		return errors.New("comm_cycle must not be negative")
	}
	return nil
}

// UnmarshalYAML accepts durations in the usual "5s"/"250ms" notation,
// which yaml.v3 does not handle for time.Duration on its own.
func (cfg *Config) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Addr               string `yaml:"addr"`
		Port               int    `yaml:"port"`
		WaitUntilConnected bool   `yaml:"wait_until_connected"`
		Timeout            string `yaml:"timeout"`
		CommCycle          string `yaml:"comm_cycle"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	cfg.Addr = raw.Addr
	cfg.Port = raw.Port
	cfg.WaitUntilConnected = raw.WaitUntilConnected
	if raw.Timeout != "" {
		timeout, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return errors.Wrap(err, "parse timeout")
		}
		cfg.Timeout = timeout
	}
	if raw.CommCycle != "" {
		cycle, err := time.ParseDuration(raw.CommCycle)
		if err != nil {
			return errors.Wrap(err, "parse comm_cycle")
		}
		cfg.CommCycle = cycle
	}
	return nil
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parse config YAML")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
