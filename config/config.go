package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process wide configuration, read once at startup from
// the environment (and an optional .env file) and never mutated after
// the command line flags are applied.
type Config struct {
	Network     string `env:"REPSCAN_NETWORK" envDefault:"mainnet"`
	NodeURL     string `env:"REPSCAN_NODE_URL"`
	NetworksDir string `env:"REPSCAN_NETWORKS_DIR"`

	InfuraAPIKey     string `env:"INFURA_API_KEY"`
	AlchemyAPIKey    string `env:"ALCHEMY_API_KEY"`
	AlchemyNFTURL    string `env:"ALCHEMY_NFT_URL"`
	SnapshotURL      string `env:"SNAPSHOT_URL" envDefault:"https://hub.snapshot.org/graphql"`
	SnapshotPageSize int    `env:"SNAPSHOT_PAGE_SIZE" envDefault:"1000"`
	ScoringURL       string `env:"SCORING_URL" envDefault:"https://mlflaskmodel.onrender.com/predict"`

	GitHubClientID     string `env:"GITHUB_CLIENT_ID"`
	GitHubClientSecret string `env:"GITHUB_CLIENT_SECRET"`
	FrontendURL        string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`

	Rewards Rewards

	Addr        string        `env:"REPSCAN_ADDR" envDefault:":30008"`
	Timeout     time.Duration `env:"REPSCAN_TIMEOUT" envDefault:"10s"`
	ProviderRPS float64       `env:"REPSCAN_PROVIDER_RPS" envDefault:"10"`

	LogLevel     string `env:"REPSCAN_LOG_LEVEL" envDefault:"info"`
	LogJSON      bool   `env:"REPSCAN_LOG_JSON" envDefault:"false"`
	OTELEndpoint string `env:"REPSCAN_OTEL_ENDPOINT"`
}

// Rewards configures the reward token and role badge contracts. The
// rewards routes are only mounted when a private key is set.
type Rewards struct {
	Network      string `env:"REWARDS_NETWORK" envDefault:"sepolia"`
	RPCURL       string `env:"REWARDS_RPC_URL"`
	PrivateKey   string `env:"PRIVATE_KEY"`
	TokenAddress string `env:"AGT_TOKEN_ADDRESS"`
	BadgeAddress string `env:"ROLE_BADGE_NFT_ADDRESS"`
}

func (r Rewards) Enabled() bool {
	return strings.TrimSpace(r.PrivateKey) != ""
}

// Load reads the configuration. Variables from envFile fill in what the
// process environment leaves unset. A missing envFile is not an error.
func Load(envFile string) (*Config, error) {
	environment := env.ToMap(os.Environ())
	if envFile != "" {
		fileVars, err := readEnvFile(envFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		for k, v := range fileVars {
			if environment[k] == "" {
				environment[k] = v
			}
		}
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environment}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.ProviderRPS < 0 {
		return fmt.Errorf("provider rps must not be negative, got %v", c.ProviderRPS)
	}
	if c.SnapshotPageSize <= 0 || c.SnapshotPageSize > 1000 {
		return fmt.Errorf("snapshot page size must be within 1..1000, got %d", c.SnapshotPageSize)
	}
	return nil
}

func readEnvFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	res := map[string]string{}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(strings.TrimPrefix(parts[0], "export "))
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)
		res[key] = value
	}
	return res, nil
}
