package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"playground/internal/models"
	"playground/internal/retry"

	"github.com/stellar/go/network"
)

type Config struct {
	// HTTP port for the playground API
	APIPort int

	// debug, info, warn or error
	LogLevel string

	// Network passphrase deployments are reported against ( testnet by default )
	NetworkPassphrase string

	// Simulated latency per operation
	CompileDelay time.Duration
	DeployDelay  time.Duration
	InvokeDelay  time.Duration

	// Deploy is refused until the session has a completed compile
	RequireCompileBeforeDeploy bool

	// Seed for generated hashes and IDs ( 0 means seed from the clock )
	RandomSeed int64

	// Retry policy for backend calls
	Retry retry.Config
}

// Load returns the configuration read from the environment
func Load() *Config {
	return &Config{
		APIPort:  getEnvAsInt("API_PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// Mainnet passphrase: Public Global Stellar Network ; September 2015
		NetworkPassphrase: getEnv("NETWORK_PASSPHRASE", network.TestNetworkPassphrase),

		CompileDelay: getEnvAsMillis("COMPILE_DELAY_MS", 1500),
		DeployDelay:  getEnvAsMillis("DEPLOY_DELAY_MS", 2000),
		InvokeDelay:  getEnvAsMillis("INVOKE_DELAY_MS", 1000),

		RequireCompileBeforeDeploy: getEnvAsBool("REQUIRE_COMPILE_BEFORE_DEPLOY", false),

		RandomSeed: getEnvAsInt64("RANDOM_SEED", 0),

		Retry: retry.LoadConfig(),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.APIPort <= 0 || c.APIPort > 65535 {
		return fmt.Errorf("APIPort must be between 1 and 65535, got %d", c.APIPort)
	}
	if c.NetworkPassphrase == "" {
		return fmt.Errorf("NetworkPassphrase is required")
	}
	for kind, delay := range c.Delays() {
		if delay < 0 {
			return fmt.Errorf("%s delay must not be negative, got %s", kind, delay)
		}
	}
	if c.Retry.Enabled && c.Retry.MaxRetries < 0 {
		return fmt.Errorf("RETRY_MAX_RETRIES must not be negative")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown LogLevel %q", c.LogLevel)
	}
	return nil
}

// Delays returns the simulated latency of every operation kind
func (c *Config) Delays() map[models.OperationKind]time.Duration {
	return map[models.OperationKind]time.Duration{
		models.KindCompile: c.CompileDelay,
		models.KindDeploy:  c.DeployDelay,
		models.KindInvoke:  c.InvokeDelay,
	}
}

// Network returns the label shown in deploy results.
// Passphrases of private or standalone networks are reported as "custom".
func (c *Config) Network() string {
	label, err := NetworkLabel(c.NetworkPassphrase)
	if err != nil {
		return "custom"
	}
	return label
}

// NetworkLabel maps a Stellar network passphrase to its short name
func NetworkLabel(passphrase string) (string, error) {
	switch passphrase {
	case network.TestNetworkPassphrase:
		return "testnet", nil
	case network.PublicNetworkPassphrase:
		return "mainnet", nil
	case network.FutureNetworkPassphrase:
		return "futurenet", nil
	}
	return "", fmt.Errorf("unknown network passphrase %q", passphrase)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	val, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultVal
	}
	return val
}

func getEnvAsInt(key string, defaultVal int) int {
	val, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultVal
	}
	return val
}

func getEnvAsInt64(key string, defaultVal int64) int64 {
	val, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		return defaultVal
	}
	return val
}

func getEnvAsMillis(key string, defaultVal int) time.Duration {
	return time.Duration(getEnvAsInt(key, defaultVal)) * time.Millisecond
}
