package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Well-known hardhat deployment addresses, used as local defaults.
const (
	defaultPostTweetAddr   = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	defaultInteractionAddr = "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512"
)

func defaultEndpoints() Endpoints {
	return Endpoints{
		ChainRPCURL:     "http://localhost:8545",
		AuthBaseURL:     "http://localhost:4000",
		PinningBaseURL:  "https://api.pinata.cloud",
		GatewayBaseURL:  "https://gateway.pinata.cloud",
		PostTweetAddr:   defaultPostTweetAddr,
		InteractionAddr: defaultInteractionAddr,
		ChainID:         31337,
	}
}

// DefaultEndpoints returns the default endpoint set for local development.
func DefaultEndpoints() Endpoints {
	return defaultEndpoints()
}

func defaultContext() Context {
	return Context{
		Name:      "local",
		Endpoints: defaultEndpoints(),
	}
}

func defaultConfig() Config {
	ctx := defaultContext()
	return Config{
		Current:  ctx.Name,
		Contexts: map[string]Context{ctx.Name: ctx},
	}
}

func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".dtwitter")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func Load() (Config, string, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, "", err
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := defaultConfig()
		return cfg, path, nil
	}
	if err != nil {
		return Config{}, path, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, path, err
	}
	if cfg.Contexts == nil || cfg.Current == "" { // minimal fixup
		d := defaultConfig()
		if cfg.Contexts == nil {
			cfg.Contexts = d.Contexts
		}
		if cfg.Current == "" {
			cfg.Current = d.Current
		}
	}
	return cfg, path, nil
}

func Save(cfg Config, path string) error {
	if path == "" {
		var err error
		path, err = ConfigPath()
		if err != nil {
			return err
		}
	}
	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

func GetCurrent(cfg Config) Context {
	if c, ok := cfg.Contexts[cfg.Current]; ok {
		return c
	}
	return defaultContext()
}

// ResolveAuth merges context auth with ~/.dtwitter/.env and OS env values.
func ResolveAuth(ctx Context) Auth {
	auth := ctx.Auth
	envMap, _ := LoadEnvFile()
	if auth.AuthToken == "" {
		if v := GetEnvValue("AUTH_TOKEN", envMap); v != "" {
			auth.AuthToken = v
		}
	}
	return auth
}

// LoadEnvFile loads environment variables from a .env file.
// It looks for .env in the current directory first, then in ~/.dtwitter/.env
// Returns a map of key=value pairs. Does not modify os.Environ().
func LoadEnvFile() (map[string]string, error) {
	envMap := make(map[string]string)

	// Try current directory first
	paths := []string{".env"}

	// Then try ~/.dtwitter/.env
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".dtwitter", ".env"))
	}

	for _, path := range paths {
		if err := loadEnvFileInto(path, envMap); err == nil {
			return envMap, nil
		}
	}

	return envMap, nil // Return empty map if no .env found (not an error)
}

func loadEnvFileInto(path string, envMap map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove surrounding quotes if present
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		envMap[key] = value
	}

	return scanner.Err()
}

// GetEnvValue returns an environment variable value, checking:
// 1. OS environment (os.Getenv)
// 2. Loaded .env file values
func GetEnvValue(key string, envMap map[string]string) string {
	// OS env takes precedence
	if v := os.Getenv(key); v != "" {
		return v
	}
	// Fall back to .env file
	if envMap != nil {
		return envMap[key]
	}
	return ""
}

// EnvFilePath returns the path to the .env file in ~/.dtwitter/
func EnvFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".dtwitter")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, ".env"), nil
}

// SaveEnvValue saves or updates a key=value pair in ~/.dtwitter/.env
// This preserves other values in the file.
func SaveEnvValue(key, value string) error {
	envPath, err := EnvFilePath()
	if err != nil {
		return err
	}

	// Load existing values
	envMap := make(map[string]string)
	_ = loadEnvFileInto(envPath, envMap) // Ignore error if file doesn't exist

	// Update the value
	envMap[key] = value

	// Write all values back
	return writeEnvFile(envPath, envMap)
}

// DeleteEnvValue removes a key from ~/.dtwitter/.env if present.
func DeleteEnvValue(key string) error {
	envPath, err := EnvFilePath()
	if err != nil {
		return err
	}

	envMap := make(map[string]string)
	_ = loadEnvFileInto(envPath, envMap)

	if _, ok := envMap[key]; !ok {
		return nil
	}
	delete(envMap, key)

	return writeEnvFile(envPath, envMap)
}

// writeEnvFile writes all key=value pairs to the .env file
func writeEnvFile(path string, envMap map[string]string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	// Write header comment
	_, _ = file.WriteString("# dtwitter CLI credentials\n")
	_, _ = file.WriteString("# Generated by 'dtwitter login'\n\n")

	// Write each key=value
	for k, v := range envMap {
		// Quote values containing spaces or special characters
		if strings.ContainsAny(v, " \t\n\"'") {
			v = "\"" + strings.ReplaceAll(v, "\"", "\\\"") + "\""
		}
		if _, err := fmt.Fprintf(file, "%s=%s\n", k, v); err != nil {
			return err
		}
	}

	return nil
}
