package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// StoreDriverPostgres keeps the ledger in a PostgreSQL database.
	StoreDriverPostgres = "postgres"
	// StoreDriverFile keeps the ledger in a YAML file.
	StoreDriverFile = "file"

	defaultSourceTimeout = 30 * time.Second
	defaultMailPort      = 25
)

// Settings is the top-level configuration for packager.
type Settings struct {
	Store         StoreSettings             `yaml:"store"          toml:"store"`
	Mail          MailSettings              `yaml:"mail"           toml:"mail"`
	Sources       map[string]SourceSettings `yaml:"sources"        toml:"sources"`
	SourceTimeout string                    `yaml:"source_timeout" toml:"source_timeout"` // e.g. "30s"
	Concurrency   int                       `yaml:"concurrency"    toml:"concurrency"`
}

// StoreSettings selects and locates the persistent store.
type StoreSettings struct {
	Driver string `yaml:"driver" toml:"driver"` // "postgres" or "file"
	URL    string `yaml:"url"    toml:"url"`    // postgres connection string
	Path   string `yaml:"path"   toml:"path"`   // file store location
}

// MailSettings describes the SMTP relay and the announcement recipient.
type MailSettings struct {
	Domain    string `yaml:"domain"     toml:"domain"`
	Recipient string `yaml:"recipient"  toml:"recipient"`
	RelayHost string `yaml:"relay_host" toml:"relay_host"`
	Port      int    `yaml:"port"       toml:"port"`
}

// SourceSettings holds per repository kind credentials.
type SourceSettings struct {
	Token   string `yaml:"token"    toml:"token"`    // Inline, ${ENV_VAR}, or file path
	BaseURL string `yaml:"base_url" toml:"base_url"` // self-hosted API endpoint
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads and parses a configuration file. Files ending in
// ".toml" are decoded as TOML, everything else as YAML. Environment
// variables are expanded and tokens pointing at files are read.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, decodeErr := toml.Decode(string(data), &settings); decodeErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", decodeErr)
		}
	} else if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.resolve()
	if validateErr := validate(&settings); validateErr != nil {
		return nil, validateErr
	}

	return &settings, nil
}

// NewSettingsFromEnv builds settings from DATABASE_URL, MAIL_DOMAIN,
// MAIL_RECIPIENT and MAIL_RELAY_HOST. It is used when no config file exists.
func NewSettingsFromEnv() (*Settings, error) {
	settings := Settings{
		Store: StoreSettings{
			Driver: StoreDriverPostgres,
			URL:    os.Getenv("DATABASE_URL"),
		},
		Mail: MailSettings{
			Domain:    os.Getenv("MAIL_DOMAIN"),
			Recipient: os.Getenv("MAIL_RECIPIENT"),
			RelayHost: os.Getenv("MAIL_RELAY_HOST"),
		},
		Sources: map[string]SourceSettings{
			string(RepositoryGitHub): {Token: os.Getenv("GITHUB_TOKEN")},
			string(RepositoryGitLab): {Token: os.Getenv("GITLAB_TOKEN")},
		},
	}

	settings.resolve()
	if err := validate(&settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".packager.yaml",
		".packager.yml",
		".packager.toml",
		"packager.yaml",
		"packager.yml",
		"packager.toml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// Timeout returns the per-component bound on a version source call.
func (s *Settings) Timeout() time.Duration {
	if s.SourceTimeout == "" {
		return defaultSourceTimeout
	}
	timeout, err := time.ParseDuration(s.SourceTimeout)
	if err != nil {
		return defaultSourceTimeout
	}
	return timeout
}

// Source returns the settings for the given repository kind.
func (s *Settings) Source(kind RepositoryKind) SourceSettings {
	return s.Sources[string(kind)]
}

// Validate checks that the mail section can be used to send announcements.
func (m MailSettings) Validate() error {
	if m.Domain == "" {
		return errors.New("mail.domain is required")
	}
	if m.Recipient == "" {
		return errors.New("mail.recipient is required")
	}
	if m.RelayHost == "" {
		return errors.New("mail.relay_host is required")
	}
	return nil
}

func (s *Settings) resolve() {
	s.Store.URL = expandEnv(s.Store.URL)
	s.Store.Path = expandEnv(s.Store.Path)
	if s.Store.Driver == "" {
		s.Store.Driver = StoreDriverPostgres
		if s.Store.URL == "" && s.Store.Path != "" {
			s.Store.Driver = StoreDriverFile
		}
	}

	s.Mail.Domain = expandEnv(s.Mail.Domain)
	s.Mail.Recipient = expandEnv(s.Mail.Recipient)
	s.Mail.RelayHost = expandEnv(s.Mail.RelayHost)
	if s.Mail.Port == 0 {
		s.Mail.Port = defaultMailPort
	}

	for kind, source := range s.Sources {
		source.Token = resolveToken(source.Token)
		source.BaseURL = expandEnv(source.BaseURL)
		s.Sources[kind] = source
	}
}

// expandEnv replaces ${VAR} references with their values.
func expandEnv(raw string) string {
	if raw == "" {
		return raw
	}
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	resolved := expandEnv(raw)
	if resolved == "" {
		return resolved
	}

	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// validate checks for required configuration values.
func validate(settings *Settings) error {
	switch settings.Store.Driver {
	case StoreDriverPostgres:
		if settings.Store.URL == "" {
			return errors.New("store.url is required for the postgres driver (or set DATABASE_URL)")
		}
	case StoreDriverFile:
		if settings.Store.Path == "" {
			return errors.New("store.path is required for the file driver")
		}
	default:
		return fmt.Errorf("unknown store.driver %q (expected %q or %q)",
			settings.Store.Driver, StoreDriverPostgres, StoreDriverFile)
	}

	if settings.SourceTimeout != "" {
		if _, err := time.ParseDuration(settings.SourceTimeout); err != nil {
			return fmt.Errorf("source_timeout %q is not a duration: %w", settings.SourceTimeout, err)
		}
	}

	if settings.Concurrency < 0 {
		return errors.New("concurrency must not be negative")
	}

	for kind := range settings.Sources {
		switch RepositoryKind(kind) {
		case RepositoryGit, RepositoryGitHub, RepositoryGitLab:
		default:
			return fmt.Errorf("sources.%s is not a known repository kind", kind)
		}
	}

	return nil
}
