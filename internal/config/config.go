// Package config loads the settings.yaml file that names warehouse
// connections and SQL source directories.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roomview-sql/roomview/pkg/roomview"
)

// ErrConfigNotFound is returned when the settings file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound);
// it also classifies as roomview.ErrInvalidConfig.
var ErrConfigNotFound = fmt.Errorf("settings file not found: %w", roomview.ErrInvalidConfig)

// DefaultFileName is the settings file looked up when no --settings flag
// is given.
const DefaultFileName = "settings.yaml"

// DefaultName is the connection/directory entry used when none is named
// on the command line.
const DefaultName = "default"

// ConnectionConfig holds the parameters for one named warehouse
// connection.
type ConnectionConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password,omitempty"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode,omitempty"`

	// AuthMethod selects how credentials are obtained: "standard"
	// (default, username/password) or "aws-iam" (token from the AWS
	// credential chain).
	AuthMethod string `yaml:"auth_method,omitempty"`

	// AWSRegion is required when AuthMethod is "aws-iam".
	AWSRegion string `yaml:"aws_region,omitempty"`
}

// Settings is the parsed settings.yaml: named connections and named SQL
// source directory roots.
type Settings struct {
	Connections map[string]ConnectionConfig `yaml:"connections"`
	Directories map[string]string           `yaml:"directories"`
}

// Load reads and parses the settings file at path.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrConfigNotFound)
		}
		return nil, err
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parsing %s: %w: %w", path, roomview.ErrInvalidConfig, err)
	}
	return &settings, nil
}

// Connection resolves a named connection entry.
func (s *Settings) Connection(name string) (ConnectionConfig, error) {
	conn, ok := s.Connections[name]
	if !ok {
		return ConnectionConfig{}, fmt.Errorf("unrecognized connection name %q: %w", name, roomview.ErrInvalidConfig)
	}
	return conn, nil
}

// ResolveDirectories maps directory entry names to their configured
// roots, preserving the requested order.
func (s *Settings) ResolveDirectories(names []string) ([]string, error) {
	roots := make([]string, 0, len(names))
	for _, name := range names {
		root, ok := s.Directories[name]
		if !ok {
			return nil, fmt.Errorf("unrecognized directory name %q: %w", name, roomview.ErrInvalidConfig)
		}
		roots = append(roots, root)
	}
	return roots, nil
}
