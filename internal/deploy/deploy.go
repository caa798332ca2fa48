// Package deploy inspects the Docker deployment fixtures shipped with
// the repository: the compose file describing the app and SurrealDB
// services, and the env files feeding them.
package deploy

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/yargevad/filepathx"
	"gopkg.in/yaml.v3"
)

// Compose is the subset of the compose schema the deployment relies on.
type Compose struct {
	Services map[string]ComposeService `yaml:"services"`
	Networks map[string]yaml.Node      `yaml:"networks"`
	Volumes  map[string]yaml.Node      `yaml:"volumes"`
}

// ComposeService models one service entry. Fields whose compose syntax
// varies (list vs map) stay as yaml.Node and are interpreted by callers.
type ComposeService struct {
	Image       string    `yaml:"image"`
	Command     yaml.Node `yaml:"command"`
	Ports       []string  `yaml:"ports"`
	DependsOn   yaml.Node `yaml:"depends_on"`
	Environment []string  `yaml:"environment"`
	Volumes     []string  `yaml:"volumes"`
	Healthcheck yaml.Node `yaml:"healthcheck"`
	Networks    []string  `yaml:"networks"`
	Restart     string    `yaml:"restart"`
}

// FindComposeFile locates the compose file under dir, accepting both the
// .yaml and .yml spellings.
func FindComposeFile(dir string) (string, error) {
	for _, pattern := range []string{"docker-compose.yaml", "docker-compose.yml"} {
		matches, err := filepathx.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return "", err
		}
		if len(matches) > 0 {
			return matches[0], nil
		}
	}
	return "", fmt.Errorf("no compose file under %s", dir)
}

// LoadCompose parses the compose file at path.
func LoadCompose(path string) (*Compose, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Compose
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &c, nil
}

// ReadEnvFile parses a key=value env file without touching the process
// environment.
func ReadEnvFile(path string) (map[string]string, error) {
	return godotenv.Read(path)
}
