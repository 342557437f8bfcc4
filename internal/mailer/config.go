package mailer

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config lists the SMTP servers invites are sent through plus the shared
// sender headers.
type Config struct {
	Servers []Server `yaml:"servers"`
	From    string   `yaml:"from"`
	ReplyTo []string `yaml:"replyTo"`
}

type Server struct {
	Host               string `yaml:"host"`
	Port               string `yaml:"port"`
	Connections        int    `yaml:"connections"`
	InsecureSkipVerify bool   `yaml:"insecureSkipVerify"`
	Auth               struct {
		Username string `yaml:"user"`
		Password string `yaml:"password"`
	} `yaml:"auth"`
	// SendTimeout bounds a single delivery attempt, in seconds.
	SendTimeout int `yaml:"sendTimeout"`
}

// Address is the host:port dial target of the SMTP server.
func (s *Server) Address() string {
	return s.Host + ":" + s.Port
}

// LoadConfig reads and validates the YAML server list at path.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read smtp config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.UnmarshalStrict(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse smtp config %s: %w", path, err)
	}
	if len(cfg.Servers) == 0 {
		return nil, errors.New("smtp config: at least one server is required")
	}
	if cfg.From == "" {
		return nil, errors.New("smtp config: from address is required")
	}
	return &cfg, nil
}
