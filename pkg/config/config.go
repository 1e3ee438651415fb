package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/imdario/mergo"
	"go.uber.org/config"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Config defines the configuration structure for the query gateway.
type Config struct {
	LogLevel     string        `yaml:"logLevel"`
	AccessToken  string        `yaml:"accessToken"`
	QueryTimeout time.Duration `yaml:"queryTimeout"`

	Listen struct {
		HTTP string `yaml:"http"`
		GRPC string `yaml:"grpc"`
	} `yaml:"listen"`

	RateLimit RateLimit `yaml:"rateLimit"`

	HostMatcher map[string]string `yaml:"hostMatcher"`

	// Defaults are merged into every organization, explicit organization values win.
	Defaults      Organization             `yaml:"defaults"`
	Organizations map[string]*Organization `yaml:"organizations"`
}

// RateLimit configures per user request limits of the HTTP api, zero rps disables limiting.
type RateLimit struct {
	RPS     float64       `yaml:"rps"`
	Burst   int           `yaml:"burst"`
	IdleTTL time.Duration `yaml:"idleTTL"`
}

// Organization describes how the gateway reaches one organization of the network.
type Organization struct {
	MspID           string               `yaml:"mspId"`
	LegacyLifecycle bool                 `yaml:"legacyLifecycle"`
	TLS             *TLSCredentials      `yaml:"tls"`
	Admin           *Identity            `yaml:"admin"`
	Users           map[string]*Identity `yaml:"users"`
	Peers           map[string]*Peer     `yaml:"peers"`
}

// PeerNames returns sorted names of organization peers.
func (o *Organization) PeerNames() []string {
	names := maps.Keys(o.Peers)
	slices.Sort(names)
	return names
}

// Load config by file path
func Load(path string) (*Config, error) {
	pr, err := config.NewYAML(config.Expand(os.LookupEnv), config.File(path))
	if err != nil {
		return nil, err
	}
	return populate(pr)
}

// LoadBytes creates config from byte slice
func LoadBytes(b []byte) (*Config, error) {
	pr, err := config.NewYAML(config.Expand(os.LookupEnv), config.Source(bytes.NewBuffer(b)))
	if err != nil {
		return nil, err
	}
	return populate(pr)
}

func populate(pr *config.YAML) (*Config, error) {
	var c Config
	if err := pr.Get(config.Root).Populate(&c); err != nil {
		return nil, err
	}
	for name, org := range c.Organizations {
		if org == nil {
			org = new(Organization)
			c.Organizations[name] = org
		}
		if err := mergo.Merge(org, c.Defaults); err != nil {
			return nil, fmt.Errorf("merge defaults into organization %s: %w", name, err)
		}
	}
	return &c, nil
}

// Validate checks that config describes a usable gateway, all problems are reported at once.
func (c *Config) Validate() error {
	var result *multierror.Error
	if c.Listen.HTTP == "" {
		result = multierror.Append(result, fmt.Errorf("listen.http is not set"))
	}
	if c.Listen.GRPC == "" {
		result = multierror.Append(result, fmt.Errorf("listen.grpc is not set"))
	}
	if len(c.Organizations) == 0 {
		result = multierror.Append(result, fmt.Errorf("no organizations configured"))
	}
	for name, org := range c.Organizations {
		if org.MspID == "" {
			result = multierror.Append(result, fmt.Errorf("organization %s: mspId is not set", name))
		}
		if org.Admin == nil {
			result = multierror.Append(result, fmt.Errorf("organization %s: admin identity is not set", name))
		}
		if len(org.Peers) == 0 {
			result = multierror.Append(result, fmt.Errorf("organization %s: no peers", name))
		}
		for peerName, p := range org.Peers {
			if p == nil || p.Host == "" || p.Port == 0 {
				result = multierror.Append(result, fmt.Errorf("organization %s: peer %s: host and port are required", name, peerName))
			}
		}
		for user, id := range org.Users {
			if id == nil || id.Cert == "" {
				result = multierror.Append(result, fmt.Errorf("organization %s: user %s: cert is required", name, user))
			}
		}
	}
	return result.ErrorOrNil()
}
