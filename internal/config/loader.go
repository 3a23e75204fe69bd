// Package config loads the parley profile file: named control-plane
// targets with their default headers, timeout and TLS policy.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/parley/internal/http"
)

// Config is the top-level profile file.
type Config struct {
	Profiles map[string]Profile `json:"profiles" yaml:"profiles"`
}

// Profile names one control-plane target. Exactly one of URL (TCP target,
// scheme://host[:port]) or Socket (Unix socket path) must be set.
type Profile struct {
	URL      string            `json:"url,omitempty" yaml:"url,omitempty"`
	Socket   string            `json:"socket,omitempty" yaml:"socket,omitempty"`
	Headers  map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Timeout  string            `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	Insecure bool              `json:"insecure,omitempty" yaml:"insecure,omitempty"`
}

// Load reads and parses the profile file at path.
//
// The format is determined by extension:
//   - .yaml, .yml -> YAML
//   - .json -> JSON
//
// Unknown or missing extensions fall back to YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data, path)
}

// Parse parses profile data; path is used only to pick the decoder.
func Parse(data []byte, path string) (*Config, error) {
	var config Config

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}

	if errs := Validate(&config); len(errs) > 0 {
		return nil, fmt.Errorf("invalid config: %s", errs[0].Error())
	}
	return &config, nil
}

// Request builds a Request preconfigured for the named profile. The
// returned builder still needs a method and path.
func (c *Config) Request(name string) (*http.Request, error) {
	profile, ok := c.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("unknown profile %q", name)
	}

	req := http.NewRequest()
	if profile.Socket != "" {
		req.UnixSocket(profile.Socket)
	} else {
		req.Tcp(profile.URL)
	}
	if req.Err() != nil {
		return nil, req.Err()
	}

	for key, value := range profile.Headers {
		req.SetHeader(key, value)
	}
	if profile.Timeout != "" {
		d, err := time.ParseDuration(profile.Timeout)
		if err != nil {
			return nil, fmt.Errorf("profile %q: bad timeout: %w", name, err)
		}
		req.WithTimeout(d)
	}
	if profile.Insecure {
		req.Secure(false)
	}
	return req, nil
}
