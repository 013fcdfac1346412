package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko"
	"gopkg.in/yaml.v3"
)

// yamlConfig is a schuko.Configuration read from a YAML file. Nested
// mappings are flattened into dotted keys, i.e.
//
//    tickle:
//      maxdepth: 500
//
// is accessible as "tickle.maxdepth".
type yamlConfig struct {
	values map[string]interface{}
}

var _ schuko.Configuration = (*yamlConfig)(nil)

func newConfig() *yamlConfig {
	return &yamlConfig{values: make(map[string]interface{})}
}

// loadConfig reads a YAML configuration. An empty document is a valid, empty
// configuration.
func loadConfig(r io.Reader) (*yamlConfig, error) {
	conf := newConfig()
	var doc map[string]interface{}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("cannot read configuration: %w", err)
	}
	conf.flatten("", doc)
	return conf, nil
}

func loadConfigFile(filename string) (*yamlConfig, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return loadConfig(f)
}

func (c *yamlConfig) flatten(prefix string, m map[string]interface{}) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]interface{}); ok {
			c.flatten(key, sub)
			continue
		}
		c.values[key] = v
	}
}

// InitDefaults is part of interface schuko.Configuration.
func (c *yamlConfig) InitDefaults() {
	if !c.IsSet("tracing.adapter") {
		c.Set("tracing.adapter", "go")
	}
}

// Set sets a configuration value.
func (c *yamlConfig) Set(key string, value interface{}) {
	c.values[key] = value
}

// IsSet is part of interface schuko.Configuration.
func (c *yamlConfig) IsSet(key string) bool {
	_, ok := c.values[key]
	return ok
}

// GetString is part of interface schuko.Configuration.
func (c *yamlConfig) GetString(key string) string {
	v, ok := c.values[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// GetInt is part of interface schuko.Configuration.
func (c *yamlConfig) GetInt(key string) int {
	switch v := c.values[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(v))
		return n
	}
	return 0
}

// GetBool is part of interface schuko.Configuration.
func (c *yamlConfig) GetBool(key string) bool {
	switch v := c.values[key].(type) {
	case bool:
		return v
	case int:
		return v != 0
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(v))
		return b
	}
	return false
}

// IsInteractive is part of interface schuko.Configuration.
func (c *yamlConfig) IsInteractive() bool {
	return c.GetBool("interactive")
}
