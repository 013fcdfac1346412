package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
tracing:
  adapter: go
tracelevel:
  tickle.interp: Debug
tickle:
  maxdepth: 500
  strict-control: false
repl:
  history: /tmp/tickle.history
`

func TestLoadConfig(t *testing.T) {
	conf, err := loadConfig(strings.NewReader(testYAML))
	require.NoError(t, err)
	assert.Equal(t, "go", conf.GetString("tracing.adapter"))
	assert.Equal(t, "Debug", conf.GetString("tracelevel.tickle.interp"))
	assert.Equal(t, 500, conf.GetInt("tickle.maxdepth"))
	assert.True(t, conf.IsSet("tickle.strict-control"))
	assert.False(t, conf.GetBool("tickle.strict-control"))
	assert.Equal(t, "/tmp/tickle.history", conf.GetString("repl.history"))
	assert.False(t, conf.IsSet("tickle"))
	assert.Equal(t, "", conf.GetString("no.such.key"))
	assert.Equal(t, 0, conf.GetInt("no.such.key"))
}

func TestConfigDefaults(t *testing.T) {
	conf, err := loadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.False(t, conf.IsSet("tracing.adapter"))
	conf.InitDefaults()
	assert.Equal(t, "go", conf.GetString("tracing.adapter"))
	conf.Set("tickle.maxdepth", "77")
	assert.Equal(t, 77, conf.GetInt("tickle.maxdepth"))
	conf.Set("interactive", "true")
	assert.True(t, conf.IsInteractive())
}

func TestConfigSyntaxError(t *testing.T) {
	_, err := loadConfig(strings.NewReader("tickle: [unclosed"))
	assert.Error(t, err)
}
