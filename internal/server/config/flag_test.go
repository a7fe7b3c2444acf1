package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags_Overrides(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"app", "-a", ":7070", "-s", "flag-secret", "-t", "90", "-w", "8"}

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, c.EndpointAddr, ":7070")
	assert.Equal(t, c.SecretKey, "flag-secret")
	assert.Equal(t, c.TokenValidityDuration, 90*time.Minute)
	assert.Equal(t, c.BcryptCost, 8)
}

func TestParseFlags_UnknownFlagsIgnored(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"app", "-z", "whatever", "-d", "postgres://localhost/users"}

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, c.DatabaseDSN, "postgres://localhost/users")
	assert.Equal(t, c.EndpointAddr, ":5000")
}
