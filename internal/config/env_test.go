// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	t.Setenv("WEBAPP_CONFIGS_PATH", "/opt/webapp/configs")
	t.Setenv("WEBAPP_LOG_LEVEL", "trace")

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.NoError(t, err)
	assert.Equal(t, "/opt/webapp/configs", cfg.ConfigsPath)
	assert.Equal(t, "trace", cfg.LogLevel)
	assert.Empty(t, cfg.Args, "Args is never read from the environment")
}

func TestParseEnv_UnprefixedIgnored(t *testing.T) {
	t.Setenv("WEBAPP_CONFIGS_PATH", "")
	t.Setenv("CONFIGS_PATH", "/should/not/be/used")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))
	assert.Empty(t, cfg.ConfigsPath)
}

func TestParseEnv_NonPointer(t *testing.T) {
	err := parseEnv(StructuredConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}
