package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvPairsEmptyIsNil(t *testing.T) {
	env, err := parseEnvPairs(nil)
	require.NoError(t, err)
	assert.Nil(t, env)
}

func TestParseEnvPairsSplitsKeyValue(t *testing.T) {
	env, err := parseEnvPairs([]string{"GOFLAGS=-mod=mod", "CGO_ENABLED=0"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"GOFLAGS": "-mod=mod", "CGO_ENABLED": "0"}, env)
}

func TestParseEnvPairsAllowsEmptyValue(t *testing.T) {
	env, err := parseEnvPairs([]string{"FOO="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"FOO": ""}, env)
}

func TestParseEnvPairsRejectsMissingEquals(t *testing.T) {
	_, err := parseEnvPairs([]string{"NOVALUE"})
	assert.Error(t, err)
}

func TestParseEnvPairsRejectsEmptyKey(t *testing.T) {
	_, err := parseEnvPairs([]string{"=value"})
	assert.Error(t, err)
}
