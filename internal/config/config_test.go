package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Noratrieb/go-minimize/internal/config"
)

func TestDefaultUsesVet(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "vet", cfg.Subcommand)
	assert.False(t, cfg.NoVerify)
}

func TestEffectiveSubcommandLintsFallsBackToSubcommand(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "vet", cfg.EffectiveSubcommandLints())

	cfg.SubcommandLints = "build"
	assert.Equal(t, "build", cfg.EffectiveSubcommandLints())
}

func TestEffectiveScriptPathLintsFallsBackToScriptPath(t *testing.T) {
	cfg := config.Default()
	cfg.ScriptPath = "./oracle.sh"
	assert.Equal(t, "./oracle.sh", cfg.EffectiveScriptPathLints())

	cfg.ScriptPathLints = "./lints.sh"
	assert.Equal(t, "./lints.sh", cfg.EffectiveScriptPathLints())
}
