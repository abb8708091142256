package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Noratrieb/go-minimize/internal/config"
)

// bindConfigFlags registers the engine's configuration surface on cmd
// and wires it through viper, layering flags over a .minimize.yaml
// file and the environment.
func bindConfigFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringSlice("extra-arg", nil, "extra argument forwarded to every oracle invocation")
	flags.StringSlice("env", nil, "extra KEY=VALUE environment variable forwarded to the oracle (repeatable)")
	flags.String("subcommand", "vet", "go subcommand the oracle runs to reproduce (e.g. vet, build)")
	flags.String("subcommand-lints", "", "go subcommand used for lint collection (defaults to --subcommand)")
	flags.String("project-dir", "", "directory oracle invocations run in (defaults to the workspace root)")
	flags.Bool("direct-compiler-mode", false, "invoke the Go compiler frontend directly on a single file")
	flags.Bool("no-verify", false, "treat every probe as reproducing, without running an oracle (demonstration only)")
	flags.String("script-path", "", "user script invoked instead of the Go toolchain for reproduce()")
	flags.String("script-path-lints", "", "user script invoked for lint collection (defaults to --script-path)")
	flags.Duration("probe-timeout", 0, "timeout for a single oracle invocation (0 = no timeout)")

	_ = viper.BindPFlag("extra_args", flags.Lookup("extra-arg"))
	_ = viper.BindPFlag("env", flags.Lookup("env"))
	_ = viper.BindPFlag("subcommand", flags.Lookup("subcommand"))
	_ = viper.BindPFlag("subcommand_lints", flags.Lookup("subcommand-lints"))
	_ = viper.BindPFlag("project_dir", flags.Lookup("project-dir"))
	_ = viper.BindPFlag("direct_compiler_mode", flags.Lookup("direct-compiler-mode"))
	_ = viper.BindPFlag("no_verify", flags.Lookup("no-verify"))
	_ = viper.BindPFlag("script_path", flags.Lookup("script-path"))
	_ = viper.BindPFlag("script_path_lints", flags.Lookup("script-path-lints"))
	_ = viper.BindPFlag("probe_timeout", flags.Lookup("probe-timeout"))
}

// loadConfig reads .minimize.yaml from the current directory (if
// present), layers environment variables prefixed MINIMIZE_, then the
// bound flags on top, producing the plain config.Config the core
// package consumes.
func loadConfig() (config.Config, error) {
	v := viper.GetViper()
	v.SetConfigName(".minimize")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("minimize")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return config.Config{}, fmt.Errorf("read .minimize.yaml: %w", err)
		}
	}

	cfg := config.Default()
	cfg.ExtraArgs = v.GetStringSlice("extra_args")
	env, err := parseEnvPairs(v.GetStringSlice("env"))
	if err != nil {
		return config.Config{}, err
	}
	cfg.Env = env
	if s := v.GetString("subcommand"); s != "" {
		cfg.Subcommand = s
	}
	cfg.SubcommandLints = v.GetString("subcommand_lints")
	cfg.ProjectDir = v.GetString("project_dir")
	cfg.DirectCompilerMode = v.GetBool("direct_compiler_mode")
	cfg.NoVerify = v.GetBool("no_verify")
	cfg.ScriptPath = v.GetString("script_path")
	cfg.ScriptPathLints = v.GetString("script_path_lints")
	if d := v.GetDuration("probe_timeout"); d > 0 {
		cfg.ProbeTimeout = d
	} else {
		cfg.ProbeTimeout = time.Duration(0)
	}

	return cfg, nil
}

// parseEnvPairs turns a list of "KEY=VALUE" strings, as collected from
// repeated --env flags, into the map config.Config.Env expects. It
// returns nil (not an empty map) when pairs is empty, so an unset
// --env still leaves cfg.Env at its config.Default() zero value.
func parseEnvPairs(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	env := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --env value %q: want KEY=VALUE", pair)
		}
		env[key] = value
	}
	return env, nil
}
