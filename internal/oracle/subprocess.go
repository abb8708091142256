package oracle

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/Noratrieb/go-minimize/internal/config"
)

// SubprocessOracle adapts config.Config into the Oracle contract by
// shelling out to either a user script (config.ScriptPath /
// ScriptPathLints) or the Go toolchain directly (config.Subcommand /
// SubcommandLints).
type SubprocessOracle struct {
	cfg config.Config
}

// New builds a SubprocessOracle from cfg.
func New(cfg config.Config) *SubprocessOracle {
	return &SubprocessOracle{cfg: cfg}
}

// Reproduce runs the reproduction command and interprets its exit code:
// 0 = reproduces, non-zero = does not, signal-terminated = does not.
// config.NoVerify short-circuits to Yes for every probe (demonstration
// mode). config.VerifyFn, when set, overrides exit-code semantics
// entirely.
func (o *SubprocessOracle) Reproduce(workdir string) (Result, error) {
	if o.cfg.NoVerify {
		return Yes, nil
	}

	stdout, stderr, exitCode, err := o.run(workdir, o.cfg.ScriptPath, o.cfg.Subcommand)
	if err != nil {
		return Unknown, fmt.Errorf("oracle transport failure: %w", err)
	}

	if o.cfg.VerifyFn != nil {
		if o.cfg.VerifyFn(stdout, stderr, exitCode) {
			return Yes, nil
		}
		return No, nil
	}

	if exitCode == 0 {
		return Yes, nil
	}
	return No, nil
}

// CollectLints runs the lint-collection command and parses its output
// in whichever of the two accepted wire formats it advertises. A
// malformed or unrecognized payload is not fatal: it yields an empty
// candidate set for that iteration's lint-driven passes.
func (o *SubprocessOracle) CollectLints(workdir string) ([]LintRecord, error) {
	if o.cfg.NoVerify {
		return nil, nil
	}

	stdout, stderr, _, err := o.run(workdir, o.cfg.EffectiveScriptPathLints(), o.cfg.EffectiveSubcommandLints())
	if err != nil {
		return nil, fmt.Errorf("oracle transport failure: %w", err)
	}

	format, payload, ok := detectFormat(stdout, stderr)
	if !ok {
		return nil, nil
	}

	switch format {
	case formatGovet:
		records, decErr := decodeGovetJSON(payload)
		if decErr != nil {
			return nil, nil
		}
		return records, nil
	case formatStaticcheck:
		records, decErr := decodeStaticcheckJSON(payload)
		if decErr != nil {
			return nil, nil
		}
		return records, nil
	default:
		return nil, nil
	}
}

func (o *SubprocessOracle) run(workdir, scriptPath, subcommand string) (stdout, stderr []byte, exitCode int, err error) {
	ctx := context.Background()
	var cancel context.CancelFunc
	if o.cfg.ProbeTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, o.cfg.ProbeTimeout)
		defer cancel()
	}

	var cmd *exec.Cmd
	switch {
	case scriptPath != "":
		cmd = exec.CommandContext(ctx, scriptPath, o.cfg.ExtraArgs...)
	case o.cfg.DirectCompilerMode:
		args := append([]string{subcommand}, o.cfg.ExtraArgs...)
		cmd = exec.CommandContext(ctx, "go", args...)
	default:
		args := append([]string{subcommand, "./..."}, o.cfg.ExtraArgs...)
		cmd = exec.CommandContext(ctx, "go", args...)
	}

	dir := o.cfg.ProjectDir
	if dir == "" {
		dir = workdir
	}
	cmd.Dir = dir
	cmd.Env = mergedEnv(o.cfg.Env)

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	runErr := cmd.Run()
	stdout, stderr = outBuf.Bytes(), errBuf.Bytes()

	if runErr == nil {
		return stdout, stderr, 0, nil
	}
	if exitErr, ok := runErr.(*exec.ExitError); ok {
		if exitErr.ProcessState != nil && !exitErr.ProcessState.Exited() {
			// Signal-terminated: treated as "does not reproduce".
			return stdout, stderr, 1, nil
		}
		return stdout, stderr, exitErr.ExitCode(), nil
	}
	// Could not even spawn/read the process: oracle-transport failure.
	return stdout, stderr, -1, runErr
}

func mergedEnv(extra map[string]string) []string {
	env := os.Environ()
	for k, v := range extra {
		env = append(env, k+"="+v)
	}
	return env
}

type wireFormat int

const (
	formatUnknown wireFormat = iota
	formatGovet
	formatStaticcheck
)

const (
	headerGovet       = "minimize-fmt-govet"
	headerStaticcheck = "minimize-fmt-staticcheck"
)

// detectFormat scans the header from stdout first, falling back to
// stderr only if stdout carries no header line at all, because both
// accepted formats write their JSON payload to stdout.
func detectFormat(stdout, stderr []byte) (wireFormat, []byte, bool) {
	if f, rest, ok := scanHeader(stdout); ok {
		return f, rest, true
	}
	if f, rest, ok := scanHeader(stderr); ok {
		return f, rest, true
	}
	return formatUnknown, nil, false
}

func scanHeader(data []byte) (wireFormat, []byte, bool) {
	line, rest, _ := bytesCutNewline(data)
	header := strings.TrimSpace(string(line))
	switch header {
	case headerGovet:
		return formatGovet, rest, true
	case headerStaticcheck:
		return formatStaticcheck, rest, true
	default:
		return formatUnknown, nil, false
	}
}

func bytesCutNewline(data []byte) (line, rest []byte, found bool) {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return data[:i], data[i+1:], true
	}
	return data, nil, false
}
