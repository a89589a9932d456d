package terraform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
	"github.com/rios0rios0/iaccrawl/internal/domain/repositories"
)

const (
	toolName       = "terraform"
	defaultTimeout = 120 * time.Second
	waitDelay      = 2 * time.Second
	maxDetail      = 512
)

// Validation steps reported in a failed verdict.
const (
	StageFiles       = "files"
	StageMaterialize = "materialize"
	StageInit        = "init"
	StageValidate    = "validate"
)

// TerraformValidatorRepository implements repositories.ValidatorRepository by
// running `terraform init` and `terraform validate` against a scratch copy of
// the candidate's files. Each call uses its own directory, so calls may run
// concurrently.
type TerraformValidatorRepository struct {
	binary         string
	timeout        time.Duration
	dryRun         bool
	pluginDir      string
	pluginCacheDir string
}

// NewTerraformValidatorRepository locates the terraform binary. Outside dry-run
// mode a missing binary fails with repositories.ErrToolNotFound.
func NewTerraformValidatorRepository(
	settings entities.ValidatorSettings,
) (repositories.ValidatorRepository, error) {
	binary := settings.Binary
	if binary == "" {
		binary = toolName
	}
	timeout := settings.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	if !settings.DryRun {
		resolved, err := exec.LookPath(binary)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", repositories.ErrToolNotFound, binary, err)
		}
		binary = resolved
	} else {
		logger.Warn("[terraform] Dry-run mode: syntax is not verified")
	}

	return &TerraformValidatorRepository{
		binary:         binary,
		timeout:        timeout,
		dryRun:         settings.DryRun,
		pluginDir:      settings.PluginDir,
		pluginCacheDir: settings.PluginCacheDir,
	}, nil
}

func (v *TerraformValidatorRepository) Name() string { return toolName }

// Validate reduces the tool's behavior to a verdict: it fails on a non-zero
// exit or a timeout of either step. An empty file set always fails, even in
// dry-run mode.
func (v *TerraformValidatorRepository) Validate(
	ctx context.Context,
	files []entities.SourceFile,
) (entities.ValidationVerdict, error) {
	if len(files) == 0 {
		return entities.FailedVerdict(StageFiles, "no files to validate"), nil
	}
	if v.dryRun {
		return entities.PassedVerdict(), nil
	}

	dir, err := os.MkdirTemp("", "tf-validate-*")
	if err != nil {
		return entities.ValidationVerdict{}, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer func() {
		if removeErr := os.RemoveAll(dir); removeErr != nil {
			logger.Warnf("[terraform] Failed to remove %s: %v", dir, removeErr)
		}
	}()

	if detail := materialize(dir, files); detail != "" {
		return entities.FailedVerdict(StageMaterialize, detail), nil
	}

	initArgs := []string{"init", "-backend=false", "-get=false", "-input=false", "-no-color"}
	if v.pluginDir != "" {
		initArgs = append(initArgs, "-plugin-dir="+v.pluginDir)
	}
	steps := []struct {
		stage string
		args  []string
	}{
		{stage: StageInit, args: initArgs},
		{stage: StageValidate, args: []string{"validate", "-no-color"}},
	}

	for _, step := range steps {
		detail, runErr := v.run(ctx, dir, step.args)
		if runErr != nil {
			return entities.ValidationVerdict{}, runErr
		}
		if detail != "" {
			if logger.IsLevelEnabled(logger.DebugLevel) {
				for _, line := range diagnose(files).lines() {
					logger.Debugf("[terraform] %s: %s", step.stage, line)
				}
			}
			return entities.FailedVerdict(step.stage, detail), nil
		}
	}
	return entities.PassedVerdict(), nil
}

// run executes one step under its own timeout. It returns a non-empty detail
// when the step failed, and an error only when the parent ctx ended.
func (v *TerraformValidatorRepository) run(ctx context.Context, dir string, args []string) (string, error) {
	stepCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	cmd := exec.CommandContext(stepCtx, v.binary, args...)
	cmd.Dir = dir
	cmd.Env = v.environ()
	cmd.WaitDelay = waitDelay
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	isolate(cmd)

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if errors.Is(stepCtx.Err(), context.DeadlineExceeded) {
		return fmt.Sprintf("%s timed out after %s", args[0], v.timeout), nil
	}
	if err != nil {
		if stderr.Len() > 0 {
			logger.Debugf("[terraform] %s stderr:\n%s", args[0], stderr.String())
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Sprintf("%s exited with code %d", args[0], exitErr.ExitCode()), nil
		}
		return truncate(fmt.Sprintf("%s could not run: %v", args[0], err)), nil
	}
	return "", nil
}

func (v *TerraformValidatorRepository) environ() []string {
	env := append(os.Environ(), "TF_IN_AUTOMATION=1", "TF_INPUT=0")
	if v.pluginCacheDir != "" {
		env = append(env, "TF_PLUGIN_CACHE_DIR="+v.pluginCacheDir)
	}
	return env
}

// materialize writes the files under dir, keeping their relative paths. It
// returns a detail message when a path would land outside dir.
func materialize(dir string, files []entities.SourceFile) string {
	for _, file := range files {
		rel := filepath.FromSlash(file.Path)
		if !filepath.IsLocal(rel) {
			return fmt.Sprintf("path %q is not local to the repository", file.Path)
		}
		target := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
			return fmt.Sprintf("failed to create directory for %q: %v", file.Path, err)
		}
		if err := os.WriteFile(target, []byte(file.Content), 0o600); err != nil {
			return fmt.Sprintf("failed to write %q: %v", file.Path, err)
		}
	}
	return ""
}

func truncate(detail string) string {
	detail = strings.TrimSpace(detail)
	if len(detail) > maxDetail {
		return detail[:maxDetail] + "..."
	}
	return detail
}
