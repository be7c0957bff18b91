package workflows

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/envseal/internal/envfile"
	"github.com/PolarWolf314/envseal/internal/kubeseal"
	"github.com/PolarWolf314/envseal/internal/manifest"
	"github.com/PolarWolf314/envseal/internal/utils"
	"github.com/google/uuid"
)

// File names used inside the run directory and, with KeepOutput, in OutputDir.
const (
	SecretFile       = "secret.yaml"
	SealedSecretFile = "sealed-secret.yaml"
)

// StdinSource makes the workflow read the env file from standard input.
const StdinSource = "-"

// SealOptions configures the seal workflow.
type SealOptions struct {
	// Source is the path to the env file, or StdinSource.
	Source string

	// Name and Namespace of the generated Secret.
	Name      string
	Namespace string

	ControllerName      string
	ControllerNamespace string
	Scope               string

	// KubesealBinary is the kubeseal executable name or path.
	KubesealBinary string

	// PrintNone suppresses echoing the sealed manifest to Echo.
	PrintNone bool

	// KeepOutput copies secret.yaml and sealed-secret.yaml into OutputDir.
	KeepOutput bool

	// OutputDir defaults to the working directory.
	OutputDir string

	// Echo receives the sealed manifest unless PrintNone is set.
	// Defaults to os.Stdout.
	Echo io.Writer

	// Stderr receives kubeseal's stderr. Defaults to os.Stderr.
	Stderr io.Writer

	// BeforeSeal is called right before kubeseal starts, after all local
	// validation has passed.
	BeforeSeal func()
}

// SealResult contains the outcome of a seal operation.
type SealResult struct {
	// RunID identifies the run and names its temporary directory.
	RunID string

	// Keys lists the Secret data keys in source order.
	Keys []string

	// Truncated lists keys whose values had extra shell words dropped.
	Truncated []string

	// OutputFiles lists files written to OutputDir. Empty unless KeepOutput.
	OutputFiles []string

	// Sealed holds the SealedSecret manifest produced by kubeseal.
	Sealed []byte
}

// Seal parses an env file, builds a Secret from it, and seals it with kubeseal.
//
// Intermediate files live in a fresh temporary directory that is removed
// before Seal returns, whether or not sealing succeeded. Nothing is written
// to OutputDir unless kubeseal succeeds.
//
// Returns ErrSourceNotFound or ErrMalformedLine for env file problems,
// ErrInvalidScope or ErrInvalidManifest for bad inputs, ErrSealerNotFound if
// kubeseal is missing, and a *kubeseal.ExitError if kubeseal fails.
func Seal(ctx context.Context, opts SealOptions) (*SealResult, error) {
	env, err := loadEnv(opts.Source)
	if err != nil {
		return nil, err
	}

	if err := kubeseal.ValidateScope(opts.Scope); err != nil {
		return nil, err
	}

	secret := manifest.Build(env, opts.Name, opts.Namespace)
	if err := secret.Validate(); err != nil {
		return nil, err
	}

	echo := opts.Echo
	if echo == nil {
		echo = os.Stdout
	}
	if opts.PrintNone {
		echo = nil
	}

	sealer := &kubeseal.Sealer{
		Binary:              opts.KubesealBinary,
		ControllerName:      opts.ControllerName,
		ControllerNamespace: opts.ControllerNamespace,
		Scope:               opts.Scope,
		Echo:                echo,
		Stderr:              opts.Stderr,
	}
	if _, err := sealer.LookPath(); err != nil {
		return nil, err
	}

	result := &SealResult{
		RunID:     uuid.NewString(),
		Keys:      env.Keys(),
		Truncated: env.Truncated(),
	}

	runDir, err := os.MkdirTemp("", "envseal-"+result.RunID+"-")
	if err != nil {
		return nil, fmt.Errorf("creating run directory: %w", err)
	}
	defer os.RemoveAll(runDir)

	secretPath := filepath.Join(runDir, SecretFile)
	if err := writeSecret(secret, secretPath); err != nil {
		return nil, err
	}

	if opts.BeforeSeal != nil {
		opts.BeforeSeal()
	}

	sealedPath := filepath.Join(runDir, SealedSecretFile)
	if err := sealer.Seal(ctx, secretPath, sealedPath); err != nil {
		return nil, err
	}

	result.Sealed, err = os.ReadFile(sealedPath)
	if err != nil {
		return nil, fmt.Errorf("reading sealed manifest: %w", err)
	}

	if opts.KeepOutput {
		files, err := keepOutputs(opts.OutputDir, secretPath, sealedPath)
		if err != nil {
			return nil, err
		}
		result.OutputFiles = files
	}

	return result, nil
}

func loadEnv(source string) (*envfile.Env, error) {
	if source != StdinSource {
		return envfile.Parse(source)
	}

	data, err := utils.ReadStdin()
	if err != nil {
		return nil, err
	}
	env, err := envfile.ParseReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("stdin: %w", err)
	}
	return env, nil
}

func writeSecret(secret *manifest.Secret, path string) error {
	data, err := secret.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// keepOutputs copies both manifests into dir and returns the written paths.
func keepOutputs(dir, secretPath, sealedPath string) ([]string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		dir = wd
	}

	var written []string
	for _, src := range []string{secretPath, sealedPath} {
		dst := filepath.Join(dir, filepath.Base(src))
		if err := utils.CopyFile(src, dst, 0600); err != nil {
			for _, w := range written {
				os.Remove(w)
			}
			return nil, err
		}
		written = append(written, dst)
	}
	return written, nil
}
