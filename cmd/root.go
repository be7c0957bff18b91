package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PolarWolf314/envseal/internal/audit"
	"github.com/PolarWolf314/envseal/internal/configs"
	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	"github.com/PolarWolf314/envseal/internal/kubeseal"
	logger "github.com/PolarWolf314/envseal/internal/logging"
	"github.com/PolarWolf314/envseal/internal/ui"
	"github.com/PolarWolf314/envseal/internal/utils"
	"github.com/PolarWolf314/envseal/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	verbose    bool
	debug      bool
	configPath string
	saveConfig bool
	flagValues configs.Settings
	Logger     logger.Logger

	rootCmd = &cobra.Command{
		Use:   "envseal [source]",
		Short: "Convert a .env file into a SealedSecret manifest using kubeseal",
		Long: `envseal reads a .env file, wraps its values in a Kubernetes Secret and
pipes that Secret through kubeseal to produce a SealedSecret manifest.

The sealed manifest is printed to stdout unless --print-none is set.
Intermediate files are removed unless --output is set, in which case
secret.yaml and sealed-secret.yaml are written to the working directory.

Defaults can be stored in ` + configs.DefaultConfigFile + ` in the working directory.`,
		Example: `  envseal
  envseal .env.production --name api-env --namespace payments
  envseal --scope strict --print-none --output
  envseal --namespace payments --scope strict --save-config
  cat .env | envseal -`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
				Out:     cmd.ErrOrStderr(),
			}
			Logger.Debugf("Initializing envseal with verbose=%t, debug=%t", verbose, debug)
		},
		RunE: runSeal,
	}
)

func init() {
	defaults := configs.DefaultSettings()
	flags := rootCmd.Flags()

	flags.StringVar(&flagValues.Source, "source", defaults.Source, "path to the .env file, or - for stdin")
	flags.StringVar(&flagValues.Name, "name", defaults.Name, "name of the Secret")
	flags.StringVar(&flagValues.Namespace, "namespace", defaults.Namespace, "namespace of the Secret")
	flags.StringVar(&flagValues.ControllerName, "controller-name", defaults.ControllerName, "name of the sealed-secrets controller")
	flags.StringVar(&flagValues.ControllerNamespace, "controller-namespace", defaults.ControllerNamespace, "namespace of the sealed-secrets controller")
	flags.StringVar(&flagValues.Scope, "scope", defaults.Scope, "sealing scope: "+strings.Join(kubeseal.Scopes, ", "))
	flags.StringVar(&flagValues.Kubeseal, "kubeseal", defaults.Kubeseal, "kubeseal binary name or path")
	flags.StringVar(&flagValues.AuditLog, "audit-log", defaults.AuditLog, "append a JSON line describing each sealed secret to this file")
	flags.BoolVar(&flagValues.PrintNone, "print-none", false, "do not print the sealed secret to stdout")
	flags.BoolVar(&flagValues.Output, "output", false, "keep secret.yaml and sealed-secret.yaml in the working directory")
	flags.StringVar(&configPath, "config", configs.DefaultConfigFile, "TOML file with default settings")
	flags.BoolVar(&saveConfig, "save-config", false, "write the resolved settings to the config file and exit without sealing")

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
}

// reportedError marks an error whose user-facing message was already printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func runSeal(cmd *cobra.Command, args []string) error {
	settings, err := resolveSettings(cmd, args)
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), describeError(err))
		return &reportedError{err}
	}
	Logger.Debugf("Resolved settings: %+v", settings)

	if saveConfig {
		return saveSettings(cmd, settings)
	}

	useSpinner := settings.PrintNone && !verbose && !debug && utils.IsStderrTerminal()
	spinner, cleanup := startSpinner(cmd.ErrOrStderr(), "Sealing "+settings.Source+"...", useSpinner)
	defer cleanup()

	opts := workflows.SealOptions{
		Source:              settings.Source,
		Name:                settings.Name,
		Namespace:           settings.Namespace,
		ControllerName:      settings.ControllerName,
		ControllerNamespace: settings.ControllerNamespace,
		Scope:               settings.Scope,
		KubesealBinary:      settings.Kubeseal,
		PrintNone:           settings.PrintNone,
		KeepOutput:          settings.Output,
		Echo:                cmd.OutOrStdout(),
		Stderr:              cmd.ErrOrStderr(),
		BeforeSeal: func() {
			Logger.Infof("Running %s against controller %s/%s with scope %s",
				settings.Kubeseal, settings.ControllerNamespace, settings.ControllerName, settings.Scope)
		},
	}

	result, err := workflows.Seal(cmd.Context(), opts)
	if err != nil {
		Logger.Errorf("Seal failed: %v", err)
		spinner.FinalMSG = describeError(err)
		return &reportedError{err}
	}

	Logger.Infof("Sealed %d %s from %s (run %s)", len(result.Keys), utils.Plural(len(result.Keys), "key"), settings.Source, result.RunID)
	for _, k := range result.Truncated {
		Logger.Debugf("Value of %s contained unquoted whitespace; only the first word was kept", k)
	}

	if err := audit.Log(settings.AuditLog, audit.Entry{
		RunID:               result.RunID,
		Operation:           "seal",
		Source:              settings.Source,
		Name:                settings.Name,
		Namespace:           settings.Namespace,
		ControllerName:      settings.ControllerName,
		ControllerNamespace: settings.ControllerNamespace,
		Scope:               settings.Scope,
		Keys:                result.Keys,
		OutputFiles:         result.OutputFiles,
	}); err != nil {
		Logger.WarnfAlways("Failed to write audit log %s: %v", settings.AuditLog, err)
	}

	if len(result.OutputFiles) > 0 {
		spinner.FinalMSG = ui.SuccessMessage("Secret " + ui.Highlight.Sprintf("%s/%s", settings.Namespace, settings.Name) +
			" sealed. The following files were written:" + utils.FormatPaths(result.OutputFiles))
	} else if settings.PrintNone {
		spinner.FinalMSG = ui.SuccessMessage("Secret " + ui.Highlight.Sprintf("%s/%s", settings.Namespace, settings.Name) +
			" sealed " + ui.Muted.Sprint("nothing printed or written") + "\n" +
			ui.Info.Sprint("→") + " Use " + ui.Flag.Sprint("--output") + " to keep " + ui.Path.Sprint(workflows.SealedSecretFile))
	}

	return nil
}

// saveSettings writes settings to the config file so later runs pick them up
// without flags.
func saveSettings(cmd *cobra.Command, settings configs.Settings) error {
	existed := utils.FileExists(configPath)
	if err := configs.SaveTOML(configPath, configs.FileConfigFrom(settings)); err != nil {
		err = fmt.Errorf("%w: writing %s: %v", kerrors.ErrConfigInvalid, configPath, err)
		fmt.Fprint(cmd.ErrOrStderr(), describeError(err))
		return &reportedError{err}
	}
	Logger.Infof("Wrote settings to %s", configPath)

	msg := "Settings saved to " + ui.Path.Sprint(configPath)
	if existed {
		msg += " " + ui.Warning.Sprint("(replaced the existing file)")
	}
	fmt.Fprint(cmd.ErrOrStderr(), ui.SuccessMessage(msg))
	return nil
}

// resolveSettings layers explicitly set flags over the config file over
// the built-in defaults. A positional source overrides --source.
func resolveSettings(cmd *cobra.Command, args []string) (configs.Settings, error) {
	settings := configs.DefaultSettings()
	flags := cmd.Flags()

	if flags.Changed("config") && !saveConfig && !utils.FileExists(configPath) {
		return settings, fmt.Errorf("%w: %s does not exist", kerrors.ErrConfigInvalid, configPath)
	}
	fileConfig, err := configs.LoadFile(configPath)
	if err != nil {
		return settings, err
	}
	if fileConfig != nil {
		Logger.Debugf("Loaded defaults from %s", configPath)
	}
	settings.Apply(fileConfig)

	overrides := []struct {
		flag  string
		apply func()
	}{
		{"source", func() { settings.Source = flagValues.Source }},
		{"name", func() { settings.Name = flagValues.Name }},
		{"namespace", func() { settings.Namespace = flagValues.Namespace }},
		{"controller-name", func() { settings.ControllerName = flagValues.ControllerName }},
		{"controller-namespace", func() { settings.ControllerNamespace = flagValues.ControllerNamespace }},
		{"scope", func() { settings.Scope = flagValues.Scope }},
		{"kubeseal", func() { settings.Kubeseal = flagValues.Kubeseal }},
		{"audit-log", func() { settings.AuditLog = flagValues.AuditLog }},
		{"print-none", func() { settings.PrintNone = flagValues.PrintNone }},
		{"output", func() { settings.Output = flagValues.Output }},
	}
	for _, o := range overrides {
		if flags.Changed(o.flag) {
			o.apply()
		}
	}

	if len(args) == 1 {
		settings.Source = args[0]
	}

	return settings, nil
}

// describeError renders a user-facing message for err.
func describeError(err error) string {
	detail := ui.Error.Sprint("Error: ") + err.Error()

	var exitErr *kubeseal.ExitError
	switch {
	case errors.Is(err, kerrors.ErrSourceNotFound):
		return ui.FailureMessage("Env file not found\n"+detail,
			"Pass the path with "+ui.Flag.Sprint("--source")+" or as the first argument")
	case errors.Is(err, kerrors.ErrMalformedLine):
		return ui.FailureMessage("Failed to parse the env file\n"+detail,
			"Every non-comment line must look like "+ui.Code.Sprint("KEY=value")+" with balanced quotes")
	case errors.Is(err, kerrors.ErrInvalidScope):
		return ui.FailureMessage("Invalid sealing scope\n"+detail,
			"Use one of "+strings.Join(kubeseal.Scopes, ", "))
	case errors.Is(err, kerrors.ErrInvalidManifest):
		return ui.FailureMessage("The Secret would be rejected by Kubernetes\n" + detail)
	case errors.Is(err, kerrors.ErrConfigInvalid):
		return ui.FailureMessage("Failed to load config\n" + detail)
	case errors.Is(err, kerrors.ErrSealerNotFound):
		return ui.FailureMessage("kubeseal is required but was not found\n"+detail,
			"Install it from https://github.com/bitnami-labs/sealed-secrets#kubeseal",
			"Or point "+ui.Flag.Sprint("--kubeseal")+" at the binary")
	case errors.As(err, &exitErr):
		return ui.FailureMessage(fmt.Sprintf("kubeseal exited with status %d", exitErr.Code),
			"Check that the controller is reachable with "+ui.Code.Sprint("kubeseal --fetch-cert"))
	default:
		return ui.FailureMessage("Failed to seal secret\n" + detail)
	}
}
