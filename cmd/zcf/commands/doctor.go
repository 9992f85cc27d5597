package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zcf/cmd/zcf/commands/flags"
	"github.com/thoreinstein/zcf/internal/cli"
	"github.com/thoreinstein/zcf/internal/doctor"
	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/paths"
	"github.com/thoreinstein/zcf/internal/settings"
	"github.com/thoreinstein/zcf/internal/tool"
)

var (
	doctorJSON bool
	doctorAll  bool
	doctorFix  bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorAll, "all", false,
		"show every check, including passed ones")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"repair fixable problems such as loose file permissions")
	doctorCmd.MarkFlagsMutuallyExclusive("json", "all")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration issues",
	Long: `Run diagnostic checks on zcf and the tools it manages.

Checks that the zcf config file is valid, that every settings file zcf
writes can be parsed, that profiles.json is private to you and which
tool CLIs are installed. doctor runs even when the config file is broken.

Output modes:
  (default)   Show errors and warnings
  --all       Show all checks including passed ones
  --json      Machine-readable JSON output
  -q          No output, exit code only

Exit codes:
  0 - No errors or warnings
  1 - Warnings present, no errors
  2 - Errors present`,
	Example: `  # Check everything
  zcf doctor

  # Tighten the permissions of profiles.json
  zcf doctor --fix

  See Also: zcf status, zcf config show`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

// errDoctorWarnings is a sentinel error for exit code 1.
var errDoctorWarnings = errors.New("doctor found warnings")

// errDoctorErrors is a sentinel error for exit code 2.
var errDoctorErrors = errors.New("doctor found errors")

func runDoctor(cmd *cobra.Command, _ []string) error {
	var names []string
	if f := flags.GetToolFlag(); f != "" {
		names = []string{f}
	}
	tools, err := cli.ResolveTools(names)
	if err != nil {
		return err
	}

	runner := newDoctorRunner(flags.App(), tools)
	report := runner.Run(cmd.Context())
	w := cmd.OutOrStdout()

	if doctorFix {
		fixed := applyFixes(w, runner)
		if fixed {
			report = runner.Run(cmd.Context())
		}
	}

	if !quiet {
		if err := outputDoctorReport(w, report); err != nil {
			return err
		}
	}

	if report.HasErrors() {
		return errors.NewExitError(errDoctorErrors, errors.ExitSystem)
	}
	if report.HasWarnings() {
		return errors.NewExitError(errDoctorWarnings, errors.ExitUser)
	}
	return nil
}

func newDoctorRunner(app *cli.App, tools []tool.Tool) *doctor.Runner {
	stores := make([]*settings.Store, 0, len(tools)+1)
	for _, t := range tools {
		stores = append(stores, app.Settings(t))
		if t == tool.Claude {
			stores = append(stores, settings.NewClaudeStateStore())
		}
	}

	r := doctor.NewRunner()
	r.AddCheck(doctor.NewConfigCheck(configFile))
	r.AddCheck(doctor.NewSettingsCheck(stores...))
	r.AddCheck(doctor.NewProfilesCheck(paths.ProfilesFile()))
	r.AddCheck(doctor.NewPlatformCheck(app.Probe))
	r.AddCheck(doctor.NewBinaryCheck(app.Probe, tools...))
	return r
}

// applyFixes runs every fixer with pending issues and reports whether
// anything changed.
func applyFixes(w io.Writer, r *doctor.Runner) bool {
	changed := false
	for _, c := range r.Checks() {
		f, ok := c.(doctor.Fixer)
		if !ok || !f.CanFix() {
			continue
		}
		for _, res := range f.Fix() {
			if res.Fixed {
				changed = true
				if !quiet {
					fmt.Fprintf(w, "%s fixed %s: %s\n", green("✓"), res.Path, res.Description)
				}
				continue
			}
			if !quiet {
				fmt.Fprintf(w, "%s could not fix %s: %s\n", yellow("!"), res.Path, res.Description)
			}
		}
	}
	return changed
}

func outputDoctorReport(w io.Writer, report *doctor.DoctorReport) error {
	if doctorJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(report), "encoding JSON")
	}

	shown := 0
	for _, result := range report.Results {
		problem := result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning
		if !doctorAll && !problem {
			continue
		}
		shown++
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)
		if problem && result.FixHint != "" {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}
	if shown > 0 {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
	return nil
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return green("✓")
	case doctor.SeverityInfo:
		return cyan("ℹ")
	case doctor.SeverityWarning:
		return yellow("⚠")
	case doctor.SeverityError:
		return "✗"
	default:
		return "?"
	}
}
