package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/MeKo-Tech/tempo"
	"github.com/MeKo-Tech/tempo/internal/config"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// runCmd represents the run command.
var runCmd = &cobra.Command{
	Use:   "run [flags] -- command [args...]",
	Short: "Run a command and report its wall-clock and CPU time",
	Long: `Execute an external command under a stopwatch and report the elapsed
wall-clock time together with the CPU time the command consumed.

The report form is selected with --output:
  text   decorated single-line report (default)
  table  column-aligned table
  json   measurement snapshot as JSON
  yaml   measurement snapshot as YAML

Examples:
  tempo run -- sleep 2
  tempo run --output json -- gzip -9 big.log
  tempo run --precision 1 -- make build`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	defaults := config.DefaultConfig()
	runCmd.Flags().StringP("output", "o", defaults.Output.Format, "report form (text, table, json, yaml)")
	runCmd.Flags().Int("precision", defaults.Report.Precision, "digits after the decimal point")
	runCmd.Flags().String("begin", defaults.Report.Begin, "opening delimiter for text reports")
	runCmd.Flags().String("close", defaults.Report.Close, "closing delimiter for text reports")
	runCmd.Flags().String("format", defaults.Report.Format, "report template (empty uses the default layout)")

	_ = viper.BindPFlag("output.format", runCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("report.precision", runCmd.Flags().Lookup("precision"))
	_ = viper.BindPFlag("report.begin", runCmd.Flags().Lookup("begin"))
	_ = viper.BindPFlag("report.close", runCmd.Flags().Lookup("close"))
	_ = viper.BindPFlag("report.format", runCmd.Flags().Lookup("format"))
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := currentConfig()

	child := exec.Command(args[0], args[1:]...)
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr

	slog.Debug("starting command", "argv", args)

	sw := tempo.NewStopwatch()
	_ = sw.Start()
	runErr := child.Run()
	_ = sw.Stop()

	var exitErr *exec.ExitError
	if runErr != nil && !errors.As(runErr, &exitErr) {
		return fmt.Errorf("running %s: %w", args[0], runErr)
	}

	snap := sw.Snapshot()
	if state := child.ProcessState; state != nil {
		// Attribute CPU time to the child, not to this process.
		snap.CPUSeconds = (state.UserTime() + state.SystemTime()).Seconds()
	}
	slog.Debug("command finished",
		"wall_seconds", snap.WallSeconds,
		"cpu_seconds", snap.CPUSeconds,
		"exit_code", childExitCode(child))

	if err := writeReport(cmd.OutOrStdout(), cfg, args, snap, childExitCode(child)); err != nil {
		return err
	}

	if exitErr != nil {
		return fmt.Errorf("command exited with code %d", exitErr.ExitCode())
	}
	return nil
}

// writeReport renders the measurement snapshot in the configured form.
func writeReport(w io.Writer, cfg *config.Config, argv []string, snap tempo.Snapshot, exit int) error {
	switch cfg.Output.Format {
	case "table":
		table := tablewriter.NewWriter(w)
		table.Header("Command", "Wall (s)", "CPU (s)", "Exit")
		table.Append(strings.Join(argv, " "),
			strconv.FormatFloat(snap.WallSeconds, 'f', cfg.Report.Precision, 64),
			strconv.FormatFloat(snap.CPUSeconds, 'f', cfg.Report.Precision, 64),
			strconv.Itoa(exit))
		return table.Render()
	case "json":
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		_, _ = fmt.Fprintln(w, string(data))
	case "yaml":
		data, err := yaml.Marshal(snap)
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		_, _ = fmt.Fprint(w, string(data))
	default: // text
		_, _ = fmt.Fprintln(w, reportTimer(cfg).Format(snap))
	}
	return nil
}

// reportTimer builds a timer carrying the configured presentation, used
// only to format snapshots.
func reportTimer(cfg *config.Config) *tempo.Timer {
	opts := []tempo.Option{
		tempo.WithDelimiters(cfg.Report.Begin, cfg.Report.Close),
		tempo.WithPrecision(cfg.Report.Precision),
	}
	if cfg.Report.Format != "" {
		opts = append(opts, tempo.WithFormat(cfg.Report.Format))
	}
	opts = append(opts, tempo.WithStaticWidth(cfg.Report.StaticWidth))
	return tempo.New(opts...)
}

func childExitCode(child *exec.Cmd) int {
	if child.ProcessState == nil {
		return -1
	}
	return child.ProcessState.ExitCode()
}
