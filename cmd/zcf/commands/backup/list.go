package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zcf/cmd/zcf/commands/flags"
	"github.com/thoreinstein/zcf/internal/backup"
	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/tool"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available backups",
	Long: `List all available configuration backups grouped by tool.

By default, lists backups for every tool. Use the --tool flag to limit
to one. Backups are shown with the most recent first.`,
	Example: `  # List all backups
  zcf backup list

  # List backups for a specific tool
  zcf backup list --tool gemini

  # Output as JSON
  zcf backup list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// listOutput represents the JSON output for backup list.
type listOutput struct {
	Tool    string       `json:"tool"`
	Backups []infoOutput `json:"backups"`
}

// infoOutput represents a single backup in JSON output.
type infoOutput struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Reason     string    `json:"reason,omitempty"`
	FileCount  int       `json:"file_count"`
	ZCFVersion string    `json:"zcf_version"`
}

func runList(cmd *cobra.Command, _ []string) error {
	tools, err := targetTools()
	if err != nil {
		return err
	}
	mgr := flags.App().Backups

	output := make([]listOutput, 0, len(tools))
	for _, t := range tools {
		manifests, err := mgr.List(string(t))
		if err != nil && !errors.Is(err, backup.ErrNoBackupsFound) {
			return errors.Wrapf(err, "listing backups for %s", t)
		}
		backups := make([]infoOutput, len(manifests))
		for i, m := range manifests {
			backups[i] = infoOutput{
				ID:         m.ID,
				CreatedAt:  m.CreatedAt,
				Reason:     m.Reason,
				FileCount:  len(m.Files),
				ZCFVersion: m.ZCFVersion,
			}
		}
		output = append(output, listOutput{Tool: string(t), Backups: backups})
	}

	if listJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(output), "encoding output")
	}
	outputTabular(cmd.OutOrStdout(), output)
	return nil
}

func outputTabular(w io.Writer, output []listOutput) {
	hasBackups := false

	for i, o := range output {
		if len(o.Backups) > 0 {
			hasBackups = true
		}

		// Add blank line between tools (but not before first)
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, cyan("Tool: "+tool.MustInfo(tool.Tool(o.Tool)).DisplayName))

		if len(o.Backups) == 0 {
			fmt.Fprintf(w, "  %s\n", gray("(no backups available)"))
			continue
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  ID\tCREATED\tREASON\tFILES\tVERSION")
		for _, b := range o.Backups {
			reason := b.Reason
			if reason == "" {
				reason = "-"
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%d\t%s\n",
				green(b.ID),
				b.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				reason,
				b.FileCount,
				b.ZCFVersion)
		}
		tw.Flush()
	}

	if !hasBackups {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No backups available")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Backups are created automatically before zcf modifies configurations.")
		fmt.Fprintln(w, "You can also create a backup manually with: zcf backup create")
	}
}
