package backup

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zcf/cmd/zcf/commands/flags"
	"github.com/thoreinstein/zcf/internal/errors"
)

func init() {
	Cmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore [backup-id]",
	Short: "Restore from a backup",
	Long: `Copy the files of a backup back to where they came from. Without an id
the most recent backup of the tool is used.

Every file's checksum is verified before anything is written, and the
current files are backed up first.`,
	Example: `  # Restore the most recent backup
  zcf backup restore --tool claude-code

  # Restore a specific backup
  zcf backup restore 20260123T100712 --tool claude-code`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := flags.Tool()
		if err != nil {
			return err
		}
		mgr := flags.App().Backups

		var id string
		if len(args) == 1 {
			id = args[0]
		} else {
			manifests, err := mgr.List(string(t))
			if err != nil {
				return errors.NewUserError(err, "Run: zcf backup list")
			}
			id = manifests[0].ID
		}

		m, err := mgr.Restore(string(t), id)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s Restored backup %s\n", green("✓"), m.ID)
		for _, f := range m.Files {
			fmt.Fprintf(w, "  %s\n", f.OriginalPath)
		}
		return nil
	},
}
