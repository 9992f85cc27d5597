package backup

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zcf/cmd/zcf/commands/flags"
	"github.com/thoreinstein/zcf/internal/backup"
	"github.com/thoreinstein/zcf/internal/errors"
)

func init() {
	Cmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Manually create a backup",
	Long: `Back up the selected tool's settings, context file, credentials and
the profiles file. Files that do not exist are skipped.`,
	Example: `  zcf backup create --tool codex`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		t, err := flags.Tool()
		if err != nil {
			return err
		}
		app := flags.App()
		m, err := app.Backups.Backup(string(t), "manual", app.BackupFiles(t))
		if errors.Is(err, backup.ErrNothingToBackup) {
			return errors.NewUserError(err, "Nothing to back up yet for "+string(t))
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Created backup %s (%d files)\n", green("✓"), m.ID, len(m.Files))
		return nil
	},
}
