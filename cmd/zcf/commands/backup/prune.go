package backup

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zcf/cmd/zcf/commands/flags"
	"github.com/thoreinstein/zcf/internal/errors"
)

var pruneKeep int

func init() {
	pruneCmd.Flags().IntVar(&pruneKeep, "keep", -1, "number of backups to keep per tool (default: backup.retention)")
	Cmd.AddCommand(pruneCmd)
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old backups",
	Long: `Delete all but the most recent backups of each tool. Without --keep
the backup.retention setting is used.`,
	Example: `  zcf backup prune --keep 3`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		tools, err := targetTools()
		if err != nil {
			return err
		}
		mgr := flags.App().Backups
		w := cmd.OutOrStdout()

		total := 0
		for _, t := range tools {
			removed, err := mgr.Prune(string(t), pruneKeep)
			if err != nil {
				return errors.Wrapf(err, "pruning %s backups", t)
			}
			for _, id := range removed {
				fmt.Fprintf(w, "Removed %s/%s\n", t, id)
			}
			total += len(removed)
		}
		fmt.Fprintf(w, "%s Pruned %d backup(s)\n", green("✓"), total)
		return nil
	},
}
