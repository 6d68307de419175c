package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List the configured collections",
	Long: `Load every configured collection and print its document count.

Collections that could not be loaded are listed with the reason.`,
	Args: cobra.NoArgs,
	RunE: runCollections,
}

func init() {
	rootCmd.AddCommand(collectionsCmd)
}

func runCollections(cmd *cobra.Command, _ []string) error {
	viewer, err := requireViewer()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	report := viewer.LoadCollections(ctx)

	if len(report.Collections) > 0 {
		cmd.Println("Collections:")
		for _, c := range report.Collections {
			cmd.Printf("  %-20s %d documents\n", c.Name, c.Count())
		}
	}

	if len(report.Failures) > 0 {
		if len(report.Collections) > 0 {
			cmd.Println()
		}
		cmd.Println("Unavailable:")
		for _, f := range report.Failures {
			cmd.Printf("  %s: %v\n", f.Name, f.Err)
		}
	}

	if len(report.Collections) == 0 && len(report.Failures) > 0 {
		return fmt.Errorf("no collections could be loaded")
	}
	return nil
}
