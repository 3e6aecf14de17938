package cli

import (
	"github.com/spf13/cobra"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Inspect processed message IDs",
}

var ledgerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List processed message IDs in the order they were recorded",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := loadApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ids, err := app.Ledger.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			cmd.Println(mutedStyle.Render("No messages processed yet."))
			return nil
		}
		for _, id := range ids {
			cmd.Println(id)
		}
		return nil
	},
}

var ledgerCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Print how many message IDs have been processed",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := loadApp()
		if err != nil {
			return err
		}
		defer app.Close()

		n, err := app.Ledger.Count(cmd.Context())
		if err != nil {
			return err
		}
		cmd.Println(n)
		return nil
	},
}

func init() {
	ledgerCmd.AddCommand(ledgerListCmd)
	ledgerCmd.AddCommand(ledgerCountCmd)
	rootCmd.AddCommand(ledgerCmd)
}
