package cli

import (
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
	Long: `Configuration lives in config.toml inside the config directory.

Keys:
  spreadsheet.id                  destination spreadsheet (required)
  spreadsheet.range               A1 range rows are appended to
  spreadsheet.value_input_option  USER_ENTERED or RAW
  gmail.query                     search query for candidates
  gmail.max_results               messages listed per run
  gmail.user                      mailbox owner, "me" by default
  paths.credentials               OAuth client secrets file
  paths.token                     stored token file
  paths.ledger                    JSON ledger file
  paths.data                      directory for the SQLite ledger
  ledger.backend                  json or sqlite
  auth.scopes                     comma separated OAuth scopes
  google.requests_per_second      client-side pacing, 0 disables
  google.burst                    pacing burst size`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := loadApp()
		if err != nil {
			return err
		}
		defer app.Close()

		entries, err := app.Config.Entries()
		if err != nil {
			return err
		}

		cmd.Println(titleStyle.Render("Configuration"))
		cmd.Println(mutedStyle.Render(app.Config.Path()))
		for _, e := range entries {
			value := e.Value
			if value == "" {
				value = mutedStyle.Render("(not set)")
			}
			cmd.Println(keyStyle.Render(e.Key) + value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.Config.Set(args[0], args[1]); err != nil {
			return err
		}
		cmd.Printf("%s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
