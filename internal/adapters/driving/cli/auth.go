package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sheetmail/internal/core/domain"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Google authorisation",
	Long: `Authorise sheetmail to read your mailbox and write to spreadsheets.

The first authorisation needs an OAuth client secrets file (a "Desktop app"
client downloaded from the Google Cloud console) at the path configured by
paths.credentials. The resulting token is stored at paths.token and
refreshed automatically on later runs.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Run the browser consent flow and store a token",
	RunE:  runAuthLogin,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which mailbox the stored token belongs to",
	RunE:  runAuthStatus,
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	app, err := loadApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Auth.Login(cmd.Context()); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cmd.Println(successStyle.Render("Authorised."))
	cmd.Println(mutedStyle.Render("Token saved to " + app.Auth.TokenPath()))
	return nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	app, err := loadApp()
	if err != nil {
		return err
	}
	defer app.Close()

	account, err := app.Account(cmd.Context())
	if errors.Is(err, domain.ErrAuthRequired) {
		cmd.Println(warningStyle.Render("Not authorised. Run 'sheetmail auth login'."))
		return nil
	}
	if err != nil {
		printHint(cmd, err)
		return fmt.Errorf("checking authorisation: %w", err)
	}

	cmd.Printf("Authorised as %s\n", account)
	return nil
}
