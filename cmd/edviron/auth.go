package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thisispriyanshii/edviron-frontend/internal/cli"
	"github.com/thisispriyanshii/edviron-frontend/internal/format"
	"github.com/thisispriyanshii/edviron-frontend/internal/model"
)

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the payments backend",
		Long: `Sign in with your dashboard email and password.

The access token is saved to the session file so later commands and the
dashboard start signed in. Missing values are prompted for; the password is
never echoed.`,
		Args: cobra.NoArgs,
		RunE: runLogin,
	}

	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("password", "", "account password (prompted when omitted)")

	return cmd
}

func runLogin(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		var err error
		if email, err = prompter.Ask(ctx, "Email", ""); err != nil {
			return err
		}
	}

	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		var err error
		if password, err = prompter.AskSecret(ctx, "Password"); err != nil {
			return err
		}
	}

	b, err := newBackend(appConfig)
	if err != nil {
		return err
	}

	user, err := b.session.Login(ctx, model.Credentials{Email: email, Password: password})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Signed in as "+displayName(user)))
	return nil
}

func registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a dashboard account",
		Long: `Create an account and sign in with it.

Accounts may be tied to a school with --school-id; the role defaults to the
backend's choice.`,
		Args: cobra.NoArgs,
		RunE: runRegister,
	}

	cmd.Flags().String("name", "", "display name")
	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("password", "", "account password (prompted when omitted)")
	cmd.Flags().String("school-id", "", "school the account belongs to")
	cmd.Flags().String("role", "", "account role")

	return cmd
}

func runRegister(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

	reg := model.Registration{}
	reg.Name, _ = cmd.Flags().GetString("name")
	reg.Email, _ = cmd.Flags().GetString("email")
	reg.Password, _ = cmd.Flags().GetString("password")
	reg.SchoolID, _ = cmd.Flags().GetString("school-id")
	reg.Role, _ = cmd.Flags().GetString("role")

	var err error
	if reg.Name == "" {
		if reg.Name, err = prompter.Ask(ctx, "Name", ""); err != nil {
			return err
		}
	}
	if reg.Email == "" {
		if reg.Email, err = prompter.Ask(ctx, "Email", ""); err != nil {
			return err
		}
	}
	if reg.Password == "" {
		if reg.Password, err = prompter.AskSecret(ctx, "Password"); err != nil {
			return err
		}
	}

	b, err := newBackend(appConfig)
	if err != nil {
		return err
	}

	user, err := b.session.Register(ctx, reg)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Account created. Signed in as "+displayName(user)))
	return nil
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := newBackend(appConfig)
			if err != nil {
				return err
			}
			if err := b.session.Logout(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Signed out"))
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE:  runWhoami,
	}

	cmd.Flags().Bool("verify", false, "also ask the backend whether the token is still valid")

	return cmd
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	b, err := signedIn(ctx, appConfig)
	if err != nil {
		return err
	}
	user, _ := b.session.User()

	pairs := [][2]string{
		{"Name", format.OrDash(user.Name)},
		{"Email", format.OrDash(user.Email)},
		{"Role", format.OrDash(user.Role)},
		{"School", format.OrDash(user.SchoolID)},
		{"Backend", b.client.BaseURL()},
	}

	if verify, _ := cmd.Flags().GetBool("verify"); verify {
		v, err := b.client.Verify(ctx)
		if err != nil {
			return b.authFailure(err)
		}
		valid := cli.FormatSuccess("valid")
		if !v.Valid {
			valid = cli.FormatError("invalid")
		}
		pairs = append(pairs, [2]string{"Token", valid})
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox("Account", cli.KeyValues(pairs)))
	return nil
}

func displayName(user model.User) string {
	if user.Name != "" && user.Email != "" {
		return fmt.Sprintf("%s <%s>", user.Name, user.Email)
	}
	return format.OrDash(user.Email)
}
