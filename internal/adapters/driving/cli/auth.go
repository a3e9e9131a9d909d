package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kameleon-labs/kameleon-cli/internal/core/validation"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to Kameleon",
	Long: `Sign in with your email and password.

The password is always prompted for and never accepted as a flag.
The session is stored locally and refreshed automatically.`,
	RunE: runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a Kameleon account",
	Long: `Create an account. Passwords need at least 8 characters with an uppercase
letter, a lowercase letter, a number and a special character.

When the account needs confirmation a code is emailed to you; finish with
'kameleon verify-email'.`,
	RunE: runRegister,
}

var verifyEmailCmd = &cobra.Command{
	Use:   "verify-email",
	Short: "Confirm your account with the emailed code",
	RunE:  runVerifyEmail,
}

var resendCodeCmd = &cobra.Command{
	Use:   "resend-code",
	Short: "Email a new verification or reset code",
	RunE:  runResendCode,
}

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password",
	Short: "Request a password reset code",
	RunE:  runForgotPassword,
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Set a new password with the emailed reset code",
	RunE:  runResetPassword,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringP("email", "e", "", "account email")

	registerCmd.Flags().StringP("name", "n", "", "full name")
	registerCmd.Flags().StringP("email", "e", "", "account email")

	verifyEmailCmd.Flags().StringP("email", "e", "", "account email")
	verifyEmailCmd.Flags().StringP("code", "c", "", "6-digit verification code")

	resendCodeCmd.Flags().StringP("email", "e", "", "account email")
	resendCodeCmd.Flags().Bool("reset", false, "resend the password reset code instead of the verification code")

	forgotPasswordCmd.Flags().StringP("email", "e", "", "account email")

	resetPasswordCmd.Flags().StringP("email", "e", "", "account email")
	resetPasswordCmd.Flags().StringP("code", "c", "", "6-digit reset code")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(verifyEmailCmd)
	rootCmd.AddCommand(resendCodeCmd)
	rootCmd.AddCommand(forgotPasswordCmd)
	rootCmd.AddCommand(resetPasswordCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if authFlows == nil {
		return errors.New("auth flows not configured")
	}

	email, _ := cmd.Flags().GetString("email")
	reader := inputReader(cmd)
	in := validation.LoginInput{
		Email: prompt(cmd, reader, "Email", email),
	}
	in.Password = promptPassword(cmd, reader, "Password")

	outcome := authFlows.Login(cmd.Context(), in)
	if err := printOutcome(cmd, outcome); err != nil {
		return err
	}
	cmd.Printf("Signed in as %s\n", in.Email)
	return nil
}

func runRegister(cmd *cobra.Command, _ []string) error {
	if authFlows == nil {
		return errors.New("auth flows not configured")
	}

	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	reader := inputReader(cmd)
	in := validation.RegisterInput{
		Name:  prompt(cmd, reader, "Full name", name),
		Email: prompt(cmd, reader, "Email", email),
	}
	in.Password = promptPassword(cmd, reader, "Password")
	printPasswordChecklist(cmd, in.Password)
	in.ConfirmPassword = promptPassword(cmd, reader, "Confirm password")

	outcome := authFlows.Register(cmd.Context(), in)
	if err := printOutcome(cmd, outcome); err != nil {
		return err
	}
	cmd.Println("Account created.")
	return nil
}

// printPasswordChecklist lists the requirements the password does not meet yet.
func printPasswordChecklist(cmd *cobra.Command, password string) {
	var missing []string
	for _, r := range validation.CheckPassword(password) {
		if !r.Satisfied {
			missing = append(missing, r.Label)
		}
	}
	if len(missing) == 0 {
		return
	}
	cmd.PrintErrln("Password requirements not met:")
	for _, label := range missing {
		cmd.PrintErrf("  - %s\n", label)
	}
}

func runVerifyEmail(cmd *cobra.Command, _ []string) error {
	if authFlows == nil {
		return errors.New("auth flows not configured")
	}

	email, _ := cmd.Flags().GetString("email")
	code, _ := cmd.Flags().GetString("code")
	reader := inputReader(cmd)
	in := validation.VerifyEmailInput{
		Email: prompt(cmd, reader, "Email", email),
	}
	in.Code = validation.SanitizeCode(prompt(cmd, reader, "Verification code", code))

	outcome := authFlows.VerifyEmail(cmd.Context(), in)
	if err := printOutcome(cmd, outcome); err != nil {
		return err
	}
	cmd.Println("Email verified. You can now sign in.")
	return nil
}

func runResendCode(cmd *cobra.Command, _ []string) error {
	if authFlows == nil {
		return errors.New("auth flows not configured")
	}

	email, _ := cmd.Flags().GetString("email")
	reset, _ := cmd.Flags().GetBool("reset")
	email = strings.TrimSpace(prompt(cmd, inputReader(cmd), "Email", email))

	if reset {
		return printOutcome(cmd, authFlows.ResendReset(cmd.Context(), email))
	}
	return printOutcome(cmd, authFlows.ResendVerification(cmd.Context(), email))
}

func runForgotPassword(cmd *cobra.Command, _ []string) error {
	if authFlows == nil {
		return errors.New("auth flows not configured")
	}

	email, _ := cmd.Flags().GetString("email")
	in := validation.ForgotPasswordInput{
		Email: prompt(cmd, inputReader(cmd), "Email", email),
	}

	outcome := authFlows.ForgotPassword(cmd.Context(), in)
	if err := printOutcome(cmd, outcome); err != nil {
		return err
	}
	cmd.Println("Reset code sent. Check your email.")
	return nil
}

func runResetPassword(cmd *cobra.Command, _ []string) error {
	if authFlows == nil {
		return errors.New("auth flows not configured")
	}

	email, _ := cmd.Flags().GetString("email")
	code, _ := cmd.Flags().GetString("code")
	reader := inputReader(cmd)
	in := validation.ResetPasswordInput{
		Email: prompt(cmd, reader, "Email", email),
	}
	in.Code = validation.SanitizeCode(prompt(cmd, reader, "Reset code", code))
	in.NewPassword = promptPassword(cmd, reader, "New password")
	printPasswordChecklist(cmd, in.NewPassword)
	in.ConfirmPassword = promptPassword(cmd, reader, "Confirm new password")

	outcome := authFlows.ResetPassword(cmd.Context(), in)
	if err := printOutcome(cmd, outcome); err != nil {
		return err
	}
	cmd.Println("Password reset. You can now sign in with your new password.")
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	if !sessionService.State().Authenticated {
		cmd.Println("Not signed in.")
		return nil
	}
	if err := sessionService.SignOut(cmd.Context()); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}
	cmd.Println("Signed out.")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	if !sessionService.State().Authenticated {
		cmd.Println("Not signed in. Run 'kameleon login'.")
		return nil
	}

	profile, err := profileService.Me(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	if jsonOutput() {
		return printJSON(cmd, profile)
	}

	cmd.Printf("User ID: %s\n", profile.ID)
	cmd.Printf("Email:   %s\n", profile.Email)
	if profile.Name != "" {
		cmd.Printf("Name:    %s\n", profile.Name)
	}
	if profile.SubscriptionTier != "" {
		cmd.Printf("Plan:    %s\n", profile.SubscriptionTier)
	}
	return nil
}
