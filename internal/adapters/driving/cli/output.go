package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/forms"
	"github.com/kameleon-labs/kameleon-cli/internal/core/validation"
)

func jsonOutput() bool {
	return outputFormat == outputJSON
}

// printJSON writes v as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// printOutcome reports a form outcome. Field errors are listed on stderr and
// returned as the command error; a failure returns its banner message.
func printOutcome(cmd *cobra.Command, o forms.Outcome) error {
	if len(o.Fields) > 0 {
		for _, f := range o.Fields.Fields() {
			cmd.PrintErrf("  %s: %s\n", f, o.Fields[f])
		}
		return o.Fields
	}
	if !o.Success {
		return errors.New(o.Error)
	}
	if o.Message != "" {
		cmd.Println(o.Message)
	}
	if hint := nextStep(o.Next); hint != "" {
		cmd.Printf("Next: %s\n", hint)
	}
	return nil
}

// nextStep maps a form navigation onto the command that continues the flow.
func nextStep(nav *forms.Navigation) string {
	if nav == nil {
		return ""
	}
	email := nav.Param("email")
	switch nav.Route {
	case forms.RouteLogin:
		return "kameleon login"
	case forms.RouteVerifyEmail:
		return withEmail("kameleon verify-email", email)
	case forms.RouteResetPassword:
		return withEmail("kameleon reset-password", email)
	case forms.RouteDashboard:
		return "kameleon dashboard"
	default:
		return ""
	}
}

func withEmail(command, email string) string {
	if email == "" {
		return command
	}
	return command + " --email " + email
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// prompt returns value if set, otherwise asks for it on the command input.
func prompt(cmd *cobra.Command, reader *bufio.Reader, label, value string) string {
	if value != "" {
		return value
	}
	cmd.Printf("%s: ", label)
	return readLine(reader)
}

// promptPassword reads a secret without echo when the input is a terminal.
func promptPassword(cmd *cobra.Command, reader *bufio.Reader, label string) string {
	cmd.Printf("%s: ", label)
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		cmd.Println()
		if err == nil {
			return string(password)
		}
	}
	return readLine(reader)
}

func inputReader(cmd *cobra.Command) *bufio.Reader {
	return bufio.NewReader(cmd.InOrStdin())
}

// checkInput prints and returns field errors from a client-side validation.
func checkInput(cmd *cobra.Command, errs validation.FieldErrors) error {
	if len(errs) == 0 {
		return nil
	}
	return printOutcome(cmd, forms.Invalid(errs))
}

// contentFromFlags returns the --content value, or the contents of --file when given.
// The second result reports whether either flag was set.
func contentFromFlags(cmd *cobra.Command) (string, bool, error) {
	path, _ := cmd.Flags().GetString("file")
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", false, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return string(data), true, nil
	}
	content, _ := cmd.Flags().GetString("content")
	return content, cmd.Flags().Changed("content"), nil
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().Int("limit", 0, "maximum number of items (0 = backend default)")
	cmd.Flags().String("next-token", "", "continue from a previous page")
}

func listParams(cmd *cobra.Command) domain.ListParams {
	limit, _ := cmd.Flags().GetInt("limit")
	next, _ := cmd.Flags().GetString("next-token")
	return domain.ListParams{Limit: limit, NextToken: next}
}

func printMore(cmd *cobra.Command, nextToken string) {
	if nextToken != "" {
		cmd.Printf("\nMore results available: --next-token %s\n", nextToken)
	}
}

// changedString returns a pointer to the flag value when the flag was set.
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func changedBool(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}
