package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show an overview of your workspace",
	RunE:  runDashboard,
}

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show your recent activity on this machine",
	RunE:  runActivity,
}

// dashboardKinds is the display order of the overview counts.
var dashboardKinds = []struct {
	kind  domain.ActivityKind
	label string
}{
	{domain.KindDocument, "Documents"},
	{domain.KindPersona, "Personas"},
	{domain.KindTemplate, "Templates"},
	{domain.KindAxiom, "Axioms"},
}

func init() {
	activityCmd.Flags().IntP("limit", "n", 10, "number of entries to show (0 = all)")

	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(activityCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	if dashboardService == nil {
		return errors.New("dashboard service not configured")
	}

	overview, err := dashboardService.Overview(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load dashboard: %w", err)
	}

	if jsonOutput() {
		return printJSON(cmd, overview)
	}

	cmd.Println(overview.Greeting)
	cmd.Println()
	for _, k := range dashboardKinds {
		if n, ok := overview.Count(k.kind); ok {
			cmd.Printf("  %-10s %d\n", k.label, n)
			continue
		}
		cmd.Printf("  %-10s unavailable (%s)\n", k.label, overview.Errors[k.kind])
	}

	cmd.Println()
	printActivity(cmd, overview.Recent)

	cmd.Println()
	cmd.Println("Quick actions:")
	cmd.Println("  kameleon document create   Start a new PRD")
	cmd.Println("  kameleon persona create    Add a reviewer persona")
	cmd.Println("  kameleon tui               Open the interactive UI")
	return nil
}

func runActivity(cmd *cobra.Command, _ []string) error {
	if dashboardService == nil {
		return errors.New("dashboard service not configured")
	}

	limit, _ := cmd.Flags().GetInt("limit")
	activity, err := dashboardService.Activity(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to load activity: %w", err)
	}

	if jsonOutput() {
		return printJSON(cmd, activity)
	}
	printActivity(cmd, activity)
	return nil
}

func printActivity(cmd *cobra.Command, activity []domain.Activity) {
	if len(activity) == 0 {
		cmd.Println("No recent activity.")
		return
	}
	cmd.Println("Recent activity:")
	now := time.Now()
	for _, a := range activity {
		cmd.Printf("  %-40s %s\n", a.Summary(), a.TimeAgo(now))
	}
}
