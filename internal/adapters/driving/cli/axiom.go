package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/validation"
)

var axiomCmd = &cobra.Command{
	Use:   "axiom",
	Short: "Manage guiding axioms",
	Long: `Axioms are the writing principles applied to your documents,
such as "Every requirement has a measurable success metric".`,
}

var axiomListCmd = &cobra.Command{
	Use:   "list",
	Short: "List axioms",
	RunE:  runAxiomList,
}

var axiomGetCmd = &cobra.Command{
	Use:   "get [axiom-id]",
	Short: "Show an axiom",
	Args:  cobra.ExactArgs(1),
	RunE:  runAxiomGet,
}

var axiomCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an axiom",
	RunE:  runAxiomCreate,
}

var axiomUpdateCmd = &cobra.Command{
	Use:   "update [axiom-id]",
	Short: "Update an axiom",
	Long:  `Update an axiom. Only the flags you pass are changed.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAxiomUpdate,
}

var axiomDeleteCmd = &cobra.Command{
	Use:   "delete [axiom-id]",
	Short: "Delete an axiom",
	Args:  cobra.ExactArgs(1),
	RunE:  runAxiomDelete,
}

func init() {
	addListFlags(axiomListCmd)

	for _, c := range []*cobra.Command{axiomCreateCmd, axiomUpdateCmd} {
		c.Flags().StringP("title", "t", "", "axiom title")
		c.Flags().StringP("content", "c", "", "axiom text")
		c.Flags().StringP("file", "f", "", "read the axiom text from a file")
		c.Flags().Bool("default", false, "apply the axiom to new documents by default")
	}

	axiomCmd.AddCommand(axiomListCmd)
	axiomCmd.AddCommand(axiomGetCmd)
	axiomCmd.AddCommand(axiomCreateCmd)
	axiomCmd.AddCommand(axiomUpdateCmd)
	axiomCmd.AddCommand(axiomDeleteCmd)
	rootCmd.AddCommand(axiomCmd)
}

func runAxiomList(cmd *cobra.Command, _ []string) error {
	if axiomService == nil {
		return errors.New("axiom service not configured")
	}

	resp, err := axiomService.List(cmd.Context(), listParams(cmd))
	if err != nil {
		return fmt.Errorf("failed to list axioms: %w", err)
	}

	if jsonOutput() {
		return printJSON(cmd, resp)
	}

	if len(resp.Items) == 0 {
		cmd.Println("No axioms yet. Create one with 'kameleon axiom create'.")
		return nil
	}

	cmd.Printf("Axioms (%d):\n\n", resp.Count())
	for _, a := range resp.Items {
		marker := ""
		if a.IsDefault {
			marker = " [default]"
		}
		cmd.Printf("  %s%s\n", a.Title, marker)
		cmd.Printf("    ID: %s\n", a.ID)
		cmd.Printf("    %s\n", truncate(a.Content, 72))
	}
	printMore(cmd, resp.NextToken)
	return nil
}

func runAxiomGet(cmd *cobra.Command, args []string) error {
	if axiomService == nil {
		return errors.New("axiom service not configured")
	}

	axiom, err := axiomService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get axiom: %w", err)
	}
	return printAxiom(cmd, axiom)
}

func runAxiomCreate(cmd *cobra.Command, _ []string) error {
	if axiomService == nil {
		return errors.New("axiom service not configured")
	}

	title, _ := cmd.Flags().GetString("title")
	isDefault, _ := cmd.Flags().GetBool("default")
	content, _, err := contentFromFlags(cmd)
	if err != nil {
		return err
	}

	in := validation.NewAxiomInput{Title: title, Content: content, IsDefault: isDefault}
	if err := checkInput(cmd, in.Validate()); err != nil {
		return err
	}

	axiom, err := axiomService.Create(cmd.Context(), in.Request())
	if err != nil {
		return fmt.Errorf("failed to create axiom: %w", err)
	}
	if jsonOutput() {
		return printJSON(cmd, axiom)
	}
	cmd.Printf("Created axiom %s (%s)\n", axiom.Title, axiom.ID)
	return nil
}

func runAxiomUpdate(cmd *cobra.Command, args []string) error {
	if axiomService == nil {
		return errors.New("axiom service not configured")
	}

	req := domain.UpdateAxiomRequest{
		Title:     changedString(cmd, "title"),
		IsDefault: changedBool(cmd, "default"),
	}
	content, set, err := contentFromFlags(cmd)
	if err != nil {
		return err
	}
	if set {
		req.Content = &content
	}
	if req.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", domain.ErrInvalidInput)
	}

	axiom, err := axiomService.Update(cmd.Context(), args[0], req)
	if err != nil {
		return fmt.Errorf("failed to update axiom: %w", err)
	}
	if jsonOutput() {
		return printJSON(cmd, axiom)
	}
	cmd.Printf("Updated axiom %s\n", axiom.ID)
	return nil
}

func runAxiomDelete(cmd *cobra.Command, args []string) error {
	if axiomService == nil {
		return errors.New("axiom service not configured")
	}

	if err := axiomService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete axiom: %w", err)
	}
	cmd.Printf("Deleted axiom %s\n", args[0])
	return nil
}

func printAxiom(cmd *cobra.Command, a *domain.Axiom) error {
	if jsonOutput() {
		return printJSON(cmd, a)
	}
	cmd.Printf("Title:    %s\n", a.Title)
	cmd.Printf("ID:       %s\n", a.ID)
	cmd.Printf("Default:  %s\n", yesNo(a.IsDefault))
	cmd.Printf("Created:  %s\n", formatTime(a.CreatedAt))
	cmd.Printf("Updated:  %s\n", formatTime(a.UpdatedAt))
	cmd.Println()
	cmd.Println(a.Content)
	return nil
}
