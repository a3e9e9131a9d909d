package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/validation"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage document templates",
	Long: `Templates are document skeletons written for an audience:
ENGINEERING, PRODUCT, LEADERSHIP or CUSTOM.`,
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates",
	RunE:  runTemplateList,
}

var templateGetCmd = &cobra.Command{
	Use:   "get [template-id]",
	Short: "Show a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateGet,
}

var templateCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a template",
	RunE:  runTemplateCreate,
}

var templateUpdateCmd = &cobra.Command{
	Use:   "update [template-id]",
	Short: "Update a template",
	Long:  `Update a template. Only the flags you pass are changed.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateUpdate,
}

var templateDeleteCmd = &cobra.Command{
	Use:   "delete [template-id]",
	Short: "Delete a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateDelete,
}

func init() {
	addListFlags(templateListCmd)
	templateListCmd.Flags().StringP("audience", "a", "", "only templates for this audience")

	for _, c := range []*cobra.Command{templateCreateCmd, templateUpdateCmd} {
		c.Flags().StringP("name", "n", "", "template name")
		c.Flags().StringP("audience", "a", "", "ENGINEERING, PRODUCT, LEADERSHIP or CUSTOM")
		c.Flags().StringP("content", "c", "", "template structure")
		c.Flags().StringP("file", "f", "", "read the template structure from a file")
		c.Flags().Bool("default", false, "use the template by default for its audience")
	}

	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateGetCmd)
	templateCmd.AddCommand(templateCreateCmd)
	templateCmd.AddCommand(templateUpdateCmd)
	templateCmd.AddCommand(templateDeleteCmd)
	rootCmd.AddCommand(templateCmd)
}

func runTemplateList(cmd *cobra.Command, _ []string) error {
	if templateService == nil {
		return errors.New("template service not configured")
	}

	params := domain.TemplateListParams{ListParams: listParams(cmd)}
	if raw, _ := cmd.Flags().GetString("audience"); raw != "" {
		audience, err := domain.ParseTemplateAudience(raw)
		if err != nil {
			return err
		}
		params.Audience = audience
	}

	resp, err := templateService.List(cmd.Context(), params)
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	if jsonOutput() {
		return printJSON(cmd, resp)
	}

	if len(resp.Items) == 0 {
		cmd.Println("No templates found.")
		return nil
	}

	cmd.Printf("Templates (%d):\n\n", resp.Count())
	for _, t := range resp.Items {
		marker := ""
		if t.IsDefault {
			marker = " [default]"
		}
		cmd.Printf("  %s%s\n", t.Name, marker)
		cmd.Printf("    ID: %s\n", t.ID)
		cmd.Printf("    Audience: %s\n", t.Audience.Description())
	}
	printMore(cmd, resp.NextToken)
	return nil
}

func runTemplateGet(cmd *cobra.Command, args []string) error {
	if templateService == nil {
		return errors.New("template service not configured")
	}

	tmpl, err := templateService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get template: %w", err)
	}

	if jsonOutput() {
		return printJSON(cmd, tmpl)
	}
	cmd.Printf("Name:     %s\n", tmpl.Name)
	cmd.Printf("ID:       %s\n", tmpl.ID)
	cmd.Printf("Audience: %s\n", tmpl.Audience.Description())
	cmd.Printf("Default:  %s\n", yesNo(tmpl.IsDefault))
	cmd.Printf("Updated:  %s\n", formatTime(tmpl.UpdatedAt))
	cmd.Println()
	cmd.Println(tmpl.Structure)
	return nil
}

func runTemplateCreate(cmd *cobra.Command, _ []string) error {
	if templateService == nil {
		return errors.New("template service not configured")
	}

	name, _ := cmd.Flags().GetString("name")
	audience, _ := cmd.Flags().GetString("audience")
	isDefault, _ := cmd.Flags().GetBool("default")
	structure, _, err := contentFromFlags(cmd)
	if err != nil {
		return err
	}

	in := validation.NewTemplateInput{
		Name:      name,
		Audience:  normaliseAudience(audience),
		Structure: structure,
		IsDefault: isDefault,
	}
	if err := checkInput(cmd, in.Validate()); err != nil {
		return err
	}

	tmpl, err := templateService.Create(cmd.Context(), in.Request())
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	if jsonOutput() {
		return printJSON(cmd, tmpl)
	}
	cmd.Printf("Created template %s (%s)\n", tmpl.Name, tmpl.ID)
	return nil
}

func runTemplateUpdate(cmd *cobra.Command, args []string) error {
	if templateService == nil {
		return errors.New("template service not configured")
	}

	req := domain.UpdateTemplateRequest{
		Name:      changedString(cmd, "name"),
		IsDefault: changedBool(cmd, "default"),
	}
	if raw := changedString(cmd, "audience"); raw != nil {
		audience, err := domain.ParseTemplateAudience(*raw)
		if err != nil {
			return err
		}
		req.Audience = &audience
	}
	structure, set, err := contentFromFlags(cmd)
	if err != nil {
		return err
	}
	if set {
		req.Structure = &structure
	}
	if req.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", domain.ErrInvalidInput)
	}

	tmpl, err := templateService.Update(cmd.Context(), args[0], req)
	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}
	if jsonOutput() {
		return printJSON(cmd, tmpl)
	}
	cmd.Printf("Updated template %s\n", tmpl.ID)
	return nil
}

func runTemplateDelete(cmd *cobra.Command, args []string) error {
	if templateService == nil {
		return errors.New("template service not configured")
	}

	if err := templateService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	cmd.Printf("Deleted template %s\n", args[0])
	return nil
}

// normaliseAudience upper-cases a known audience so "product" is accepted.
func normaliseAudience(raw string) string {
	if a, err := domain.ParseTemplateAudience(raw); err == nil {
		return a.String()
	}
	return raw
}
