package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/validation"
)

var personaCmd = &cobra.Command{
	Use:   "persona",
	Short: "Manage reviewer personas",
	Long: `Personas model the people who review your documents: their role,
preferred tone, length and technical depth, plus examples of writing they
liked or disliked.`,
}

var personaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List personas",
	RunE:  runPersonaList,
}

var personaGetCmd = &cobra.Command{
	Use:   "get [persona-id]",
	Short: "Show a persona and its examples",
	Args:  cobra.ExactArgs(1),
	RunE:  runPersonaGet,
}

var personaCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a persona",
	RunE:  runPersonaCreate,
}

var personaUpdateCmd = &cobra.Command{
	Use:   "update [persona-id]",
	Short: "Update a persona",
	Long:  `Update a persona. Only the flags you pass are changed.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPersonaUpdate,
}

var personaDeleteCmd = &cobra.Command{
	Use:   "delete [persona-id]",
	Short: "Delete a persona",
	Args:  cobra.ExactArgs(1),
	RunE:  runPersonaDelete,
}

var personaAddExampleCmd = &cobra.Command{
	Use:   "add-example [persona-id]",
	Short: "Add a calibration example to a persona",
	Long: `Add an example of writing the reviewer reacted to.

Types:
  liked        - writing the reviewer liked
  disliked     - writing the reviewer disliked
  before_after - an original and its revised version (--revised)`,
	Args: cobra.ExactArgs(1),
	RunE: runPersonaAddExample,
}

var personaRemoveExampleCmd = &cobra.Command{
	Use:   "remove-example [persona-id] [example-id]",
	Short: "Remove a calibration example from a persona",
	Args:  cobra.ExactArgs(2),
	RunE:  runPersonaRemoveExample,
}

func init() {
	addListFlags(personaListCmd)

	for _, c := range []*cobra.Command{personaCreateCmd, personaUpdateCmd} {
		c.Flags().StringP("name", "n", "", "persona name")
		c.Flags().StringP("role", "r", "", "reviewer role, e.g. VP Engineering")
		c.Flags().String("tone", "", "preferred tone, e.g. concise")
		c.Flags().String("length", "", "preferred length, e.g. short")
		c.Flags().String("depth", "", "preferred technical depth, e.g. high")
	}
	personaUpdateCmd.Flags().StringSlice("likes", nil, "things the reviewer likes")
	personaUpdateCmd.Flags().StringSlice("dislikes", nil, "things the reviewer dislikes")

	personaAddExampleCmd.Flags().String("type", string(domain.ExampleLiked), "liked, disliked or before_after")
	personaAddExampleCmd.Flags().StringP("content", "c", "", "example text")
	personaAddExampleCmd.Flags().StringP("file", "f", "", "read the example text from a file")
	personaAddExampleCmd.Flags().String("revised", "", "revised text for before_after examples")
	personaAddExampleCmd.Flags().String("notes", "", "why the reviewer reacted this way")

	personaCmd.AddCommand(personaListCmd)
	personaCmd.AddCommand(personaGetCmd)
	personaCmd.AddCommand(personaCreateCmd)
	personaCmd.AddCommand(personaUpdateCmd)
	personaCmd.AddCommand(personaDeleteCmd)
	personaCmd.AddCommand(personaAddExampleCmd)
	personaCmd.AddCommand(personaRemoveExampleCmd)
	rootCmd.AddCommand(personaCmd)
}

func runPersonaList(cmd *cobra.Command, _ []string) error {
	if personaService == nil {
		return errors.New("persona service not configured")
	}

	resp, err := personaService.List(cmd.Context(), listParams(cmd))
	if err != nil {
		return fmt.Errorf("failed to list personas: %w", err)
	}

	if jsonOutput() {
		return printJSON(cmd, resp)
	}

	if len(resp.Items) == 0 {
		cmd.Println("No personas yet. Create one with 'kameleon persona create'.")
		return nil
	}

	cmd.Printf("Personas (%d):\n\n", resp.Count())
	for _, p := range resp.Items {
		cmd.Printf("  %s (%s)\n", p.Name, p.Role)
		cmd.Printf("    ID: %s\n", p.ID)
		cmd.Printf("    Examples: %d\n", len(p.Examples))
	}
	printMore(cmd, resp.NextToken)
	return nil
}

func runPersonaGet(cmd *cobra.Command, args []string) error {
	if personaService == nil {
		return errors.New("persona service not configured")
	}

	persona, err := personaService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get persona: %w", err)
	}
	return printPersona(cmd, persona)
}

func runPersonaCreate(cmd *cobra.Command, _ []string) error {
	if personaService == nil {
		return errors.New("persona service not configured")
	}

	name, _ := cmd.Flags().GetString("name")
	role, _ := cmd.Flags().GetString("role")
	tone, _ := cmd.Flags().GetString("tone")
	length, _ := cmd.Flags().GetString("length")
	depth, _ := cmd.Flags().GetString("depth")

	in := validation.NewPersonaInput{
		Name:           name,
		Role:           role,
		Tone:           tone,
		Length:         length,
		TechnicalDepth: depth,
	}
	if err := checkInput(cmd, in.Validate()); err != nil {
		return err
	}

	persona, err := personaService.Create(cmd.Context(), in.Request())
	if err != nil {
		return fmt.Errorf("failed to create persona: %w", err)
	}
	if jsonOutput() {
		return printJSON(cmd, persona)
	}
	cmd.Printf("Created persona %s (%s)\n", persona.Name, persona.ID)
	return nil
}

func runPersonaUpdate(cmd *cobra.Command, args []string) error {
	if personaService == nil {
		return errors.New("persona service not configured")
	}

	req := domain.UpdatePersonaRequest{
		Name: changedString(cmd, "name"),
		Role: changedString(cmd, "role"),
	}
	prefs := domain.PersonaPreferencesPatch{
		Tone:           changedString(cmd, "tone"),
		Length:         changedString(cmd, "length"),
		TechnicalDepth: changedString(cmd, "depth"),
	}
	prefs.Likes, _ = cmd.Flags().GetStringSlice("likes")
	prefs.Dislikes, _ = cmd.Flags().GetStringSlice("dislikes")
	if prefs.Tone != nil || prefs.Length != nil || prefs.TechnicalDepth != nil ||
		len(prefs.Likes) > 0 || len(prefs.Dislikes) > 0 {
		req.Preferences = &prefs
	}
	if req.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", domain.ErrInvalidInput)
	}

	persona, err := personaService.Update(cmd.Context(), args[0], req)
	if err != nil {
		return fmt.Errorf("failed to update persona: %w", err)
	}
	if jsonOutput() {
		return printJSON(cmd, persona)
	}
	cmd.Printf("Updated persona %s\n", persona.ID)
	return nil
}

func runPersonaDelete(cmd *cobra.Command, args []string) error {
	if personaService == nil {
		return errors.New("persona service not configured")
	}

	if err := personaService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete persona: %w", err)
	}
	cmd.Printf("Deleted persona %s\n", args[0])
	return nil
}

func runPersonaAddExample(cmd *cobra.Command, args []string) error {
	if personaService == nil {
		return errors.New("persona service not configured")
	}

	rawType, _ := cmd.Flags().GetString("type")
	exampleType, err := domain.ParseExampleType(rawType)
	if err != nil {
		return err
	}
	content, _, err := contentFromFlags(cmd)
	if err != nil {
		return err
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: example content is required (--content or --file)", domain.ErrInvalidInput)
	}
	revised, _ := cmd.Flags().GetString("revised")
	if exampleType == domain.ExampleBeforeAfter && revised == "" {
		return fmt.Errorf("%w: --revised is required for before_after examples", domain.ErrInvalidInput)
	}
	notes, _ := cmd.Flags().GetString("notes")

	persona, err := personaService.AddExample(cmd.Context(), args[0], domain.AddPersonaExampleRequest{
		Type:           exampleType,
		Content:        content,
		RevisedContent: revised,
		Notes:          notes,
	})
	if err != nil {
		return fmt.Errorf("failed to add example: %w", err)
	}
	if jsonOutput() {
		return printJSON(cmd, persona)
	}
	cmd.Printf("Added %s example to %s (%d examples)\n", exampleType, persona.Name, len(persona.Examples))
	return nil
}

func runPersonaRemoveExample(cmd *cobra.Command, args []string) error {
	if personaService == nil {
		return errors.New("persona service not configured")
	}

	persona, err := personaService.RemoveExample(cmd.Context(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to remove example: %w", err)
	}
	if jsonOutput() {
		return printJSON(cmd, persona)
	}
	cmd.Printf("Removed example %s from %s\n", args[1], persona.Name)
	return nil
}

func printPersona(cmd *cobra.Command, p *domain.Persona) error {
	if jsonOutput() {
		return printJSON(cmd, p)
	}
	cmd.Printf("Name:  %s\n", p.Name)
	cmd.Printf("ID:    %s\n", p.ID)
	cmd.Printf("Role:  %s\n", p.Role)
	cmd.Println()
	cmd.Println("[Preferences]")
	cmd.Printf("  Tone:            %s\n", orDash(p.Preferences.Tone))
	cmd.Printf("  Length:          %s\n", orDash(p.Preferences.Length))
	cmd.Printf("  Technical depth: %s\n", orDash(p.Preferences.TechnicalDepth))
	if len(p.Preferences.Likes) > 0 {
		cmd.Printf("  Likes:           %s\n", strings.Join(p.Preferences.Likes, ", "))
	}
	if len(p.Preferences.Dislikes) > 0 {
		cmd.Printf("  Dislikes:        %s\n", strings.Join(p.Preferences.Dislikes, ", "))
	}
	if len(p.Examples) == 0 {
		return nil
	}
	cmd.Println()
	cmd.Printf("[Examples] (%d)\n", len(p.Examples))
	for _, ex := range p.Examples {
		cmd.Printf("  %s  %s\n", ex.ID, ex.Type)
		cmd.Printf("    %s\n", truncate(ex.Content, 72))
		if ex.RevisedContent != "" {
			cmd.Printf("    -> %s\n", truncate(ex.RevisedContent, 69))
		}
		if ex.Notes != "" {
			cmd.Printf("    Notes: %s\n", truncate(ex.Notes, 65))
		}
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
