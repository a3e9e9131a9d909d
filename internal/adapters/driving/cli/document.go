package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/validation"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage PRD documents",
	Long: `Documents move through DRAFT, IN_REVIEW and APPROVED.
Submit a draft to send it for review.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a document from a template",
	RunE:  runDocumentCreate,
}

var documentUpdateCmd = &cobra.Command{
	Use:   "update [doc-id]",
	Short: "Update a document",
	Long:  `Update a document. Only the flags you pass are changed.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentUpdate,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

var documentSubmitCmd = &cobra.Command{
	Use:   "submit [doc-id]",
	Short: "Submit a document for review",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentSubmit,
}

var documentReviewsCmd = &cobra.Command{
	Use:   "reviews [doc-id]",
	Short: "List the reviews of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentReviews,
}

func init() {
	addListFlags(documentListCmd)
	documentListCmd.Flags().StringP("status", "s", "", "only documents in this status (draft, in_review, approved)")

	for _, c := range []*cobra.Command{documentCreateCmd, documentUpdateCmd} {
		c.Flags().StringP("title", "t", "", "document title")
		c.Flags().String("template", "", "template ID")
		c.Flags().String("persona", "", "persona ID of the intended reviewer")
		c.Flags().StringP("content", "c", "", "document body")
		c.Flags().StringP("file", "f", "", "read the document body from a file")
	}
	documentUpdateCmd.Flags().StringP("status", "s", "", "new status (draft, in_review, approved)")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentCreateCmd)
	documentCmd.AddCommand(documentUpdateCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	documentCmd.AddCommand(documentSubmitCmd)
	documentCmd.AddCommand(documentReviewsCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	params := domain.DocumentListParams{ListParams: listParams(cmd)}
	if raw, _ := cmd.Flags().GetString("status"); raw != "" {
		status, err := domain.ParseDocumentStatus(raw)
		if err != nil {
			return err
		}
		params.Status = status
	}

	resp, err := documentService.List(cmd.Context(), params)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if jsonOutput() {
		return printJSON(cmd, resp)
	}

	if len(resp.Items) == 0 {
		cmd.Println("No documents found. Create one with 'kameleon document create'.")
		return nil
	}

	cmd.Printf("Documents (%d):\n\n", resp.Count())
	for _, doc := range resp.Items {
		cmd.Printf("  %s\n", doc.Title)
		cmd.Printf("    ID: %s\n", doc.ID)
		cmd.Printf("    Status: %s  Updated: %s\n", doc.Status, formatTime(doc.UpdatedAt))
	}
	printMore(cmd, resp.NextToken)
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}
	return printDocument(cmd, doc)
}

func runDocumentCreate(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	title, _ := cmd.Flags().GetString("title")
	templateID, _ := cmd.Flags().GetString("template")
	personaID, _ := cmd.Flags().GetString("persona")
	content, _, err := contentFromFlags(cmd)
	if err != nil {
		return err
	}

	in := validation.NewDocumentInput{
		Title:      title,
		TemplateID: templateID,
		PersonaID:  personaID,
		Content:    content,
	}
	if err := checkInput(cmd, in.Validate()); err != nil {
		return err
	}

	doc, err := documentService.Create(cmd.Context(), in.Request())
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	if jsonOutput() {
		return printJSON(cmd, doc)
	}
	cmd.Printf("Created document %s (%s)\n", doc.Title, doc.ID)
	return nil
}

func runDocumentUpdate(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	req := domain.UpdateDocumentRequest{
		Title:      changedString(cmd, "title"),
		TemplateID: changedString(cmd, "template"),
		PersonaID:  changedString(cmd, "persona"),
	}
	content, set, err := contentFromFlags(cmd)
	if err != nil {
		return err
	}
	if set {
		req.Content = &content
	}
	if raw := changedString(cmd, "status"); raw != nil {
		status, err := domain.ParseDocumentStatus(*raw)
		if err != nil {
			return err
		}
		req.Status = &status
	}
	if req.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", domain.ErrInvalidInput)
	}

	doc, err := documentService.Update(cmd.Context(), args[0], req)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	if jsonOutput() {
		return printJSON(cmd, doc)
	}
	cmd.Printf("Updated document %s\n", doc.ID)
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	cmd.Printf("Deleted document %s\n", args[0])
	return nil
}

func runDocumentSubmit(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	result, err := documentService.Submit(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to submit document: %w", err)
	}
	if jsonOutput() {
		return printJSON(cmd, result)
	}
	if result.Message != "" {
		cmd.Println(result.Message)
	}
	cmd.Printf("Document %s is now %s\n", result.Document.ID, result.Document.Status)
	return nil
}

func runDocumentReviews(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	reviews, err := documentService.Reviews(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to list reviews: %w", err)
	}

	if jsonOutput() {
		return printJSON(cmd, reviews)
	}

	if len(reviews) == 0 {
		cmd.Println("No reviews yet.")
		return nil
	}

	cmd.Printf("Reviews (%d):\n\n", len(reviews))
	for _, r := range reviews {
		cmd.Printf("  %s  %s  %s\n", r.ID, r.Status, formatTime(r.CreatedAt))
		cmd.Printf("    %s\n", truncate(r.Feedback, 72))
	}
	return nil
}

func printDocument(cmd *cobra.Command, doc *domain.Document) error {
	if jsonOutput() {
		return printJSON(cmd, doc)
	}
	cmd.Printf("Title:    %s\n", doc.Title)
	cmd.Printf("ID:       %s\n", doc.ID)
	cmd.Printf("Status:   %s\n", doc.Status)
	if doc.TemplateID != "" {
		cmd.Printf("Template: %s\n", doc.TemplateID)
	}
	if doc.PersonaID != "" {
		cmd.Printf("Persona:  %s\n", doc.PersonaID)
	}
	cmd.Printf("Created:  %s\n", formatTime(doc.CreatedAt))
	cmd.Printf("Updated:  %s\n", formatTime(doc.UpdatedAt))
	cmd.Println()
	cmd.Println(doc.Content)
	return nil
}
