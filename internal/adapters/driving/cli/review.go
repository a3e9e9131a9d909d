package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Record review feedback on documents",
}

var reviewCreateCmd = &cobra.Command{
	Use:   "create [doc-id]",
	Short: "Record a review of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviewCreate,
}

var reviewUpdateCmd = &cobra.Command{
	Use:   "update [review-id]",
	Short: "Update a review",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviewUpdate,
}

func init() {
	for _, c := range []*cobra.Command{reviewCreateCmd, reviewUpdateCmd} {
		c.Flags().String("feedback", "", "review feedback")
		c.Flags().StringP("status", "s", "", "pending, approved or changes_requested")
	}

	reviewCmd.AddCommand(reviewCreateCmd)
	reviewCmd.AddCommand(reviewUpdateCmd)
	rootCmd.AddCommand(reviewCmd)
}

func runReviewCreate(cmd *cobra.Command, args []string) error {
	if reviewService == nil {
		return errors.New("review service not configured")
	}

	feedback, _ := cmd.Flags().GetString("feedback")
	if strings.TrimSpace(feedback) == "" {
		return fmt.Errorf("%w: --feedback is required", domain.ErrInvalidInput)
	}
	status := domain.ReviewPending
	if raw, _ := cmd.Flags().GetString("status"); raw != "" {
		parsed, err := domain.ParseReviewStatus(raw)
		if err != nil {
			return err
		}
		status = parsed
	}

	review, err := reviewService.Create(cmd.Context(), domain.CreateReviewRequest{
		DocumentID: args[0],
		Feedback:   feedback,
		Status:     status,
	})
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	if jsonOutput() {
		return printJSON(cmd, review)
	}
	cmd.Printf("Recorded review %s (%s)\n", review.ID, review.Status)
	return nil
}

func runReviewUpdate(cmd *cobra.Command, args []string) error {
	if reviewService == nil {
		return errors.New("review service not configured")
	}

	req := domain.UpdateReviewRequest{Feedback: changedString(cmd, "feedback")}
	if raw := changedString(cmd, "status"); raw != nil {
		status, err := domain.ParseReviewStatus(*raw)
		if err != nil {
			return err
		}
		req.Status = &status
	}
	if req.Feedback == nil && req.Status == nil {
		return fmt.Errorf("%w: nothing to update", domain.ErrInvalidInput)
	}

	review, err := reviewService.Update(cmd.Context(), args[0], req)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	if jsonOutput() {
		return printJSON(cmd, review)
	}
	cmd.Printf("Updated review %s (%s)\n", review.ID, review.Status)
	return nil
}
