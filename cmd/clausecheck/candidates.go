package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/smallprintlabs/clausecheck/internal/cli"
	"github.com/smallprintlabs/clausecheck/internal/model"
)

func candidatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "candidates",
		Aliases: []string{"candidate"},
		Short:   "Manage candidate clause patterns",
		Long: `Review the queue of candidate patterns proposed by discovery or submitted
manually. Scoring a candidate merges it into the catalog; rejecting discards it.`,
	}

	cmd.AddCommand(candidatesListCmd())
	cmd.AddCommand(candidatesSubmitCmd())
	cmd.AddCommand(candidatesScoreCmd())
	cmd.AddCommand(candidatesRejectCmd())
	cmd.AddCommand(candidatesReviewCmd())

	return cmd
}

func candidatesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List candidate patterns",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			stateFlag, _ := cmd.Flags().GetString("state")
			candidates, err := eng.ListCandidates(ctx, model.CandidateState(stateFlag))
			if err != nil {
				return fmt.Errorf("failed to list candidates: %w", err)
			}

			if len(candidates) == 0 {
				fmt.Println(cli.InfoStyle.Render("No candidates found."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			_, _ = fmt.Fprintln(w, "ID\tSTATE\tTYPE\tLABEL\tPAGE\tCONF\tPHRASE")
			for _, c := range candidates {
				phrase := c.Phrase
				if len(phrase) > 60 {
					phrase = phrase[:57] + "..."
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.2f\t%s\n",
					shortID(c.ID), c.State, cli.TypeStyle(c.Type).Render(string(c.Type)),
					c.Label, c.Page, c.Confidence, phrase)
			}
			return nil
		},
	}

	cmd.Flags().String("state", string(model.CandidateStatePending), "filter by state (pending, scored, rejected, or empty for all)")

	return cmd
}

func candidatesSubmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit <phrase>",
		Short: "Manually submit a span as a candidate pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			docID, _ := cmd.Flags().GetString("document")
			page, _ := cmd.Flags().GetInt("page")
			typeFlag, _ := cmd.Flags().GetString("type")

			candidate, err := eng.SubmitManual(ctx, docID, args[0], page, model.CategoryType(typeFlag))
			if err != nil {
				return fmt.Errorf("failed to submit candidate: %w", err)
			}

			fmt.Printf("Submitted candidate %s (%s)\n", candidate.ID, candidate.State)
			return nil
		},
	}

	cmd.Flags().String("document", "manual", "document id the span came from")
	cmd.Flags().Int("page", 1, "page the span came from")
	cmd.Flags().String("type", string(model.CategoryTypeRisk), "proposed type (risk or benefit)")

	return cmd
}

func candidatesScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score <id>",
		Short: "Approve a pending candidate into the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			key, _ := cmd.Flags().GetString("category")
			typeFlag, _ := cmd.Flags().GetString("type")
			weight, _ := cmd.Flags().GetInt("weight")

			if key == "" {
				return fmt.Errorf("--category is required")
			}

			category, err := eng.Score(ctx, args[0], key, model.CategoryType(typeFlag), weight)
			if err != nil {
				return fmt.Errorf("failed to score candidate: %w", err)
			}

			fmt.Printf("Scored into category %s (%s, weight %d, %d matchers)\n",
				category.Key, category.Type, category.Weight, len(category.Matchers))
			return nil
		},
	}

	cmd.Flags().String("category", "", "category key to merge the candidate into (required)")
	cmd.Flags().String("type", string(model.CategoryTypeRisk), "category type (risk or benefit)")
	cmd.Flags().Int("weight", 3, "severity or benefit weight (1-5)")

	return cmd
}

func candidatesRejectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reject <id>",
		Short: "Reject a pending candidate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := eng.Reject(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to reject candidate: %w", err)
			}

			fmt.Println("Candidate rejected.")
			return nil
		},
	}
}

// shortID trims a uuid for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
