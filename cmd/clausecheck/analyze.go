package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"text/tabwriter"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/smallprintlabs/clausecheck/internal/cli"
	"github.com/smallprintlabs/clausecheck/internal/engine"
	"github.com/smallprintlabs/clausecheck/internal/model"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [files...]",
		Short: "Analyze extracted contract text",
		Long: `Analyze one or more text files of extracted contract pages. Pages within
a file are separated by form-feed characters; a file without separators is
treated as a single page. Each file is rated independently and newly
discovered candidate patterns are queued for review.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			asJSON, _ := cmd.Flags().GetBool("json")
			perPage, _ := cmd.Flags().GetBool("per-page")

			var bar *progressbar.ProgressBar
			if len(args) > 1 && !asJSON {
				bar = progressbar.Default(int64(len(args)), "analyzing")
			}

			// Each document is an independent, read-only computation over
			// the same catalog snapshot; only candidate persistence writes,
			// and the store serializes that. Fan out, report in input order.
			type fileAnalysis struct {
				doc    *model.Document
				result *engine.Result
			}

			results := make([]fileAnalysis, len(args))
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(runtime.GOMAXPROCS(0))

			for i, path := range args {
				g.Go(func() error {
					doc, err := readDocument(path)
					if err != nil {
						return err
					}

					result, err := eng.Analyze(gctx, *doc)
					if err != nil {
						return fmt.Errorf("failed to analyze %s: %w", path, err)
					}

					results[i] = fileAnalysis{doc: doc, result: result}
					if bar != nil {
						_ = bar.Add(1)
					}
					return nil
				})
			}

			if err := g.Wait(); err != nil {
				return err
			}
			if bar != nil {
				fmt.Println()
			}

			for _, fa := range results {
				if asJSON {
					if err := printJSON(fa.result); err != nil {
						return err
					}
					continue
				}
				printReport(fa.doc, fa.result, perPage)
			}

			return nil
		},
	}

	cmd.Flags().Bool("json", false, "emit machine-readable JSON instead of a report")
	cmd.Flags().Bool("per-page", false, "break the match listing down by page")

	return cmd
}

// readDocument loads a text file as a document, splitting pages on form-feed.
func readDocument(path string) (*model.Document, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-supplied analysis input
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc := &model.Document{ID: filepath.Base(path)}
	for i, pageText := range strings.Split(string(data), "\f") {
		doc.Pages = append(doc.Pages, model.Page{Number: i + 1, Text: pageText})
	}
	return doc, nil
}

// jsonResult mirrors the external interface consumed by API collaborators.
type jsonResult struct {
	Matches    map[string][]jsonMatch `json:"matches"`
	Rating     jsonRating             `json:"rating"`
	Candidates []jsonCandidate        `json:"candidates"`
}

type jsonMatch struct {
	Match    string `json:"match"`
	Page     int    `json:"page"`
	Position int    `json:"position"`
	Score    int    `json:"score"`
}

type jsonRating struct {
	Rating       string  `json:"rating"`
	ScoreOutOf10 float64 `json:"score_out_of_10"`
}

type jsonCandidate struct {
	ID         string  `json:"id,omitempty"`
	Phrase     string  `json:"phrase"`
	Type       string  `json:"type"`
	Label      string  `json:"label"`
	Page       int     `json:"page"`
	Confidence float64 `json:"confidence"`
}

func printJSON(result *engine.Result) error {
	out := jsonResult{
		Matches: make(map[string][]jsonMatch, len(result.Matches)),
		Rating: jsonRating{
			Rating:       string(result.Rating.Band),
			ScoreOutOf10: result.Rating.Score,
		},
	}
	for key, matches := range result.Matches {
		for _, m := range matches {
			out.Matches[key] = append(out.Matches[key], jsonMatch{
				Match:    m.Text,
				Page:     m.Page,
				Position: m.Offset,
				Score:    m.Score,
			})
		}
	}
	for _, c := range result.Candidates {
		out.Candidates = append(out.Candidates, jsonCandidate{
			ID:         c.ID,
			Phrase:     c.Phrase,
			Type:       string(c.Type),
			Label:      c.Label,
			Page:       c.Page,
			Confidence: c.Confidence,
		})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func printReport(doc *model.Document, result *engine.Result, perPage bool) {
	fmt.Println(cli.TitleStyle.Render(doc.ID))

	rating := result.Rating
	fmt.Printf("%s %s  %s\n",
		cli.BandStyle(rating.Band).Render(string(rating.Band)),
		fmt.Sprintf("(%.1f/10)", rating.Score),
		cli.SubtleStyle.Render(fmt.Sprintf("risks: %d (%s)  benefits: %d (%s)",
			rating.RiskCount, rating.RiskLevel, rating.BenefitCount, rating.BenefitLevel)))
	fmt.Println()

	if len(result.AllMatches) == 0 {
		fmt.Println(cli.InfoStyle.Render("No known clause patterns found."))
	} else {
		printMatchTable(result.AllMatches, perPage)
	}

	if len(result.Candidates) > 0 {
		fmt.Println()
		fmt.Println(cli.WarningStyle.Render(fmt.Sprintf(
			"%d new candidate pattern(s) queued for review; see 'clausecheck candidates list'.",
			len(result.Candidates))))
	}
}

func printMatchTable(matches []model.Match, perPage bool) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	if perPage {
		_, _ = fmt.Fprintln(w, "PAGE\tCATEGORY\tTYPE\tSCORE\tMATCH")
	} else {
		_, _ = fmt.Fprintln(w, "CATEGORY\tTYPE\tSCORE\tPAGE\tMATCH")
	}

	for _, m := range matches {
		typeLabel := cli.TypeStyle(m.Type).Render(string(m.Type))
		if perPage {
			_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", m.Page, m.CategoryKey, typeLabel, m.Score, m.Text)
		} else {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", m.CategoryKey, typeLabel, m.Score, m.Page, m.Text)
		}
	}
}
