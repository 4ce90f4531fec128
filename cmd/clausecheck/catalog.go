package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/smallprintlabs/clausecheck/internal/cli"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the pattern catalog",
		Long:  `List the merged catalog of built-in and approved clause categories, or export the approved set as a portable snapshot.`,
	}

	cmd.AddCommand(catalogListCmd())
	cmd.AddCommand(catalogExportCmd())
	cmd.AddCommand(catalogImportCmd())

	return cmd
}

func catalogListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			userOnly, _ := cmd.Flags().GetBool("user")
			categories := eng.Catalog(ctx).Categories()

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			_, _ = fmt.Fprintln(w, "KEY\tTYPE\tWEIGHT\tMATCHERS\tSOURCE")
			shown := 0
			for _, cat := range categories {
				if userOnly && !cat.UserOwned {
					continue
				}
				source := "built-in"
				if cat.UserOwned {
					source = "approved"
				}
				preview := strings.Join(cat.Matchers, "; ")
				if len(preview) > 60 {
					preview = preview[:57] + "..."
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
					cat.Key, cli.TypeStyle(cat.Type).Render(string(cat.Type)),
					cat.Weight, preview, source)
				shown++
			}

			if shown == 0 {
				fmt.Println(cli.InfoStyle.Render("No categories to show."))
			}
			return nil
		},
	}

	cmd.Flags().Bool("user", false, "show only administrator-approved categories")

	return cmd
}

func catalogExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export approved categories as a YAML snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			outPath, _ := cmd.Flags().GetString("output")
			out := os.Stdout
			if outPath != "" {
				f, err := os.Create(outPath) // #nosec G304 -- user-chosen export path
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", outPath, err)
				}
				defer func() { _ = f.Close() }()
				out = f
			}

			return eng.ExportCatalog(ctx, out)
		},
	}

	cmd.Flags().StringP("output", "o", "", "write the snapshot to a file instead of stdout")

	return cmd
}

func catalogImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a YAML catalog snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			f, err := os.Open(args[0]) // #nosec G304 -- user-chosen snapshot path
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer func() { _ = f.Close() }()

			count, err := eng.ImportCatalog(ctx, f)
			if err != nil {
				return fmt.Errorf("failed to import catalog: %w", err)
			}

			fmt.Printf("Imported %d categories.\n", count)
			return nil
		},
	}
}
