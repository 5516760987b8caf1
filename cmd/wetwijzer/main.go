package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/coolbeans/wetwijzer/pkg/advies"
	"github.com/coolbeans/wetwijzer/pkg/classify"
	"github.com/coolbeans/wetwijzer/pkg/wetten"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "wetwijzer",
		Short: "Dutch legislation mapper",
		Long: `Wetwijzer maps everyday legal situations onto Dutch legislation.

It fetches and normalizes laws from wetten.overheid.nl and answers:
  - Which law hides behind a BWB identifier, with structured metadata
  - Which laws match a free-text search
  - Which legal categories and statutes cover a described situation`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(fetchCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(categoriesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// clientFlags are the connection flags shared by the fetch and search
// commands.
func clientFlags(cmd *cobra.Command) {
	cmd.Flags().String("base-url", wetten.DefaultBaseURL, "root URL of the legislation site")
	cmd.Flags().Duration("rate-limit", wetten.DefaultRequestInterval, "minimum interval between HTTP requests")
	cmd.Flags().Int("max-retries", wetten.DefaultMaxRetries, "attempts per request on transient failure")
}

func clientFromFlags(cmd *cobra.Command) *wetten.WettenClient {
	config := wetten.DefaultConfig()
	config.BaseURL, _ = cmd.Flags().GetString("base-url")
	config.RateLimit, _ = cmd.Flags().GetDuration("rate-limit")
	config.MaxRetries, _ = cmd.Flags().GetInt("max-retries")
	config.Logger = slog.Default()
	return wetten.NewWettenClient(config)
}

func fetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch [bwb-id]",
		Short: "Fetch and normalize a law by BWB identifier",
		Long: `Fetch a law page from wetten.overheid.nl and normalize it into a
structured document.

The identifier may be a full BWB ID or bare digits:
  wetwijzer fetch BWBR0005537
  wetwijzer fetch 5537 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			bwbID, ok := wetten.CanonicalBWBID(args[0])
			if !ok {
				return fmt.Errorf("invalid BWB identifier: %s", args[0])
			}

			client := clientFromFlags(cmd)
			law := client.ParseLaw(bwbID)

			if asJSON {
				return printJSON(cmd.OutOrStdout(), law)
			}

			metadata := law.Metadata
			fmt.Printf("%s (%s)\n", metadata.Name, metadata.CitationTitle)
			fmt.Printf("  BWB ID:         %s\n", metadata.BWBID)
			fmt.Printf("  Domain:         %s\n", metadata.Domain)
			fmt.Printf("  Authority:      %s\n", metadata.Authority)
			fmt.Printf("  In force since: %s\n", metadata.EntryIntoForce)
			fmt.Printf("  Status:         %s\n", metadata.Status)
			fmt.Printf("  Structure:      %d chapters, %d sections, %d articles\n",
				len(law.Content.Chapters), len(law.Content.Sections), len(law.Content.Articles))
			return nil
		},
	}
	clientFlags(cmd)
	cmd.Flags().Bool("json", false, "emit the full document as JSON")
	return cmd
}

func searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [terms...]",
		Short: "Search wetten.overheid.nl for laws",
		Long: `Search the legislation site by free text and list matching laws.

A query that is itself a BWB identifier short-circuits to that law:
  wetwijzer search arbeidsovereenkomst
  wetwijzer search BWBR0005537`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			maxResults, _ := cmd.Flags().GetInt("max-results")
			asJSON, _ := cmd.Flags().GetBool("json")

			client := clientFromFlags(cmd)
			results, err := client.Search(strings.Join(args, " "), maxResults)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), results)
			}

			if len(results) == 0 {
				fmt.Println("No laws found.")
				return nil
			}
			fmt.Printf("Found %d result(s):\n", len(results))
			for _, result := range results {
				fmt.Printf("  %-12s %s\n", result.BWBID, result.Title)
				if result.URL != "" {
					fmt.Printf("               %s\n", result.URL)
				}
			}
			return nil
		},
	}
	clientFlags(cmd)
	cmd.Flags().Int("max-results", 10, "maximum number of results")
	cmd.Flags().Bool("json", false, "emit results as JSON")
	return cmd
}

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [situation...]",
		Short: "Map a described situation onto Dutch legislation",
		Long: `Classify a free-text situation into legal categories, fetch the
laws that cover them, and print advice with references.

Example:
  wetwijzer analyze Ik word gediscrimineerd op mijn werk`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			showRefs, _ := cmd.Flags().GetBool("references")
			verbose, _ := cmd.Flags().GetBool("verbose")
			tablesPath, _ := cmd.Flags().GetString("tables")

			classifier, err := classifierFromPath(tablesPath)
			if err != nil {
				return err
			}

			client := clientFromFlags(cmd)
			advisor := advies.NewAdvisor(client, classifier, slog.Default())
			analysis := advisor.Analyze(strings.Join(args, " "))

			if asJSON {
				return printJSON(cmd.OutOrStdout(), analysis)
			}

			fmt.Printf("Situation: %s\n", analysis.Situation)
			fmt.Printf("\nRelevant categories: %s\n", strings.Join(analysis.RelevantCategories, ", "))
			fmt.Println("\nRelevant laws:")
			for _, name := range analysis.RelevantLaws {
				fmt.Printf("  - %s\n", name)
			}
			fmt.Printf("\nAdvies:\n%s\n", analysis.Advice)

			if showRefs || verbose {
				fmt.Println("\nReferences:")
				for _, ref := range analysis.References {
					fmt.Printf("\n  %s (%s)\n", ref.Name, ref.Citation)
					fmt.Printf("    BWB ID:         %s\n", ref.BWBID)
					fmt.Printf("    Domain:         %s\n", ref.Domain)
					fmt.Printf("    In force since: %s\n", ref.EntryForce)
					fmt.Printf("    Authority:      %s\n", ref.Authority)
				}
			}
			return nil
		},
	}
	clientFlags(cmd)
	cmd.Flags().Bool("json", false, "emit the analysis as JSON")
	cmd.Flags().Bool("references", false, "show detailed law references")
	cmd.Flags().String("tables", "", "YAML file overriding the classification tables")
	return cmd
}

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the known legal categories and their laws",
		RunE: func(cmd *cobra.Command, args []string) error {
			tablesPath, _ := cmd.Flags().GetString("tables")

			classifier, err := classifierFromPath(tablesPath)
			if err != nil {
				return err
			}

			for _, category := range classifier.Categories() {
				if bwbID, ok := classifier.LawFor(category); ok {
					fmt.Printf("  %-16s %s\n", category, bwbID)
				} else {
					fmt.Printf("  %s\n", category)
				}
			}
			return nil
		},
	}
	cmd.Flags().String("tables", "", "YAML file overriding the classification tables")
	return cmd
}

func classifierFromPath(path string) (*classify.Classifier, error) {
	if path == "" {
		return classify.NewClassifier(classify.DefaultTables()), nil
	}
	tables, err := classify.LoadTables(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load classification tables: %w", err)
	}
	return classify.NewClassifier(tables), nil
}

func printJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
