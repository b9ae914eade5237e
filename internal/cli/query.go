package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"marketbrief/internal/adapter/docstore"
	"marketbrief/internal/adapter/news"
	"marketbrief/internal/adapter/retriever"
	"marketbrief/internal/domain"
	"marketbrief/internal/symbols"
	"marketbrief/internal/usecase"
)

var (
	queryText     string
	queryTopK     int
	queryJSON     bool
	querySymbols  string
	queryArticles string
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Rank news snippets against a query",
	Long: `Fetch news for the query's symbols (or load articles from a local
directory) and print the top-k snippets by keyword overlap.

Examples:
  marketbrief query -q "TSMC earnings"
  marketbrief query -q "memory chips" --symbols 005930.KS -k 5 --json
  marketbrief query -q "deliveries" --articles ./testdata/articles`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&queryText, "query", "q", "", "search query (required)")
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of results (default from config)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output as JSON")
	queryCmd.Flags().StringVar(&querySymbols, "symbols", "", "comma-separated ticker symbols (default: extracted from query)")
	queryCmd.Flags().StringVar(&queryArticles, "articles", "", "load articles from a local directory instead of fetching news")
	queryCmd.MarkFlagRequired("query")
}

func runQuery(cmd *cobra.Command, args []string) error {
	topK := cfg.Retrieve.TopK
	if queryTopK > 0 {
		topK = queryTopK
	}

	var results []domain.ScoredResult

	if queryArticles != "" {
		src := news.NewFileSource(cfg.News.Includes, log)
		articles, err := src.Load(queryArticles)
		if err != nil {
			return fmt.Errorf("failed to load articles: %w", err)
		}
		corpus := docstore.NewCorpus(articles)
		results = retriever.NewOverlapRanker().Retrieve(corpus, queryText, topK)
	} else {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.close()

		req := usecase.Request{Query: queryText, TopK: topK}
		if querySymbols != "" {
			req.Symbols = symbols.Parse(querySymbols)
		}
		res, err := app.uc.RetrieveContext(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("retrieve failed: %w", err)
		}
		results = res.Context
	}

	if queryJSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	fmt.Printf("Found %d results for: %s\n\n", len(results), queryText)
	for i, r := range results {
		text := r.Text
		if len(text) > 500 {
			text = text[:500] + "..."
		}
		fmt.Printf("--- [%d] (score: %d) ---\n%s\n\n", i+1, r.Score, text)
	}
	return nil
}
