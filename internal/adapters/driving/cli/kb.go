package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/switchboard-labs/switchboard/internal/core/domain"
	"github.com/switchboard-labs/switchboard/internal/core/ports/driving"
	"github.com/switchboard-labs/switchboard/internal/seed"
)

var kbCmd = &cobra.Command{
	Use:   "kb",
	Short: "Manage the knowledge base",
	Long:  `Add, list, view, delete, and search knowledge-base documents.`,
}

var (
	kbAddTitle    string
	kbAddCategory string
	kbAddTags     []string
	kbAddFile     string
)

var kbAddCmd = &cobra.Command{
	Use:   "add [content]",
	Short: "Add a document",
	Long: `Add a document to the knowledge base. Content is taken from the
argument, or from a file with --file. The document is chunked, embedded,
and indexed immediately.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runKBAdd,
}

var kbListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	RunE:  runKBList,
}

var kbGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Print a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runKBGet,
}

var kbDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document and its index entries",
	Args:  cobra.ExactArgs(1),
	RunE:  runKBDelete,
}

var (
	kbSearchLimit int
	kbSearchJSON  bool
)

var kbSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the built-in knowledge base",
	Long: `Load the built-in support documents into the knowledge base. Skipped
when the store already holds documents.`,
	RunE: runKBSeed,
}

var kbSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the knowledge base",
	Long: `Performs vector search over all indexed chunks and prints the best
matches with their source documents.`,
	Args: cobra.ExactArgs(1),
	RunE: runKBSearch,
}

func init() {
	kbAddCmd.Flags().StringVarP(&kbAddTitle, "title", "t", "", "document title (required)")
	kbAddCmd.Flags().StringVarP(&kbAddCategory, "category", "c", "", "document category")
	kbAddCmd.Flags().StringSliceVar(&kbAddTags, "tags", nil, "comma-separated tags")
	kbAddCmd.Flags().StringVarP(&kbAddFile, "file", "f", "", "read content from file")

	kbSearchCmd.Flags().IntVarP(&kbSearchLimit, "limit", "n", 3, "maximum number of results")
	kbSearchCmd.Flags().BoolVar(&kbSearchJSON, "json", false, "output results as JSON")

	kbCmd.AddCommand(kbAddCmd)
	kbCmd.AddCommand(kbListCmd)
	kbCmd.AddCommand(kbGetCmd)
	kbCmd.AddCommand(kbDeleteCmd)
	kbCmd.AddCommand(kbSeedCmd)
	kbCmd.AddCommand(kbSearchCmd)
	rootCmd.AddCommand(kbCmd)
}

func runKBAdd(cmd *cobra.Command, args []string) error {
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	content := ""
	if len(args) == 1 {
		content = args[0]
	}
	if kbAddFile != "" {
		data, err := os.ReadFile(kbAddFile)
		if err != nil {
			return fmt.Errorf("read %s: %w", kbAddFile, err)
		}
		content = string(data)
	}

	doc, err := knowledgeService.AddDocument(cmd.Context(), driving.DocumentInput{
		Title:    kbAddTitle,
		Category: kbAddCategory,
		Tags:     kbAddTags,
		Content:  content,
	})
	if err != nil {
		return fmt.Errorf("add document: %w", err)
	}

	cmd.Printf("Added %s (%s)\n", doc.ID, doc.Title)
	return nil
}

func runKBList(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	docs, err := knowledgeService.ListDocuments(cmd.Context())
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents.")
		return nil
	}

	for i := range docs {
		line := fmt.Sprintf("  %s  %s", docs[i].ID, docs[i].Title)
		if docs[i].Category != "" {
			line += fmt.Sprintf(" [%s]", docs[i].Category)
		}
		cmd.Println(line)
	}
	cmd.Printf("\n%d document(s)\n", len(docs))
	return nil
}

func runKBGet(cmd *cobra.Command, args []string) error {
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	doc, err := knowledgeService.GetDocument(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("get document: %w", err)
	}

	cmd.Printf("ID:       %s\n", doc.ID)
	cmd.Printf("Title:    %s\n", doc.Title)
	if doc.Category != "" {
		cmd.Printf("Category: %s\n", doc.Category)
	}
	if len(doc.Tags) > 0 {
		cmd.Printf("Tags:     %s\n", strings.Join(doc.Tags, ", "))
	}
	cmd.Println()
	cmd.Println(doc.Content)
	return nil
}

func runKBDelete(cmd *cobra.Command, args []string) error {
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	if err := knowledgeService.DeleteDocument(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	cmd.Printf("Deleted %s\n", args[0])
	return nil
}

func runKBSeed(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	if err := seed.Run(cmd.Context(), knowledgeService); err != nil {
		return fmt.Errorf("seed knowledge base: %w", err)
	}

	docs, err := knowledgeService.ListDocuments(cmd.Context())
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}
	cmd.Printf("Knowledge base holds %d document(s)\n", len(docs))
	return nil
}

func runKBSearch(cmd *cobra.Command, args []string) error {
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	results, err := knowledgeService.Search(cmd.Context(), args[0], kbSearchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if kbSearchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.RetrievalResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.RetrievalResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		title := results[i].DocumentTitle
		if title == "" {
			title = results[i].DocumentID
		}

		cmd.Printf("  [%d] %s (%.2f)\n", i+1, title, results[i].Score)
		if results[i].Category != "" {
			cmd.Printf("      Category: %s\n", results[i].Category)
		}
		cmd.Printf("      %s\n", snippet(results[i].Text, 120))
		cmd.Println()
	}
	return nil
}

// snippet truncates text to max runes on a single line.
func snippet(text string, max int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
