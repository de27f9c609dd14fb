package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mdrahmanz/curator/document"
	"github.com/mdrahmanz/curator/store"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Work with documents",
	Long: `Read and write documents in a collection.

Examples:
  curator docs list posts
  curator docs get posts 4f1c...
  curator docs put posts post.json
  curator docs delete posts 4f1c...
  curator docs count posts`,
}

var docsListCmd = &cobra.Command{
	Use:   "list <collection>",
	Short: "List documents in a collection",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		_, pool, err := openDatabase(ctx)
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}

		docs, err := store.NewDocuments(pool).List(ctx, args[0], docsLimit)
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
		if len(docs) == 0 {
			fmt.Printf("📭 No documents in %s\n", args[0])
			return
		}

		cyan := color.New(color.FgCyan)
		for _, doc := range docs {
			cyan.Printf("%s", doc.ID)
			fmt.Printf("  (%d fields)\n", doc.Len())
		}
	},
}

var docsGetCmd = &cobra.Command{
	Use:   "get <collection> <id>",
	Short: "Print one document as JSON",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		_, pool, err := openDatabase(ctx)
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}

		doc, err := store.NewDocuments(pool).Get(ctx, args[0], args[1])
		if errors.Is(err, store.ErrNotFound) {
			fmt.Printf("⚠️  Document %s/%s not found\n", args[0], args[1])
			os.Exit(1)
		}
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}

		data, err := doc.EncodeFields()
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	},
}

var docsPutCmd = &cobra.Command{
	Use:   "put <collection> <file.json>",
	Short: "Create or update a document from a JSON file",
	Long: `Create or update a document from a JSON object file. Without --id a
fresh id is assigned; with --id an existing document is replaced.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		name := args[0]
		if !store.ValidCollectionName(name) {
			fmt.Printf("❌ Invalid collection name %q\n", name)
			os.Exit(1)
		}

		data, err := os.ReadFile(args[1])
		if err != nil {
			fmt.Println("❌ Failed to read document file:", err)
			os.Exit(1)
		}
		doc, err := document.DecodeFields(docID, data)
		if err != nil {
			fmt.Println("❌ Invalid JSON document:", err)
			os.Exit(1)
		}

		_, pool, err := openDatabase(ctx)
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
		id, err := store.NewDocuments(pool).Put(ctx, name, doc)
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
		fmt.Printf("✅ Wrote %s/%s\n", name, id)
	},
}

var docsDeleteCmd = &cobra.Command{
	Use:   "delete <collection> <id>",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		_, pool, err := openDatabase(ctx)
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
		if err := store.NewDocuments(pool).Delete(ctx, args[0], args[1]); err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
		fmt.Printf("✅ Deleted %s/%s\n", args[0], args[1])
	},
}

var docsCountCmd = &cobra.Command{
	Use:   "count <collection>",
	Short: "Count documents in a collection",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		_, pool, err := openDatabase(ctx)
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
		count, err := store.NewDocuments(pool).Count(ctx, args[0])
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
		fmt.Printf("📊 %s: %d documents\n", args[0], count)
	},
}

var (
	docsLimit int
	docID     string
)

func init() {
	rootCmd.AddCommand(docsCmd)
	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsGetCmd)
	docsCmd.AddCommand(docsPutCmd)
	docsCmd.AddCommand(docsDeleteCmd)
	docsCmd.AddCommand(docsCountCmd)

	docsListCmd.Flags().IntVar(&docsLimit, "limit", 50, "Maximum documents to list")
	docsPutCmd.Flags().StringVar(&docID, "id", "", "Document id (assigned when empty)")
}
