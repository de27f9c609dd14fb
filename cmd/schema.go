package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mdrahmanz/curator/schema"
	"github.com/mdrahmanz/curator/store"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Manage collection schemas",
	Long: `Manage the schema definitions that drive the studio's forms.

Examples:
  curator schema list
  curator schema show posts
  curator schema infer posts --save
  curator schema save posts posts.yaml --icon 📝`,
}

var schemaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List collections and whether they have a saved schema",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		_, pool, err := openDatabase(ctx)
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}

		schemas := store.NewSchemas(pool)
		names, err := schemas.List(ctx)
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
		if len(names) == 0 {
			fmt.Println("📭 No collections yet")
			return
		}

		green := color.New(color.FgGreen)
		yellow := color.New(color.FgYellow)
		for _, name := range names {
			def, err := schemas.Get(ctx, name)
			switch {
			case err == nil:
				green.Printf("✅ %s", name)
				fmt.Printf("  (%d fields", len(def.Fields))
				if def.Icon != "" {
					fmt.Printf(", %s", def.Icon)
				}
				fmt.Println(")")
			case errors.Is(err, store.ErrNotFound):
				yellow.Printf("⚠️  %s", name)
				fmt.Println("  (no schema saved)")
			default:
				fmt.Println("❌", err)
				os.Exit(1)
			}
		}
	},
}

var schemaShowCmd = &cobra.Command{
	Use:   "show <collection>",
	Short: "Print a collection's schema definition",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		_, pool, err := openDatabase(ctx)
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}

		def, err := store.NewSchemas(pool).Get(ctx, args[0])
		if errors.Is(err, store.ErrNotFound) {
			fmt.Printf("⚠️  No schema saved for %s\n", args[0])
			os.Exit(1)
		}
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}

		if def.Icon != "" {
			fmt.Printf("Icon: %s\n", def.Icon)
		}
		fmt.Print(def.Source())
	},
}

var schemaInferCmd = &cobra.Command{
	Use:   "infer <collection>",
	Short: "Infer a schema from an existing document",
	Long: `Infer a schema by sampling one document from the collection and
classifying its field values. Prints the definition; --save persists it.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		name := args[0]
		_, pool, err := openDatabase(ctx)
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}

		docs := store.NewDocuments(pool)
		sample, err := docs.Sample(ctx, name)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			fmt.Println("❌", err)
			os.Exit(1)
		}

		def := schema.Synthesize(name, sample)
		if def.IsEmpty() {
			fmt.Printf("⚠️  %s has no documents to infer from\n", name)
		}
		fmt.Print(def.Source())

		if saveInferred && !def.IsEmpty() {
			if err := store.NewSchemas(pool).Put(ctx, name, def.Source(), ""); err != nil {
				fmt.Println("❌", err)
				os.Exit(1)
			}
			fmt.Printf("✅ Saved schema for %s\n", name)
		}
	},
}

var schemaSaveCmd = &cobra.Command{
	Use:   "save <collection> <file>",
	Short: "Save a schema definition from a YAML file",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		name := args[0]

		data, err := os.ReadFile(args[1])
		if err != nil {
			fmt.Println("❌ Failed to read schema file:", err)
			os.Exit(1)
		}
		def := schema.ParseSource(string(data))
		def.Collection = name
		if err := def.Validate(); err != nil {
			fmt.Println("❌ Invalid schema:", err)
			os.Exit(1)
		}
		if def.IsEmpty() {
			fmt.Println("❌ Schema file declares no fields")
			os.Exit(1)
		}

		_, pool, err := openDatabase(ctx)
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
		if err := store.NewSchemas(pool).Put(ctx, name, def.Source(), schemaIcon); err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
		fmt.Printf("✅ Saved schema for %s (%d fields)\n", name, len(def.Fields))
	},
}

var (
	saveInferred bool
	schemaIcon   string
)

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.AddCommand(schemaListCmd)
	schemaCmd.AddCommand(schemaShowCmd)
	schemaCmd.AddCommand(schemaInferCmd)
	schemaCmd.AddCommand(schemaSaveCmd)

	schemaInferCmd.Flags().BoolVar(&saveInferred, "save", false, "Persist the inferred schema")
	schemaSaveCmd.Flags().StringVar(&schemaIcon, "icon", "", "Emoji icon for the collection")
}
