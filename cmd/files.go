package cmd

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/spf13/cobra"

	"github.com/mdrahmanz/curator/blob"
	"github.com/mdrahmanz/curator/config"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Manage uploaded files",
	Long: `Manage the local blob store behind the studio's Files page.

Examples:
  curator files list
  curator files upload ./logo.png
  curator files rm logo.png
  curator files url logo.png --ttl 24h`,
}

func openBlobs() *blob.Store {
	cfg := config.Load()
	return blob.NewStore(cfg.BlobDir, cfg.SignedURLKey)
}

var filesListCmd = &cobra.Command{
	Use:   "list [prefix]",
	Short: "List stored files",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		prefix := ""
		if len(args) == 1 {
			prefix = args[0]
		}
		objects, err := openBlobs().List(prefix)
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
		if len(objects) == 0 {
			fmt.Println("📭 No files stored")
			return
		}
		for _, o := range objects {
			fmt.Printf("%s  (%d bytes, %s)\n", o.Path, o.Size, o.ModTime.Format("2006-01-02 15:04"))
		}
	},
}

var filesUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a local file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(args[0])
		if err != nil {
			fmt.Println("❌ Failed to open file:", err)
			os.Exit(1)
		}
		defer f.Close()

		name := path.Base(args[0])
		if err := openBlobs().Upload(name, f); err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
		fmt.Printf("✅ Uploaded %s\n", name)
	},
}

var filesRmCmd = &cobra.Command{
	Use:   "rm <path>",
	Short: "Delete a stored file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := openBlobs().Delete(args[0]); err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
		fmt.Printf("✅ Deleted %s\n", args[0])
	},
}

var filesURLCmd = &cobra.Command{
	Use:   "url <path>",
	Short: "Print a signed download link",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		url, err := openBlobs().SignedURL(args[0], fileURLTTL)
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
		fmt.Println(url)
	},
}

var fileURLTTL time.Duration

func init() {
	rootCmd.AddCommand(filesCmd)
	filesCmd.AddCommand(filesListCmd)
	filesCmd.AddCommand(filesUploadCmd)
	filesCmd.AddCommand(filesRmCmd)
	filesCmd.AddCommand(filesURLCmd)

	filesURLCmd.Flags().DurationVar(&fileURLTTL, "ttl", time.Hour, "Link validity")
}
