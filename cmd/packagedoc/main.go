package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/epubtools/packagedoc/internal/container"
	"github.com/epubtools/packagedoc/internal/content"
	"github.com/epubtools/packagedoc/internal/opf"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "packagedoc",
	Short: "Inspect the package document of an EPUB container",
	Long: `packagedoc parses the package document (OPF) of an EPUB file and
prints its metadata, manifest, reading order and navigation details.`,
	SilenceUsage: true,
}

var infoCmd = &cobra.Command{
	Use:   "info <epub>",
	Short: "Print a summary of the package document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reader, doc, err := openDocument(args[0])
		if err != nil {
			return err
		}
		defer reader.Close()

		fmt.Printf("package document: %s (version %s)\n", reader.PackagePath(), doc.Version)

		fmt.Println("metadata:")
		for _, rec := range doc.Metadata {
			fmt.Printf("  %s: %s\n", rec.Name, rec.Value)
		}

		fmt.Printf("manifest: %d items\n", doc.Manifest.Len())
		for _, id := range doc.Manifest.IDs() {
			item, _ := doc.Manifest.Lookup(id)
			fmt.Printf("  %s  %s (%s)\n", item.ID, item.Href, item.MediaType)
		}

		if nav, ok := doc.NavigationItem(); ok {
			fmt.Printf("navigation: %s (%s)\n", nav.ID, nav.Href)
		} else {
			fmt.Println("navigation: none")
		}

		for _, ref := range doc.Guide {
			fmt.Printf("guide: %s %q -> %s\n", ref.Type, ref.Title, ref.Href)
		}
		return nil
	},
}

var spineCmd = &cobra.Command{
	Use:   "spine <epub>",
	Short: "Print the reading order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scan, _ := cmd.Flags().GetBool("scan")

		reader, doc, err := openDocument(args[0])
		if err != nil {
			return err
		}
		defer reader.Close()

		for _, item := range doc.Spine {
			linear := ""
			if !item.Linear {
				linear = "  [non-linear]"
			}
			fmt.Printf("%3d  %s  %s%s\n", item.Order, item.ID, item.Href, linear)

			if !scan || !strings.Contains(item.MediaType, "html") {
				continue
			}
			data, err := item.Content.Get()
			if err != nil {
				return err
			}
			res, err := content.Scan(item.Href, data)
			if err != nil {
				return err
			}
			for _, css := range res.Stylesheets {
				fmt.Printf("       css: %s\n", css)
			}
			for _, img := range res.Images {
				fmt.Printf("       img: %s\n", img)
			}
		}
		return nil
	},
}

var coverCmd = &cobra.Command{
	Use:   "cover <epub>",
	Short: "Extract the cover image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		thumbWidth, _ := cmd.Flags().GetInt("thumb-width")

		reader, doc, err := openDocument(args[0])
		if err != nil {
			return err
		}
		defer reader.Close()

		cover := doc.DetectCover()
		if cover == nil {
			return fmt.Errorf("no cover image found")
		}
		fmt.Printf("cover: %s (%s, via %s)\n", cover.Href, cover.MediaType, cover.DetectionMethod)
		if output == "" {
			return nil
		}

		item, err := doc.Manifest.Get(cover.ManifestID)
		if err != nil {
			return err
		}
		data, err := item.Content.Get()
		if err != nil {
			return err
		}
		if thumbWidth > 0 {
			data, err = content.Thumbnail(data, thumbWidth)
			if err != nil {
				return err
			}
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("failed to write cover: %w", err)
		}
		fmt.Printf("wrote %s (%d bytes)\n", output, len(data))
		return nil
	},
}

// openDocument opens the container and binds its package document.
func openDocument(name string) (*container.Reader, *opf.Document, error) {
	logger := zap.NewNop()
	if verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			return nil, nil, err
		}
	}

	reader, err := container.Open(name)
	if err != nil {
		return nil, nil, err
	}

	raw, err := reader.ReadFile(reader.PackagePath())
	if err != nil {
		reader.Close()
		return nil, nil, err
	}

	doc, err := opf.Parse(raw, opf.Options{
		Provider: reader.PackageRoot(),
		Logger:   logger,
	})
	if err != nil {
		reader.Close()
		return nil, nil, err
	}
	return reader, doc, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable binder warnings")
	spineCmd.Flags().Bool("scan", false, "Scan XHTML spine items for stylesheet and image references")
	coverCmd.Flags().StringP("output", "o", "", "Write the cover image to a file")
	coverCmd.Flags().Int("thumb-width", 0, "Downscale the extracted cover to at most this width")
	rootCmd.AddCommand(infoCmd, spineCmd, coverCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
