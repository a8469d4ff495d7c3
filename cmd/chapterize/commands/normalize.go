package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chapterkit/chapterize/internal/logger"
	"github.com/chapterkit/chapterize/internal/output"
	"github.com/chapterkit/chapterize/pkg/normalize"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <input.html>",
	Short: "Normalize a document's headings into chapter form",
	Long: `Normalize rewrites one HTML document so it becomes a single chapter
when an e-book build splits chapters at top-level headings.

The chapter title is taken from --title if given, otherwise from the
document's <title> tag (with any trailing site-name suffix removed),
otherwise from the first <h1>, otherwise "Untitled". Every existing
heading is demoted one level (h6 stays h6) and a single h1 with the
title is inserted at the start of the body.

The input is read as text; bytes that are not valid UTF-8 are replaced
rather than rejected.

Examples:
  chapterize normalize article.html > chapter.html
  chapterize normalize article.html -o chapter.html
  chapterize normalize article.html --title "Override Title"`,
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)

	flags := normalizeCmd.Flags()
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("title", "", "override the chapter title")
	flags.String("separators", normalize.DefaultSeparators, "title/site-name separator characters")

	_ = viper.BindPFlag("separators", flags.Lookup("separators"))
}

func runNormalize(cmd *cobra.Command, args []string) error {
	initLogger()

	inputPath := args[0]
	outputPath, _ := cmd.Flags().GetString("output")
	titleOverride, _ := cmd.Flags().GetString("title")

	n, err := normalize.New(normalize.Config{
		Separators: viper.GetString("separators"),
	})
	if err != nil {
		return err
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}
	// Permissive decoding: undecodable bytes are replaced, never fatal.
	doc := strings.ToValidUTF8(string(data), "�")

	logger.Debug("normalizing document",
		"input", inputPath,
		"bytes", len(doc),
		"title_override", titleOverride)

	result := n.Normalize(doc, titleOverride)

	dest, err := output.Destination(outputPath)
	if err != nil {
		return err
	}
	if _, err := dest.Write([]byte(result)); err != nil {
		dest.Close()
		return fmt.Errorf("writing output: %w", err)
	}
	return dest.Close()
}
