// Package commands implements the CLI commands for chapterize.
package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chapterkit/chapterize/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "chapterize",
	Short: "Normalize HTML headings for e-book chapter assembly",
	Long: `Chapterize rewrites the heading structure of HTML documents so each
document becomes exactly one chapter when an e-book build splits
chapters at top-level headings.

It derives a chapter title, demotes every existing heading one level,
and inserts a single h1 with the title at the start of the body.

Examples:
  # Normalize a document to stdout
  chapterize normalize article.html

  # Write to a file with an explicit title
  chapterize normalize article.html -o chapter.html --title "My Chapter"

  # Download pages for offline processing and serve them locally
  chapterize fetch --source hn --limit 50 --urls-out /tmp/urls.txt

  # Serve an existing page directory
  chapterize serve --dir /tmp/chapterize_pages --port 8765`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.chapterize.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().Bool("log-json", false, "log as JSON")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("log-json"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".chapterize")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("CHAPTERIZE")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// initLogger configures logging from the global flags.
func initLogger() {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		JSON:  viper.GetBool("log_json"),
	})
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
