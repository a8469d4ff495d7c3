package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/chapterkit/chapterize/internal/logger"
	"github.com/chapterkit/chapterize/pkg/fetch"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a saved page directory over local HTTP",
	Long: `Serve starts a static file server over a page directory previously
filled by 'chapterize fetch', so saved pages can be reprocessed without
network access. The server runs until interrupted.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	flags := serveCmd.Flags()
	flags.String("dir", "/tmp/chapterize_pages", "page directory to serve")
	flags.Int("port", 8765, "local HTTP server port")
}

func runServe(cmd *cobra.Command, args []string) error {
	initLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	dir, _ := cmd.Flags().GetString("dir")
	port, _ := cmd.Flags().GetInt("port")

	server := fetch.NewServer(dir, port)
	if _, err := server.Start(); err != nil {
		return err
	}

	<-ctx.Done()
	logger.Info("shutting down page server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return server.Shutdown(shutdownCtx)
}
