package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	httpserver "github.com/fredcamaral/slidecast/internal/adapters/primary/http"
	"github.com/fredcamaral/slidecast/internal/adapters/secondary/browser"
	"github.com/fredcamaral/slidecast/internal/adapters/secondary/watcher"
	"github.com/fredcamaral/slidecast/internal/domain/services"
)

func newServeCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve <outline|document>",
		Short: "Preview a deck in the browser with live reload",
		Long: `Start a local HTTP server showing the rendered deck. Files next to the
outline (images) are served too. With --watch (the default) the deck is
rebuilt and browsers reload whenever the source changes.

Example:
  slidecast serve talk.md
  slidecast serve talk.md --port 8080 --open`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolving source path: %w", err)
			}

			a, err := newApp(cmd, source,
				"port", "host", "open",
				"theme", "theme-dir", "transition", "inline-markdown")
			if err != nil {
				return err
			}
			defer a.Close()

			return runServe(cmd.Context(), a, source, watch, cmd)
		},
	}

	cmd.Flags().IntP("port", "p", 0, "Port to serve on (overrides config)")
	cmd.Flags().String("host", "", "Host to bind to (overrides config)")
	cmd.Flags().Bool("open", false, "Open the deck in a browser (overrides config)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", true, "Rebuild and reload when the source changes")
	addRenderFlags(cmd)

	return cmd
}

// runServe serves source until ctx is cancelled
func runServe(ctx context.Context, a *app, source string, watch bool, cmd *cobra.Command) error {
	svc, err := a.deckService(nil)
	if err != nil {
		return err
	}

	deck, err := svc.BuildDeck(ctx, source, watch)
	if err != nil {
		return err
	}

	server := httpserver.NewServer(&a.config.Server, filepath.Dir(source), &a.config.Logging)
	server.SetDeck(deck)

	if err := server.Start(ctx, a.config.Server.Port, a.config.Server.Host); err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.GetShutdownTimeout())
		defer cancel()
		if err := server.Stop(shutdownCtx); err != nil {
			a.logger.Error("Error during shutdown", "error", err)
		}
	}()

	if watch {
		fileWatcher := watcher.NewPollingWatcher(a.config.Watcher.GetInterval(), a.config.Watcher.GetDebounce(), a.logger)
		liveReload := services.NewLiveReloadService(fileWatcher, server, svc, a.logger)
		if err := liveReload.Start(ctx, source); err != nil {
			return err
		}
		defer func() { _ = liveReload.Stop() }()
	}

	url := serverURL(server.Addr())
	fmt.Fprintf(cmd.OutOrStdout(), "Serving %s (%d slides) at %s\n", filepath.Base(source), deck.Document.SlideCount(), url)
	fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")

	if a.config.Browser.AutoOpen {
		openBrowser(a, url)
	}

	<-ctx.Done()
	fmt.Fprintln(cmd.OutOrStdout(), "Shutting down server...")
	return nil
}

func serverURL(addr string) string {
	return "http://" + addr
}

func openBrowser(a *app, url string) {
	launcher := browser.NewLauncher(a.config.Browser.Browser, a.logger)
	if err := launcher.Launch(url); err != nil {
		a.logger.Warn("Failed to open browser", "url", url, "error", err)
	}
}
