package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	// Version is set during build
	Version = "dev"

	// BuildDate is set during build
	BuildDate = "unknown"
)

// newRootCmd assembles the command tree. Commands are built per call so
// flag state never leaks between runs.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "slidecast",
		Short: "Turn plain-text outlines into slide decks and videos",
		Long: `slidecast converts a plain-text presentation outline into a structured
document, renders it as a self-contained HTML slide deck and can record
the deck as a video.

Example:
  slidecast serve talk.md
  slidecast build talk.md --out-dir dist
  slidecast capture talk.md -o talk.mp4 --timing 8,5,5`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build Date: ` + BuildDate + `
`)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default: global config plus ./slidecast.toml)")

	rootCmd.AddCommand(
		newParseCmd(),
		newFmtCmd(),
		newRenderCmd(),
		newBuildCmd(),
		newCaptureCmd(),
		newServeCmd(),
		newExportCmd(),
		newThemesCmd(),
		newConfigCmd(),
	)

	return rootCmd
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
