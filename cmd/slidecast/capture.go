package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/slidecast/internal/domain/entities"
	"github.com/fredcamaral/slidecast/internal/domain/services"
)

func newCaptureCmd() *cobra.Command {
	var (
		outPath string
		timing  string
	)

	cmd := &cobra.Command{
		Use:   "capture <deck.html|outline|document>",
		Short: "Record a deck as a video",
		Long: `Capture every slide of a deck and encode the frames into a video with
ffmpeg. Outlines and documents are rendered first. Each slide stays on
screen for its --timing entry, its duration in the deck, or the
configured default, in that order.

Example:
  slidecast capture talk.md -o talk.mp4
  slidecast capture deck.html --fps 24 --timing 8,,4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := args[0]

			timings, err := parseTimings(timing)
			if err != nil {
				return err
			}

			a, err := newApp(cmd, source,
				"fps", "width", "height", "slide-seconds",
				"theme", "theme-dir", "transition", "inline-markdown")
			if err != nil {
				return err
			}
			defer a.Close()

			driver, err := a.captureDriver()
			if err != nil {
				return err
			}
			a.logger.Debug("Capture backend selected", "backend", driver.Backend())

			svc, err := a.deckService(driver)
			if err != nil {
				return err
			}

			if outPath == "" {
				outPath = replaceExt(source, ".mp4")
			}

			result, err := svc.Capture(cmd.Context(), services.CaptureRequest{
				Source:  source,
				Output:  outPath,
				Timings: timings,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Captured %d slides (%d frames, %s) to %s\n",
				result.Slides, result.Frames, result.Duration, result.Output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Video file (default: source with .mp4)")
	cmd.Flags().StringVar(&timing, "timing", "", "Per-slide seconds, comma separated; empty entries keep the deck timing")
	cmd.Flags().Int("fps", 0, "Frames per second (overrides config)")
	cmd.Flags().Int("width", 0, "Frame width in pixels (overrides config)")
	cmd.Flags().Int("height", 0, "Frame height in pixels (overrides config)")
	cmd.Flags().Float64("slide-seconds", 0, "Default seconds per slide (overrides config)")
	addRenderFlags(cmd)

	return cmd
}

// parseTimings reads "5,3,,2" into per-slide seconds. Empty entries are 0,
// which keeps the slide's own timing.
func parseTimings(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	timings := make([]float64, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		seconds, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid timing %q for slide %d: %w", part, i+1, err)
		}
		if !entities.ValidSlideSeconds(seconds) {
			return nil, fmt.Errorf("invalid timing %q for slide %d: must be between 0 and %g seconds", part, i+1, entities.MaxSlideSeconds)
		}
		timings[i] = seconds
	}
	return timings, nil
}
