// Command pptxraster rasterizes every slide of a .pptx presentation to PNG
// or JPEG images.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	pptxraster "github.com/ooxml-go/pptxraster"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		outDir      string
		width       int
		format      string
		dpi         float64
		logLevel    string
		jpegQuality int
	)

	cmd := &cobra.Command{
		Use:   "pptxraster <file.pptx>",
		Short: "Render every slide of a .pptx file to raster images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pptxraster.DefaultRenderOptions()
			if width > 0 {
				opts.Width = width
			}
			if dpi > 0 {
				opts.DPI = dpi
			}
			if jpegQuality > 0 {
				opts.JPEGQuality = jpegQuality
			}
			switch format {
			case "jpeg", "jpg":
				opts.Format = pptxraster.ImageFormatJPEG
			case "png", "":
				opts.Format = pptxraster.ImageFormatPNG
			default:
				return fmt.Errorf("unknown format %q (want png or jpeg)", format)
			}
			level, err := parseLogLevel(logLevel)
			if err != nil {
				return err
			}
			opts.LogLevel = level

			result, err := pptxraster.Render(args[0], opts)
			if err != nil {
				return err
			}

			if outDir != "" {
				if err := os.MkdirAll(outDir, 0750); err != nil {
					return fmt.Errorf("create output directory: %w", err)
				}
			}

			ext := "png"
			if opts.Format == pptxraster.ImageFormatJPEG {
				ext = "jpg"
			}
			for _, slide := range result.Slides {
				if !slide.Success {
					fmt.Fprintf(os.Stderr, "slide %d: %s\n", slide.SlideNumber, slide.ErrorMessage)
					continue
				}
				name := fmt.Sprintf("slide_%03d.%s", slide.SlideNumber, ext)
				if outDir != "" {
					name = filepath.Join(outDir, name)
				}
				if err := os.WriteFile(name, slide.ImageData, 0644); err != nil {
					return fmt.Errorf("write %s: %w", name, err)
				}
			}

			fmt.Printf("rendered %d/%d slides\n", result.SuccessfulSlides, result.TotalSlides)
			if result.SuccessfulSlides < result.TotalSlides {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory to write rendered images into")
	cmd.Flags().IntVarP(&width, "width", "w", 960, "output image width in pixels")
	cmd.Flags().StringVarP(&format, "format", "f", "png", "output format: png or jpeg")
	cmd.Flags().Float64Var(&dpi, "dpi", 96, "rendering DPI for font sizing")
	cmd.Flags().IntVar(&jpegQuality, "jpeg-quality", 90, "JPEG quality (1-100), only used with --format jpeg")
	cmd.Flags().StringVar(&logLevel, "log-level", "off", "off, error, warn, info, or debug")

	return cmd
}

func parseLogLevel(s string) (pptxraster.LogLevel, error) {
	switch s {
	case "", "off":
		return pptxraster.LogLevelOff, nil
	case "error":
		return pptxraster.LogLevelError, nil
	case "warn":
		return pptxraster.LogLevelWarn, nil
	case "info":
		return pptxraster.LogLevelInfo, nil
	case "debug":
		return pptxraster.LogLevelDebug, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
