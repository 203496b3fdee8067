package viewer

import (
	"fmt"
	"image/png"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/k4g4/png-viewer/logging"
	"github.com/k4g4/png-viewer/pngdecoder"
)

var ViewerCommand = &cobra.Command{
	Use:   "png-viewer",
	Short: "Decode PNG images from scratch and render them",
}

func init() {
	logLevel := ViewerCommand.PersistentFlags().String("log-level", "info", "zerolog level (trace, debug, info, warn, error)")
	ViewerCommand.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level, err := zerolog.ParseLevel(*logLevel)
		if err != nil {
			level = zerolog.InfoLevel
		}
		logging.Init(level)
	}

	renderCommand := &cobra.Command{
		Use:   "render <file>",
		Short: "Decode a PNG and write the raster to a file",
		Args:  cobra.ExactArgs(1),
	}
	out := renderCommand.Flags().StringP("out", "o", "out.png", "output path (.png or .ppm)")
	zoomFactor := renderCommand.Flags().Float64("zoom", 1, "zoom factor: 1, 1.5, 2, 2.5, 3, 3.5 or 4")
	renderCommand.Run = func(cmd *cobra.Command, args []string) {
		zoom, ok := ZoomFromFactor(*zoomFactor)
		if !ok {
			logging.Fatal().Float64("zoom", *zoomFactor).Msg("zoom factor is not on the ladder")
		}

		state, err := Load(State(NewEmpty()), args[0])
		if err != nil {
			logging.Fatal().Err(err).Str("path", args[0]).Msg("decode failed")
		}
		loaded, ok := state.(Loaded)
		if !ok {
			logging.Fatal().Msg("decode produced no image")
		}
		logging.Info().
			Str("path", loaded.Path).
			Int("width", loaded.Image.Bounds().Dx()).
			Int("height", loaded.Image.Bounds().Dy()).
			Msg("decoded")

		f, err := os.Create(*out)
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to create output file")
		}
		defer f.Close()
		scaled := ScaleImage(loaded.Image, zoom)
		if strings.HasSuffix(*out, ".ppm") {
			err = WritePPM(f, scaled)
		} else {
			err = png.Encode(f, scaled)
		}
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to write output file")
		}
	}

	chunksCommand := &cobra.Command{
		Use:   "chunks <file>",
		Short: "List the chunk framing of a PNG",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			data, err := os.ReadFile(args[0])
			if err != nil {
				logging.Fatal().Err(err).Msg("failed to read file")
			}
			r, err := pngdecoder.NewReader(data)
			if err != nil {
				logging.Fatal().Err(err).Msg("not a PNG")
			}
			for {
				offset := r.Offset()
				chunk, err := r.Next()
				if err != nil {
					logging.Fatal().Err(err).Int("offset", offset).Msg("chunk parse failed")
				}
				if chunk == nil {
					return
				}
				switch c := chunk.(type) {
				case pngdecoder.Header:
					fmt.Printf("%08x IHDR width=%d height=%d bit_depth=%d color_type=%s interlace=%s\n",
						offset, c.Width, c.Height, c.BitDepth, c.ColorType, c.Interlace)
				case pngdecoder.Palette:
					fmt.Printf("%08x PLTE entries=%d\n", offset, len(c.Entries))
				case pngdecoder.ImageData:
					fmt.Printf("%08x IDAT length=%d\n", offset, len(c.Data))
				case pngdecoder.End:
					fmt.Printf("%08x IEND\n", offset)
				case pngdecoder.Unknown:
					fmt.Printf("%08x %s (ancillary, skipped)\n", offset, c.Tag)
				}
			}
		},
	}

	termCommand := &cobra.Command{
		Use:   "term <file>",
		Short: "Decode a PNG straight onto the terminal",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			data, err := os.ReadFile(args[0])
			if err != nil {
				logging.Fatal().Err(err).Msg("failed to read file")
			}
			surface := NewTermSurface(os.Stdout)
			if err := pngdecoder.Decode(data, surface); err != nil {
				logging.Fatal().Err(err).Msg("decode failed")
			}
			surface.Finish()
		},
	}

	ViewerCommand.AddCommand(renderCommand, chunksCommand, termCommand)
}
