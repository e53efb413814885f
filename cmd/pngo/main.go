// Command pngo decodes PNG files from the command line. It is the
// "external collaborator" spec §1 describes: file I/O, CLI flags, and
// on-disk PPM output all live here, never inside the pngo or deflate
// packages themselves.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"pngo/ppm"
	"pngo/pngo"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	root := &cobra.Command{
		Use:   "pngo",
		Short: "Decode PNG files with a from-scratch DEFLATE/PNG pipeline",
	}
	root.AddCommand(newDecodeCommand())

	if err := root.Execute(); err != nil {
		log.Fatal().Err(err).Msg("pngo failed")
	}
}

func newDecodeCommand() *cobra.Command {
	var (
		ppmPath     string
		strictOrder bool
		logLevel    string
	)

	cmd := &cobra.Command{
		Use:   "decode <file.png>",
		Short: "Decode a PNG file and report its dimensions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if level, err := zerolog.ParseLevel(logLevel); err == nil {
				zerolog.SetGlobalLevel(level)
			}

			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			var opts []pngo.Option
			if strictOrder {
				opts = append(opts, pngo.WithStrictOrdering())
			}

			img, err := pngo.Decode(data, opts...)
			if err != nil {
				log.Error().Err(err).Str("file", path).Msg("decode failed")
				return err
			}

			log.Info().
				Str("file", path).
				Uint32("width", img.Width).
				Uint32("height", img.Height).
				Int("bytes", len(img.Data)).
				Msg("decoded")

			if ppmPath != "" {
				if err := ppm.Write(ppmPath, img); err != nil {
					return err
				}
				log.Info().Str("ppm", ppmPath).Msg("wrote PPM")
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&ppmPath, "ppm", "", "write the decoded image to this PPM path")
	cmd.Flags().BoolVar(&strictOrder, "strict-order", false, "enforce full PNG chunk ordering invariants")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: trace,debug,info,warn,error")

	return cmd
}
