package ingest

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"catalog-app/internal/imaging"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:   "ingest FILE",
	Short: "Run a photo through the image pipeline",
	Long: `This command decodes a local photo, scales it down to the maximum width and re-encodes it as JPEG,
exactly as the upload routes do.

Usage examples:

1. Print the data URL:

	catalog ingest vaso.png

2. Write the JPEG next to the original:

	catalog ingest vaso.png --raw -o vaso.jpg

`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := &imaging.Pipeline{MaxWidth: opts.MaxWidth, Quality: opts.Quality, MaxPixels: opts.MaxPixels}
		asset, err := run(cmd, fs, p, args[0], opts.Output, opts.Raw)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%dx%d, %d bytes\n", asset.Width, asset.Height, asset.Bytes)
		return nil
	},
}

func run(cmd *cobra.Command, fsys afero.Fs, p *imaging.Pipeline, in, out string, raw bool) (imaging.Asset, error) {
	src, err := afero.ReadFile(fsys, in)
	if err != nil {
		return imaging.Asset{}, fmt.Errorf("failed to read %s: %w", in, err)
	}

	asset, err := p.Ingest(cmd.Context(), src)
	if err != nil {
		return imaging.Asset{}, err
	}

	payload := []byte(asset.DataURL)
	if raw {
		payload, err = base64.StdEncoding.DecodeString(strings.TrimPrefix(asset.DataURL, "data:image/jpeg;base64,"))
		if err != nil {
			return imaging.Asset{}, errors.New("pipeline produced an invalid data url")
		}
	}

	if out == "" {
		_, err = cmd.OutOrStdout().Write(payload)
		if err == nil && !raw {
			_, err = io.WriteString(cmd.OutOrStdout(), "\n")
		}
		return asset, err
	}
	if err := afero.WriteFile(fsys, out, payload, 0o644); err != nil {
		return imaging.Asset{}, fmt.Errorf("failed to write %s: %w", out, err)
	}
	return asset, nil
}
