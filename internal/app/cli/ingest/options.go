package ingest

import (
	"catalog-app/internal/imaging"

	"github.com/spf13/afero"
)

var opts = &options{}

type options struct {
	Output    string
	MaxWidth  int
	Quality   int
	MaxPixels int
	Raw       bool
}

// fs is swapped for an in-memory filesystem in tests.
var fs = afero.NewOsFs()

func init() {
	flags := Command.Flags()
	flags.StringVarP(&opts.Output, "output", "o", "",
		"Write the result to this file instead of standard output.")
	flags.IntVar(&opts.MaxWidth, "max-width", imaging.DefaultMaxWidth,
		"Images wider than this are scaled down proportionally.")
	flags.IntVar(&opts.Quality, "quality", imaging.DefaultQuality,
		"JPEG quality, 1-100.")
	flags.IntVar(&opts.MaxPixels, "max-pixels", imaging.DefaultMaxPixels,
		"Reject images whose header declares more pixels than this.")
	flags.BoolVar(&opts.Raw, "raw", false,
		"Write the JPEG bytes instead of the data URL.")
}
