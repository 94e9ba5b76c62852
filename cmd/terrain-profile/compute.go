package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dpup/terrain-profile/internal/lib/profile"
	"github.com/dpup/terrain-profile/internal/lib/tracks"
)

type computeOptions struct {
	format   string
	partGaps bool
	output   string
}

func computeCmd() *cobra.Command {
	opts := &computeOptions{}

	cmd := &cobra.Command{
		Use:   "compute <file>",
		Short: "Compute the elevation profile of a track file",
		Long: `Compute reads a GeoJSON, GPX or encoded polyline track and prints its
elevation statistics. Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompute(cmd.InOrStdin(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "input format: geojson, gpx or polyline (default: from file extension)")
	cmd.Flags().BoolVar(&opts.partGaps, "part-gaps", false, "do not bridge the gap between parts of a multi-part track")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "output format: text, json, geojson, kml or polyline")

	return cmd
}

func runCompute(stdin io.Reader, out io.Writer, path string, opts *computeOptions) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	format := tracks.DetectFormat(path)
	if opts.format != "" {
		if format, err = tracks.ParseFormat(opts.format); err != nil {
			return err
		}
	}

	geometry, err := tracks.Parse(format, data)
	if err != nil {
		return fmt.Errorf("failed to read track: %w", err)
	}

	p, err := profile.NewCalculator(profile.WithPartGaps(opts.partGaps)).Calculate(geometry)
	if err != nil {
		return fmt.Errorf("failed to compute profile: %w", err)
	}

	switch opts.output {
	case "text":
		return writeText(out, p)
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case "geojson":
		encoded, err := tracks.EncodeGeoJSON(p)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(encoded))
		return err
	case "polyline":
		encoded, err := tracks.EncodePolyline(p)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, encoded)
		return err
	case "kml":
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		encoded, err := tracks.EncodeKML(p, name)
		if err != nil {
			return err
		}
		_, err = out.Write(encoded)
		return err
	default:
		return fmt.Errorf("unknown output format %q", opts.output)
	}
}

func writeText(out io.Writer, p *profile.Profile) error {
	s := p.Statistics
	_, err := fmt.Fprintf(out, `Vertices:       %s
Length:         %s km
Oblique length: %s km
Ascend:         %s m
Descend:        %s m
Min elevation:  %s m
Max elevation:  %s m
`,
		humanize.Comma(int64(len(p.Vertices))),
		humanize.FormatFloat("#,###.###", p.TotalDistanceKm()),
		humanize.FormatFloat("#,###.###", s.RealLength/1000),
		humanize.FormatFloat("#,###.#", s.Ascend),
		humanize.FormatFloat("#,###.#", s.Descend),
		humanize.FormatFloat("#,###.#", s.MinElevation),
		humanize.FormatFloat("#,###.#", s.MaxElevation),
	)
	return err
}
