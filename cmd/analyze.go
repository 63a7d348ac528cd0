/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/striderun/strider/cache"
	"github.com/striderun/strider/common"
	"github.com/striderun/strider/geo/pace"
	"github.com/striderun/strider/geo/validate"
	"github.com/striderun/strider/params"
	"github.com/striderun/strider/stream"
	"github.com/striderun/strider/types"
	"github.com/striderun/strider/types/trackpoint"
)

var optInputPath string
var optSkipValidation bool
var optMeterInterval time.Duration

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a route from a stream of points",
	Long: `

Points are decoded from stdin (or --input) as JSON lines, a flat JSON
array, or GeoJSON features, then deduped, optionally validated, and run
through the pace analyzer. The resulting report is written to stdout as
JSON; the validation verdict is logged.

Flags:

  --input        Read points from a file instead of stdin.
  --no-validate  Analyze the raw route without the batch validator.
  --meter        Throughput logging interval for big streams. (Default is 10s.)

Examples:

  zcat run.json.gz | strider analyze
  strider analyze --input run.ndjson --no-validate
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		in := os.Stdin
		if optInputPath != "" {
			f, err := os.Open(optInputPath)
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		route, err := readRoute(ctx, in)
		if err != nil {
			return err
		}

		// Town-level precision on purpose; logs should not pinpoint a
		// runner's doorstep.
		slog.Info("Read route",
			"points", humanize.Comma(int64(len(route))),
			"start.lat", common.DecimalToFixed(route[0].Lat, common.GPSPrecision2),
			"start.long", common.DecimalToFixed(route[0].Lng, common.GPSPrecision2))

		if !optSkipValidation {
			result := validate.Route(route, params.DefaultValidationConfig)
			slog.Info("Validated route",
				"valid", result.IsValid,
				"kept", humanize.Comma(int64(len(result.Points))),
				"removed", result.RemovedCount,
				"quality", result.QualityScore)
			route = result.Points
		}

		report, ok := cache.Report(route)
		if !ok {
			report = pace.Analyze(route, params.DefaultPaceConfig)
			cache.SetReport(route, report)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

// readRoute collects deduped points from the input. Point-per-line JSON
// streams; whole-document shapes (flat arrays, GeoJSON features or
// collections) are slurped and run through the shotgun decoder.
func readRoute(ctx context.Context, in io.Reader) (trackpoint.TrackPoints, error) {
	br := bufio.NewReader(in)
	prefix, _ := br.Peek(512)
	if head := bytes.TrimSpace(prefix); len(head) > 0 &&
		(head[0] == '[' || bytes.Contains(prefix, []byte(`"FeatureCollection"`))) {
		data, err := io.ReadAll(br)
		if err != nil {
			return nil, err
		}
		route, err := types.DecodeTrackPointsShotgun(data)
		if err != nil {
			return nil, err
		}
		return dedupeRoute(route), nil
	}

	meter := stream.NewScanMeter(optMeterInterval)
	defer meter.Stop()

	// Device streams are mostly chronological; batch sorting repairs the
	// occasional out-of-order flush without holding the whole stream.
	dedupe := trackpoint.NewDedupeLRUFunc()
	points := stream.Collect(ctx,
		stream.BatchSort(ctx, params.DefaultBatchSize,
			func(a, b trackpoint.TrackPoint) bool { return a.Time.Before(b.Time) },
			stream.Filter(ctx, func(tp trackpoint.TrackPoint) bool {
				meter.Mark(tp.Time, 0)
				return dedupe(tp)
			}, stream.NDJSON[trackpoint.TrackPoint](ctx, br))))

	if len(points) == 0 {
		return nil, fmt.Errorf("no points decoded")
	}

	route := make(trackpoint.TrackPoints, len(points))
	for i := range points {
		route[i] = &points[i]
	}
	return route, nil
}

func dedupeRoute(route trackpoint.TrackPoints) trackpoint.TrackPoints {
	dedupe := trackpoint.NewDedupeLRUFunc()
	out := make(trackpoint.TrackPoints, 0, len(route))
	for _, tp := range route {
		if dedupe(*tp) {
			out = append(out, tp)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&optInputPath, "input", "", "read points from a file instead of stdin")
	analyzeCmd.Flags().BoolVar(&optSkipValidation, "no-validate", false, "analyze the raw route without the batch validator")
	analyzeCmd.Flags().DurationVar(&optMeterInterval, "meter", 10*time.Second, "throughput logging interval")
}
