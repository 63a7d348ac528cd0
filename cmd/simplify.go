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
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/striderun/strider/geo/simplify"
	"github.com/striderun/strider/params"
)

var optMaxPoints int
var optTolerance float64

// simplifyCmd represents the simplify command
var simplifyCmd = &cobra.Command{
	Use:   "simplify",
	Short: "Simplify a route for storage or rendering",
	Long: `

Points are decoded as JSON lines from stdin (or --input) and reduced to
at most --max-points while preserving shape (Douglas-Peucker, with a
uniform-stride fallback). Simplified points are written as JSON lines to
stdout.

Examples:

  zcat run.json.gz | strider simplify --max-points 500 > simple.ndjson
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

		cfg := *params.DefaultSimplificationConfig
		cfg.MaxPoints = optMaxPoints
		cfg.Tolerance = optTolerance

		simplified := simplify.Route(route, &cfg)
		slog.Info("Simplified route",
			"in", humanize.Comma(int64(len(route))),
			"out", humanize.Comma(int64(len(simplified))))

		enc := json.NewEncoder(os.Stdout)
		for _, tp := range simplified {
			if err := enc.Encode(tp); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(simplifyCmd)
	simplifyCmd.Flags().StringVar(&optInputPath, "input", "", "read points from a file instead of stdin")
	simplifyCmd.Flags().IntVar(&optMaxPoints, "max-points", params.DefaultSimplificationConfig.MaxPoints, "maximum points in the simplified route")
	simplifyCmd.Flags().Float64Var(&optTolerance, "tolerance", params.DefaultSimplificationConfig.Tolerance, "Douglas-Peucker tolerance, degrees")
	simplifyCmd.Flags().DurationVar(&optMeterInterval, "meter", 10*time.Second, "throughput logging interval")
}
