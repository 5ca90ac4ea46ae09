// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/footfall/internal/analysis"
	"github.com/tomtom215/footfall/internal/api"
	"github.com/tomtom215/footfall/internal/category"
	"github.com/tomtom215/footfall/internal/crowd"
	"github.com/tomtom215/footfall/internal/geo"
	"github.com/tomtom215/footfall/internal/logging"
	"github.com/tomtom215/footfall/internal/poi"
	"github.com/tomtom215/footfall/internal/rank"
	"github.com/tomtom215/footfall/internal/resilience"
)

// defaultServerEnv names the server URL variable read when --server is unset.
const defaultServerEnv = "FOOTFALL_SERVER"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "footfallctl",
		Short:         "Crowd-aware business siting tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newClassifyCmd(),
		newProfileCmd(),
		newRankCmd(),
		newFeasibilityCmd(),
	)
	return root
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <people-count>",
		Short: "Print the crowd band of a people count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("people count %q: %w", args[0], err)
			}
			band, err := crowd.Classify(n)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), band)
			return err
		},
	}
}

func newProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile <category>",
		Short: "Print the estimated hourly crowd profile of a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := category.Normalize(args[0])
			return writeJSON(cmd.OutOrStdout(), crowd.BuildProfile(c))
		},
	}
}

type rankFlags struct {
	lat, lon  float64
	business  string
	intensity string
	poisFile  string
}

func newRankCmd() *cobra.Command {
	var f rankFlags
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank sites for a business type from a saved Overpass response",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRank(cmd.OutOrStdout(), f)
		},
	}
	cmd.Flags().Float64Var(&f.lat, "lat", 0, "anchor latitude")
	cmd.Flags().Float64Var(&f.lon, "lon", 0, "anchor longitude")
	cmd.Flags().StringVar(&f.business, "business", "", "business type, for example \"coffee shop\"")
	cmd.Flags().StringVar(&f.intensity, "intensity", "", "target crowd band: low, medium or high (default: dominant)")
	cmd.Flags().StringVar(&f.poisFile, "pois", "", "Overpass JSON response or element array")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	_ = cmd.MarkFlagRequired("business")
	_ = cmd.MarkFlagRequired("pois")
	return cmd
}

func runRank(w io.Writer, f rankFlags) error {
	anchor, err := geo.NewPoint(f.lat, f.lon)
	if err != nil {
		return err
	}
	band, err := crowd.ParseBand(f.intensity)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(f.poisFile)
	if err != nil {
		return fmt.Errorf("read pois: %w", err)
	}
	pois, err := poi.DecodeElements(data)
	if err != nil {
		return err
	}

	result, err := analysis.NewLocal(poi.Static(pois), nil, nil).FromPOIs(anchor, pois)
	if err != nil {
		return err
	}
	ranker, err := rank.NewRanker(nil, logging.Logger())
	if err != nil {
		return err
	}
	ranked, err := ranker.Rank(rank.Request{
		Anchor:    anchor,
		Business:  f.business,
		Intensity: band,
		POIs:      pois,
		Zones:     result.Zones,
		Allowed:   result.AllowedFor(band),
	})
	if err != nil {
		return err
	}
	return writeJSON(w, ranked)
}

type feasibilityFlags struct {
	lat, lon float64
	business string
	server   string
	timeout  time.Duration
}

func newFeasibilityCmd() *cobra.Command {
	var f feasibilityFlags
	cmd := &cobra.Command{
		Use:   "feasibility",
		Short: "Ask a running server whether a business fits a location",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if f.server == "" {
				f.server = os.Getenv(defaultServerEnv)
			}
			if f.server == "" {
				return fmt.Errorf("--server or %s is required", defaultServerEnv)
			}
			return runFeasibility(cmd.Context(), cmd.OutOrStdout(), f)
		},
	}
	cmd.Flags().Float64Var(&f.lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&f.lon, "lon", 0, "longitude")
	cmd.Flags().StringVar(&f.business, "business", "", "business type")
	cmd.Flags().StringVar(&f.server, "server", "", "server base URL (default: $"+defaultServerEnv+")")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 60*time.Second, "request timeout")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	_ = cmd.MarkFlagRequired("business")
	return cmd
}

func runFeasibility(ctx context.Context, w io.Writer, f feasibilityFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	req := api.FeasibilityRequest{
		LocationRequest: api.LocationRequest{Latitude: &f.lat, Longitude: &f.lon},
		BusinessType:    f.business,
	}
	var resp api.APIResponse
	url := strings.TrimRight(f.server, "/") + "/api/v1/feasibility"
	if err := resilience.PostJSON(ctx, &http.Client{Timeout: f.timeout}, url, req, &resp); err != nil {
		return fmt.Errorf("feasibility: %w", err)
	}
	if !resp.Success && resp.Error != nil {
		return fmt.Errorf("feasibility: %s: %s", resp.Error.Code, resp.Error.Message)
	}
	return writeJSON(w, resp.Data)
}
