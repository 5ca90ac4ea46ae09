// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

// Command footfallctl runs the siting pipeline offline against a saved
// Overpass response, and queries a running Footfall server.
//
//	footfallctl classify 320
//	footfallctl profile cafe
//	footfallctl rank --lat 12.9716 --lon 77.5946 --business cafe --pois overpass.json
//	footfallctl feasibility --lat 12.9716 --lon 77.5946 --business cafe --server http://localhost:8080
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/tomtom215/footfall/internal/logging"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: reading .env:", err)
	}

	// Logs go to stderr so stdout stays machine readable
	logCfg := logging.DefaultConfig()
	logCfg.Level = "warn"
	logCfg.Format = "console"
	if lvl := os.Getenv("LOG_LEVEL"); logging.ValidLevel(lvl) {
		logCfg.Level = lvl
	}
	logging.Init(logCfg)

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
