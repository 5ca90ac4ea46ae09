// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

/*
Package supervisor provides process supervision for Footfall using suture v4.

The long-running parts of the server are organized in a small tree:

	RootSupervisor ("footfall")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   ├── SweeperService ("feasibility-sweeper")
	│   └── SweeperService ("session-sweeper")
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's failure decay and backoff.
Supervisor events are logged through the sutureslog adapter, which takes
a *slog.Logger; logging.NewSlogLogger bridges it to zerolog.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddMaintenanceService(services.NewSweeperService("feasibility-sweeper", cache, time.Minute))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

See package services for the service implementations.
*/
package supervisor
