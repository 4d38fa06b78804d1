package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/c-mac49/secops-export/internal/config"
	"github.com/c-mac49/secops-export/internal/cred"
	"github.com/c-mac49/secops-export/internal/tracker"
	chronicle "github.com/c-mac49/secops-export/sdk"
)

// app bundles the configured collaborators every command needs.
type app struct {
	cfg     *config.Config
	client  *chronicle.Client
	tracker *tracker.Tracker
}

func newApp(ctx context.Context, cmd *cli.Command) (*app, error) {
	cfg, err := config.Load(cmd.String("env"))
	if err != nil {
		return nil, err
	}

	hc, err := cred.HTTPClient(ctx, cfg.ServiceAccountFile, cfg.Scope, cfg.RequestTimeout)
	if err != nil {
		return nil, err
	}

	inst := chronicle.Instance{
		Project:  cfg.ProjectID,
		Location: cfg.Location,
		ID:       cfg.InstanceID,
	}
	client := chronicle.New(cfg.BaseURL, inst, chronicle.WithHTTPClient(hc))

	return &app{
		cfg:    cfg,
		client: client,
		tracker: tracker.New(client, inst,
			tracker.WithInterval(cfg.PollInterval),
			tracker.WithMaxWait(cfg.PollMaxWait)),
	}, nil
}

func createAction(ctx context.Context, cmd *cli.Command) error {
	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	if a.cfg.GCSBucket == "" {
		return errors.New("CHRONICLE_DATA_BUCKET must be set to create an export")
	}

	days := int(cmd.Int("days"))
	logTypes := cmd.StringSlice("log-types")

	fmt.Printf("Creating data export: last %d day(s) into %s\n", days, a.cfg.GCSBucket)
	if len(logTypes) > 0 {
		fmt.Printf("Log types: %v\n", logTypes)
	}

	export, err := a.client.CreateExport(ctx, chronicle.CreateExportRequest{
		Days:      days,
		GCSBucket: a.cfg.GCSBucket,
		LogTypes:  logTypes,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created export %s\n", export.ShortID())

	return a.trackExport(ctx, export.Name)
}

func trackAction(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Args().First()
	if id == "" {
		return errors.New("track requires an export ID or resource name")
	}
	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	return a.trackExport(ctx, id)
}

func (a *app) trackExport(ctx context.Context, id string) error {
	fmt.Println("Tracking export; interrupt to stop (the job keeps running server-side).")

	export, err := a.tracker.Track(ctx, id, func(e *chronicle.DataExport) {
		fmt.Printf("[%s] %s\n", time.Now().Format("15:04:05"), e.Status.Stage)
	})
	if err != nil {
		return err
	}

	switch export.Status.Stage {
	case chronicle.StageFinishedSuccess:
		fmt.Println("Export finished successfully.")
	case chronicle.StageCancelled:
		fmt.Println("Export was cancelled.")
	default:
		fmt.Printf("Export failed: %s\n", export.Status.Error)
	}
	return nil
}

func listAction(ctx context.Context, cmd *cli.Command) error {
	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}

	exports, err := a.client.ListExports(ctx)
	if err != nil {
		return err
	}
	if len(exports) == 0 {
		fmt.Println("No data exports found.")
		return nil
	}

	fmt.Printf("%-38s  %-18s  %s\n", "ID", "STAGE", "CREATED")
	for i := range exports {
		e := &exports[i]
		fmt.Printf("%-38s  %-18s  %s\n",
			e.ShortID(), e.Status.Stage, e.CreateTime.Format(time.RFC3339))
	}
	return nil
}

func cancelAction(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Args().First()
	if id == "" {
		return errors.New("cancel requires an export ID or resource name")
	}
	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}

	export, err := a.client.CancelExport(ctx, id)
	if err != nil {
		return err
	}
	// Cancellation is acknowledged, not instantaneous; report whatever
	// stage the job is in now.
	fmt.Printf("Cancel requested for %s (current stage: %s)\n", export.ShortID(), export.Status.Stage)
	return nil
}

func fetchSAAction(ctx context.Context, cmd *cli.Command) error {
	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}

	email, err := a.client.FetchServiceAccount(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Chronicle service account: %s\n", email)
	fmt.Printf("Grant %q the Storage Object Admin role on your destination bucket.\n", email)
	return nil
}
