// secops-export drives Chronicle Data Export jobs from the command line:
// create an export of recent log data into a GCS bucket, track it to a
// terminal state, list recent jobs, cancel one, or fetch the managed
// service account that must be granted write access to the bucket.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

func main() {
	// An interrupt only stops the local poll loop; the remote job
	// keeps running and can be tracked again later.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:  "secops-export",
		Usage: "Chronicle Data Export jobs: create, track, list, cancel",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a data export job and track it to completion",
				Flags: []cli.Flag{
					envFlag(),
					&cli.IntFlag{
						Name:  "days",
						Usage: "number of days back to export",
						Value: 1,
					},
					&cli.StringSliceFlag{
						Name:  "log-types",
						Usage: "log types to include (e.g. OKTA, WINEVTLOG); all when omitted",
					},
				},
				Action: createAction,
			},
			{
				Name:      "track",
				Usage:     "Track an existing export job until it settles",
				ArgsUsage: "<export-id-or-name>",
				Flags:     []cli.Flag{envFlag()},
				Action:    trackAction,
			},
			{
				Name:   "list",
				Usage:  "List recent export jobs",
				Flags:  []cli.Flag{envFlag()},
				Action: listAction,
			},
			{
				Name:      "cancel",
				Usage:     "Cancel an in-progress export job",
				ArgsUsage: "<export-id-or-name>",
				Flags:     []cli.Flag{envFlag()},
				Action:    cancelAction,
			},
			{
				Name:   "fetch-sa",
				Usage:  "Fetch the service account that writes into the export bucket",
				Flags:  []cli.Flag{envFlag()},
				Action: fetchSAAction,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

// envFlag returns a fresh --env flag; flag values carry parse state,
// so each command gets its own instance.
func envFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "env",
		Usage: "path to the .env configuration file",
		Value: ".env",
	}
}
