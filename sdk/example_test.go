package chronicle_test

import (
	"context"
	"fmt"
	"log"

	chronicle "github.com/c-mac49/secops-export/sdk"
)

func Example_basicUsage() {
	ctx := context.Background()

	inst := chronicle.Instance{
		Project:  "my-project",
		Location: "us",
		ID:       "d9e8f7a6-1234-5678-9abc-def012345678",
	}
	// Pass an oauth2-authenticated *http.Client via WithHTTPClient in
	// real use; the default client sends no credential.
	client := chronicle.New("https://chronicle.us.googleapis.com", inst)

	// --- Find the service account that writes into your bucket ---
	email, err := client.FetchServiceAccount(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Grant Storage Object Admin to:", email)

	// --- Export the last day of OKTA logs ---
	export, err := client.CreateExport(ctx, chronicle.CreateExportRequest{
		Days:      1,
		GCSBucket: "gs://my-export-bucket",
		LogTypes:  []string{"OKTA"},
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Created:", export.ShortID())

	// --- Check on it later, by short ID or full resource name ---
	export, err = client.GetExport(ctx, export.ShortID())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Stage:", export.Status.Stage)

	// --- Stop it if it is no longer needed ---
	export, err = client.CancelExport(ctx, export.ShortID())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Stage after cancel:", export.Status.Stage)
}
