package chronicle

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrBadDayCount is returned by CreateExport when the lookback window
// is not a positive number of days.
var ErrBadDayCount = errors.New("chronicle: days must be a positive integer")

// CreateExportRequest describes a new export job. The exported window
// is the last Days days of log data, ending at the time of the call.
type CreateExportRequest struct {
	// Days is the lookback window. Must be positive.
	Days int
	// GCSBucket is the destination bucket path (e.g. "gs://my-bucket").
	GCSBucket string
	// LogTypes restricts the export to the given short log type labels
	// (e.g. "OKTA", "WINEVTLOG"). Empty means all log types.
	LogTypes []string
}

// createExportBody is the wire form of a create request.
type createExportBody struct {
	StartTime       string   `json:"startTime"`
	EndTime         string   `json:"endTime"`
	GCSBucket       string   `json:"gcsBucket"`
	IncludeLogTypes []string `json:"includeLogTypes,omitempty"`
}

// CreateExport creates a new data export job and returns it in its
// initial stage. It fails before issuing any request if Days is not
// positive.
func (c *Client) CreateExport(ctx context.Context, req CreateExportRequest) (*DataExport, error) {
	if req.Days <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBadDayCount, req.Days)
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -req.Days)

	body := createExportBody{
		StartTime: start.Format(time.RFC3339),
		EndTime:   end.Format(time.RFC3339),
		GCSBucket: req.GCSBucket,
	}
	for _, lt := range req.LogTypes {
		body.IncludeLogTypes = append(body.IncludeLogTypes, c.inst.LogTypeName(lt))
	}

	return doRequest[DataExport](ctx, c, http.MethodPost, c.inst.Path()+"/dataExports", body)
}

// GetExport fetches the current state of an export job. id may be a
// short ID or a full resource name; it is normalized before the call.
func (c *Client) GetExport(ctx context.Context, id string) (*DataExport, error) {
	name, err := c.inst.ExportName(id)
	if err != nil {
		return nil, err
	}
	return doRequest[DataExport](ctx, c, http.MethodGet, name, nil)
}

// listExportsResponse is the wire form of a list response.
type listExportsResponse struct {
	DataExports   []DataExport `json:"dataExports"`
	NextPageToken string       `json:"nextPageToken,omitempty"`
}

// ListExports returns one page of recent export jobs, most recent
// first as the API orders them. Only the first page is fetched; jobs
// beyond it are not iterated.
func (c *Client) ListExports(ctx context.Context) ([]DataExport, error) {
	resp, err := doRequestWithQuery[listExportsResponse](ctx, c, http.MethodGet,
		c.inst.Path()+"/dataExports", map[string]string{"pageSize": "100"})
	if err != nil {
		return nil, err
	}
	return resp.DataExports, nil
}

// CancelExport requests cancellation of an in-progress export job and
// returns the job's state as observed immediately afterwards. The
// acknowledgement is not a guarantee of an immediate stop: the job may
// keep reporting PROCESSING for a few polls before settling to
// CANCELLED.
func (c *Client) CancelExport(ctx context.Context, id string) (*DataExport, error) {
	name, err := c.inst.ExportName(id)
	if err != nil {
		return nil, err
	}
	if _, err := doRequest[struct{}](ctx, c, http.MethodPost, name+":cancel", nil); err != nil {
		return nil, err
	}
	return doRequest[DataExport](ctx, c, http.MethodGet, name, nil)
}

// fetchServiceAccountResponse tolerates both spellings the API has
// used for the email field.
type fetchServiceAccountResponse struct {
	ServiceAccountEmail string `json:"serviceAccountEmail"`
	Email               string `json:"email"`
}

// FetchServiceAccount returns the managed service account that writes
// exported logs into the destination bucket. The operator must grant
// it write access (Storage Object Admin) on the bucket out-of-band.
func (c *Client) FetchServiceAccount(ctx context.Context) (string, error) {
	resp, err := doRequest[fetchServiceAccountResponse](ctx, c, http.MethodGet,
		c.inst.Path()+"/dataExports:fetchServiceAccountForDataExport", nil)
	if err != nil {
		return "", err
	}
	if resp.ServiceAccountEmail != "" {
		return resp.ServiceAccountEmail, nil
	}
	return resp.Email, nil
}
