package chronicle

import (
	"strings"
	"time"
)

// Stage is the server-reported lifecycle stage of a data export job.
type Stage string

// Stage values as reported in dataExportStatus.stage. A job moves
// IN_QUEUE/PENDING → PROCESSING → one of the three terminal stages.
// CANCELLED may also be observed directly when a cancel request races
// with completion.
const (
	StageInQueue         Stage = "IN_QUEUE"
	StagePending         Stage = "PENDING"
	StageProcessing      Stage = "PROCESSING"
	StageFinishedSuccess Stage = "FINISHED_SUCCESS"
	StageFinishedFailure Stage = "FINISHED_FAILURE"
	StageCancelled       Stage = "CANCELLED"
)

// Terminal reports whether no further stage transition can occur.
func (s Stage) Terminal() bool {
	switch s {
	case StageFinishedSuccess, StageFinishedFailure, StageCancelled:
		return true
	}
	return false
}

// ExportStatus is the status block of a data export job.
type ExportStatus struct {
	Stage Stage  `json:"stage"`
	Error string `json:"error,omitempty"`
}

// DataExport is a server-side export job. All fields are owned by the
// remote service; this is an ephemeral local copy fetched per request.
type DataExport struct {
	// Name is the full resource path:
	// projects/{project}/locations/{location}/instances/{instance}/dataExports/{id}
	Name            string       `json:"name"`
	StartTime       time.Time    `json:"startTime"`
	EndTime         time.Time    `json:"endTime"`
	GCSBucket       string       `json:"gcsBucket,omitempty"`
	IncludeLogTypes []string     `json:"includeLogTypes,omitempty"`
	Status          ExportStatus `json:"dataExportStatus"`
	CreateTime      time.Time    `json:"createTime"`
}

// ShortID extracts the bare job ID from the full resource name.
func (e *DataExport) ShortID() string {
	return e.Name[strings.LastIndex(e.Name, "/")+1:]
}
