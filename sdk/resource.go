package chronicle

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadExportID is returned when an export identifier can neither be
// used as-is nor repaired into a canonical resource name.
var ErrBadExportID = errors.New("chronicle: malformed data export ID")

// Instance identifies one Chronicle instance. Every resource name this
// client touches lives under its path.
type Instance struct {
	Project  string
	Location string
	ID       string
}

// Path returns the instance's resource path:
// projects/{project}/locations/{location}/instances/{instance}.
func (i Instance) Path() string {
	return fmt.Sprintf("projects/%s/locations/%s/instances/%s", i.Project, i.Location, i.ID)
}

// LogTypeName returns the full resource name for a short log type
// label (e.g. "OKTA").
func (i Instance) LogTypeName(logType string) string {
	return i.Path() + "/logTypes/" + logType
}

// ExportName normalizes a user-supplied export identifier into the
// canonical resource name the API requires.
//
// A short ID is combined with the instance path. A canonical name for
// this instance is returned unchanged. A canonical-shaped name whose
// leading segments point at the wrong project, location, or instance is
// repaired best-effort: the configured segments are substituted and the
// trailing job ID kept. A leading "v1alpha/" prefix is tolerated. Any
// other shape fails with ErrBadExportID.
func (i Instance) ExportName(id string) (string, error) {
	id = strings.Trim(id, "/")
	id = strings.TrimPrefix(id, apiVersion+"/")
	if id == "" {
		return "", ErrBadExportID
	}

	if !strings.Contains(id, "/") {
		return i.Path() + "/dataExports/" + id, nil
	}

	seg := strings.Split(id, "/")
	if len(seg) != 8 ||
		seg[0] != "projects" || seg[2] != "locations" ||
		seg[4] != "instances" || seg[6] != "dataExports" {
		return "", fmt.Errorf("%w: %q", ErrBadExportID, id)
	}
	exportID := seg[7]
	if exportID == "" || strings.Contains(exportID, ":") {
		return "", fmt.Errorf("%w: %q", ErrBadExportID, id)
	}
	return i.Path() + "/dataExports/" + exportID, nil
}
