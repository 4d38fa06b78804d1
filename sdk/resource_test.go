package chronicle_test

import (
	"errors"
	"testing"

	chronicle "github.com/c-mac49/secops-export/sdk"
)

var inst = chronicle.Instance{
	Project:  "my-project",
	Location: "us",
	ID:       "my-instance",
}

const canonical = "projects/my-project/locations/us/instances/my-instance/dataExports/f0015a77"

func TestExportName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{
			name: "short ID",
			in:   "f0015a77",
			want: canonical,
		},
		{
			name: "canonical path is unchanged",
			in:   canonical,
			want: canonical,
		},
		{
			name: "version prefix stripped",
			in:   "v1alpha/" + canonical,
			want: canonical,
		},
		{
			name: "wrong project repaired",
			in:   "projects/other-project/locations/eu/instances/other-instance/dataExports/f0015a77",
			want: canonical,
		},
		{
			name:    "missing instances segment",
			in:      "projects/my-project/locations/us/dataExports/f0015a77",
			wantErr: true,
		},
		{
			name:    "extra trailing segment",
			in:      canonical + "/extra",
			wantErr: true,
		},
		{
			name:    "wrong collection",
			in:      "projects/my-project/locations/us/instances/my-instance/logTypes/OKTA",
			wantErr: true,
		},
		{
			name:    "custom verb suffix is not a job ID",
			in:      canonical + ":cancel",
			wantErr: true,
		},
		{
			name:    "empty",
			in:      "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := inst.ExportName(tt.in)
			if tt.wantErr {
				if !errors.Is(err, chronicle.ErrBadExportID) {
					t.Fatalf("expected ErrBadExportID, got %v (name %q)", err, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExportName(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ExportName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExportName_Idempotent(t *testing.T) {
	first, err := inst.ExportName("f0015a77")
	if err != nil {
		t.Fatal(err)
	}
	second, err := inst.ExportName(first)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("normalization not idempotent: %q then %q", first, second)
	}
}

func TestShortID(t *testing.T) {
	e := &chronicle.DataExport{Name: canonical}
	if got := e.ShortID(); got != "f0015a77" {
		t.Errorf("ShortID() = %q, want %q", got, "f0015a77")
	}
}

func TestStageTerminal(t *testing.T) {
	terminal := []chronicle.Stage{
		chronicle.StageFinishedSuccess,
		chronicle.StageFinishedFailure,
		chronicle.StageCancelled,
	}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("expected %s to be terminal", s)
		}
	}
	active := []chronicle.Stage{
		chronicle.StageInQueue,
		chronicle.StagePending,
		chronicle.StageProcessing,
		chronicle.Stage("SOME_FUTURE_STAGE"),
	}
	for _, s := range active {
		if s.Terminal() {
			t.Errorf("expected %s to be non-terminal", s)
		}
	}
}
