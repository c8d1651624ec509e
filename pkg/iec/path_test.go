package iec

import (
	"errors"
	"slices"
	"testing"
)

func TestPathToRoot(t *testing.T) {
	tests := []struct {
		frame Frame
		want  []Frame
	}{
		{FixedReference, []Frame{FixedReference}},
		{Gantry, []Frame{Gantry, FixedReference}},
		{WedgeFilter, []Frame{WedgeFilter, Collimator, Gantry, FixedReference}},
		{RAS, []Frame{RAS, Patient, TableTop, TableTopEccentricRotation, PatientSupportRotation, FixedReference}},
		{PatientImageRegularGrid, []Frame{
			PatientImageRegularGrid, DICOM, Patient, TableTop,
			TableTopEccentricRotation, PatientSupportRotation, FixedReference,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.frame.String(), func(t *testing.T) {
			got, err := PathToRoot(tt.frame)
			if err != nil {
				t.Fatalf("PathToRoot: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("PathToRoot = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPathFromRootIsReversed(t *testing.T) {
	up, err := PathToRoot(Patient)
	if err != nil {
		t.Fatal(err)
	}
	down, err := PathFromRoot(Patient)
	if err != nil {
		t.Fatal(err)
	}
	if len(up) != len(down) {
		t.Fatalf("lengths differ: %d vs %d", len(up), len(down))
	}
	for i := range up {
		if up[i] != down[len(down)-1-i] {
			t.Errorf("down path is not the reverse of up path: %v vs %v", up, down)
			break
		}
	}
	if down[0] != Root {
		t.Errorf("PathFromRoot must start at the root, got %v", down[0])
	}
}

func TestPathToRootUnknownFrame(t *testing.T) {
	if _, err := PathToRoot(Frame(99)); !errors.Is(err, ErrUnknownFrame) {
		t.Errorf("PathToRoot(99) error = %v, want ErrUnknownFrame", err)
	}
	if _, err := PathFromRoot(Frame(-1)); !errors.Is(err, ErrUnknownFrame) {
		t.Errorf("PathFromRoot(-1) error = %v, want ErrUnknownFrame", err)
	}
}
