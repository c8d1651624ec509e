package iec

import (
	"errors"
	"slices"
	"testing"
)

func TestHierarchyIsATree(t *testing.T) {
	// Exactly one root, every other frame has exactly one parent and is
	// reachable from the root.
	seen := map[Frame]int{}
	for parent, children := range hierarchy {
		if !parent.Valid() {
			t.Fatalf("invalid parent %v in hierarchy", parent)
		}
		for _, c := range children {
			seen[c]++
		}
	}
	for _, f := range Frames() {
		if f == Root {
			if seen[f] != 0 {
				t.Errorf("root %v has %d parents, want 0", f, seen[f])
			}
			continue
		}
		if seen[f] != 1 {
			t.Errorf("frame %v has %d parents, want 1", f, seen[f])
		}
		if _, err := PathToRoot(f); err != nil {
			t.Errorf("frame %v not reachable from root: %v", f, err)
		}
	}
}

func TestChildren(t *testing.T) {
	tests := []struct {
		parent Frame
		want   []Frame
	}{
		{FixedReference, []Frame{Gantry, PatientSupportRotation}},
		{Gantry, []Frame{Collimator, LeftImagingPanel, RightImagingPanel, FlatPanel}},
		{Collimator, []Frame{WedgeFilter}},
		{PatientSupportRotation, []Frame{PatientSupport, TableTopEccentricRotation}},
		{TableTopEccentricRotation, []Frame{TableTop}},
		{TableTop, []Frame{Patient}},
		{Patient, []Frame{DICOM, RAS}},
		{DICOM, []Frame{PatientImageRegularGrid}},
		{WedgeFilter, nil},
		{RAS, nil},
	}
	for _, tt := range tests {
		if got := Children(tt.parent); !slices.Equal(got, tt.want) {
			t.Errorf("Children(%v) = %v, want %v", tt.parent, got, tt.want)
		}
	}
}

func TestParent(t *testing.T) {
	if _, ok := Parent(Root); ok {
		t.Error("root must not have a parent")
	}
	if p, ok := Parent(RAS); !ok || p != Patient {
		t.Errorf("Parent(RAS) = %v, %v, want Patient, true", p, ok)
	}
	if p, ok := Parent(WedgeFilter); !ok || p != Collimator {
		t.Errorf("Parent(WedgeFilter) = %v, %v, want Collimator, true", p, ok)
	}
}

func TestEdgesContainsNonTreePair(t *testing.T) {
	edges := Edges()
	if len(edges) != 15 {
		t.Fatalf("len(Edges()) = %d, want 15", len(edges))
	}
	// The fixed-reference-to-Ras offset and the Ras orientation edge are
	// declared but not part of the tree.
	if !slices.Contains(edges, Edge{FixedReference, RAS}) {
		t.Error("missing FixedReferenceToRas edge")
	}
	if !slices.Contains(edges, Edge{RAS, Patient}) {
		t.Error("missing RasToPatient edge")
	}
	// Returned slice is a copy.
	edges[0] = Edge{Gantry, Gantry}
	if Edges()[0] != (Edge{FixedReference, RAS}) {
		t.Error("Edges() must return a copy")
	}
}

func TestTransformNameBetween(t *testing.T) {
	tests := []struct {
		from, to Frame
		want     string
	}{
		{Gantry, FixedReference, "GantryToFixedReference"},
		{FixedReference, RAS, "FixedReferenceToRas"},
		{PatientImageRegularGrid, DICOM, "PatientImageRegularGridToDICOM"},
	}
	for _, tt := range tests {
		if got := TransformNameBetween(tt.from, tt.to); got != tt.want {
			t.Errorf("TransformNameBetween(%v, %v) = %q, want %q", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestParseFrame(t *testing.T) {
	for _, f := range Frames() {
		got, err := ParseFrame(f.String())
		if err != nil || got != f {
			t.Errorf("ParseFrame(%q) = %v, %v, want %v", f.String(), got, err, f)
		}
	}
	if got, err := ParseFrame("tabletop"); err != nil || got != TableTop {
		t.Errorf("ParseFrame is not case-insensitive: %v, %v", got, err)
	}
	if _, err := ParseFrame("Isocenter"); !errors.Is(err, ErrUnknownFrame) {
		t.Errorf("ParseFrame(unknown) error = %v, want ErrUnknownFrame", err)
	}
}
