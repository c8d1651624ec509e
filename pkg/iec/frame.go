// Package iec models the IEC 61217 coordinate frames of an external-beam
// radiotherapy machine and computes affine transforms between them.
//
// The standard arranges the mechanical stages of a treatment machine
// (gantry, collimator, patient support, table top, patient and imaging
// frames) as a tree rooted at the fixed reference frame. Each tree edge
// carries one elementary child-to-parent transform driven by a joint
// parameter (a rotation angle or a translation offset). The transform
// between two arbitrary frames is the composition of the elementary
// transforms along both frames' paths to the root.
//
// # Usage
//
//	m := iec.NewMachine()
//	m.SetGantry(90, 0)
//	m.SetPatientSupportRotation(45)
//	t, err := m.TransformBetween(iec.Patient, iec.Gantry, false)
//
// A Machine is a self-contained device model: two Machine values never
// share state, so independent devices can be modelled side by side.
// Machine is not safe for concurrent use without external
// synchronization.
package iec

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for catalog and composition failures.
var (
	// ErrUnknownFrame is returned when a frame identifier is outside the
	// declared set.
	ErrUnknownFrame = errors.New("unknown frame")

	// ErrUnreachableFrame is returned by path resolution when a frame has
	// no parent chain ending at the fixed reference frame. It indicates a
	// malformed catalog, not caller error.
	ErrUnreachableFrame = errors.New("frame not reachable from fixed reference")

	// ErrUnknownEdge is returned when no elementary transform is declared
	// for a frame pair.
	ErrUnknownEdge = errors.New("no elementary transform between frames")
)

// Frame identifies one IEC 61217 coordinate system.
//
// The set is fixed: RAS and the DICOM patient frames are not part of the
// standard but are carried for imaging and visualization interoperability,
// matching common treatment planning usage.
type Frame int

const (
	// RAS is the patient frame in RAS orientation (visualization).
	RAS Frame = iota
	// FixedReference is the room-fixed machine frame, the hierarchy root.
	FixedReference
	// Gantry rotates about the fixed reference.
	Gantry
	// Collimator is the beam limiting device frame on the gantry.
	Collimator
	// LeftImagingPanel is the left kV imaging panel on the gantry.
	LeftImagingPanel
	// RightImagingPanel is the right kV imaging panel on the gantry.
	RightImagingPanel
	// PatientSupportRotation is the rotation stage of the patient support.
	PatientSupportRotation
	// PatientSupport is the patient support column.
	PatientSupport
	// TableTopEccentricRotation is the eccentric rotation stage under the
	// table top.
	TableTopEccentricRotation
	// TableTop is the table top surface.
	TableTop
	// FlatPanel is the MV flat panel imager on the gantry.
	FlatPanel
	// WedgeFilter is the wedge filter frame on the collimator.
	WedgeFilter
	// Patient is the IEC patient frame.
	Patient
	// DICOM is the patient frame in DICOM LPS orientation.
	DICOM
	// PatientImageRegularGrid is the voxel grid of the patient image.
	PatientImageRegularGrid

	frameCount
)

// Root is the single frame without a parent.
const Root = FixedReference

var frameNames = [frameCount]string{
	RAS:                       "Ras",
	FixedReference:            "FixedReference",
	Gantry:                    "Gantry",
	Collimator:                "Collimator",
	LeftImagingPanel:          "LeftImagingPanel",
	RightImagingPanel:         "RightImagingPanel",
	PatientSupportRotation:    "PatientSupportRotation",
	PatientSupport:            "PatientSupport",
	TableTopEccentricRotation: "TableTopEccentricRotation",
	TableTop:                  "TableTop",
	FlatPanel:                 "FlatPanel",
	WedgeFilter:               "WedgeFilter",
	Patient:                   "Patient",
	DICOM:                     "DICOM",
	PatientImageRegularGrid:   "PatientImageRegularGrid",
}

// String returns the frame's display name.
func (f Frame) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Frame(%d)", int(f))
	}
	return frameNames[f]
}

// Valid reports whether f is one of the declared frames.
func (f Frame) Valid() bool {
	return f >= 0 && f < frameCount
}

// ParseFrame resolves a display name to a frame, ignoring case.
// Returns ErrUnknownFrame for names outside the declared set.
func ParseFrame(name string) (Frame, error) {
	for f, n := range frameNames {
		if strings.EqualFold(n, name) {
			return Frame(f), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownFrame)
}

// Frames returns all declared frames in identifier order.
func Frames() []Frame {
	out := make([]Frame, frameCount)
	for i := range out {
		out[i] = Frame(i)
	}
	return out
}
