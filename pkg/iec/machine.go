package iec

import (
	"fmt"
	"io"

	"github.com/beamframe/beamframe/pkg/affine"
)

// dicomToPatient is the fixed orientation change from the DICOM LPS
// patient frame to the IEC patient frame: a -90 degree rotation about
// the X axis.
var dicomToPatient = [16]float64{
	1, 0, 0, 0,
	0, 0, 1, 0,
	0, -1, 0, 0,
	0, 0, 0, 1,
}

// Machine holds the mutable elementary transform of every declared edge
// and composes them into transforms between arbitrary frames.
//
// All edges start out as the identity except DICOMToPatient, which is a
// fixed orientation constant. Joint state is changed only through the
// Set methods; each resets its edge and rebuilds it from the given
// parameters, so calls are idempotent and order-independent across
// different edges.
//
// Machine is not safe for concurrent use: a Set call racing a
// TransformBetween call is a data race. Callers sharing a Machine
// across goroutines must serialize access externally.
type Machine struct {
	transforms map[Edge]affine.Matrix
	cache      *pairCache
}

// NewMachine returns a machine with every joint in its default pose.
func NewMachine() *Machine {
	m := &Machine{
		transforms: make(map[Edge]affine.Matrix, len(declaredEdges)),
		cache:      newPairCache(),
	}
	for _, e := range declaredEdges {
		m.transforms[e] = affine.Identity()
	}
	m.transforms[Edge{DICOM, Patient}] = affine.FromElements(dicomToPatient)
	return m
}

// setEdge replaces one edge's matrix and drops every cached composite
// that was built from it.
func (m *Machine) setEdge(e Edge, t affine.Matrix) {
	m.transforms[e] = t
	m.cache.invalidate(e)
}

// SetGantry updates the gantry-to-fixed-reference transform.
//
// rotationDeg rotates the gantry about the vertical (Y) axis; pitchDeg
// is the DICOM gantry pitch about the X axis, applied before the
// rotation. Pass pitchDeg 0 for a standard coplanar setup.
func (m *Machine) SetGantry(rotationDeg, pitchDeg float64) {
	m.setEdge(Edge{Gantry, FixedReference}, affine.Compose(
		affine.RotationX(pitchDeg),
		affine.RotationY(rotationDeg),
	))
}

// SetCollimator updates the collimator-to-gantry transform: an offset bz
// along the beam (Z) axis followed by the collimator rotation about it.
func (m *Machine) SetCollimator(rotationDeg, bz float64) {
	m.setEdge(Edge{Collimator, Gantry}, affine.Compose(
		affine.Translation(0, 0, bz),
		affine.RotationZ(rotationDeg),
	))
}

// SetWedgeFilter updates the wedge-filter-to-collimator transform: an
// offset wz along the beam axis followed by the wedge rotation about it.
func (m *Machine) SetWedgeFilter(rotationDeg, wz float64) {
	m.setEdge(Edge{WedgeFilter, Collimator}, affine.Compose(
		affine.Translation(0, 0, wz),
		affine.RotationZ(rotationDeg),
	))
}

// SetPatientSupportRotation updates the patient support rotation about
// the vertical (Z) axis of the fixed reference frame.
func (m *Machine) SetPatientSupportRotation(angleDeg float64) {
	m.setEdge(Edge{PatientSupportRotation, FixedReference},
		affine.RotationZ(angleDeg))
}

// SetTableTopEccentricRotation updates the eccentric rotation stage: a
// lateral offset ey along the Y axis followed by the eccentric rotation
// about the Z axis.
func (m *Machine) SetTableTopEccentricRotation(angleDeg, ey float64) {
	m.setEdge(Edge{TableTopEccentricRotation, PatientSupportRotation}, affine.Compose(
		affine.Translation(0, ey, 0),
		affine.RotationZ(angleDeg),
	))
}

// SetTableTop updates the table top pose on the eccentric stage:
// translation by (tx, ty, tz), then pitch about X, then roll about Y.
func (m *Machine) SetTableTop(tx, ty, tz, pitchDeg, rollDeg float64) {
	m.setEdge(Edge{TableTop, TableTopEccentricRotation}, affine.Compose(
		affine.Translation(tx, ty, tz),
		affine.RotationX(pitchDeg),
		affine.RotationY(rollDeg),
	))
}

// SetPatient updates the patient pose on the table top: translation by
// (px, py, pz), then rotations psi about X, phi about Y and theta about
// Z, in that order.
func (m *Machine) SetPatient(px, py, pz, psiDeg, phiDeg, thetaDeg float64) {
	m.setEdge(Edge{Patient, TableTop}, affine.Compose(
		affine.Translation(px, py, pz),
		affine.RotationX(psiDeg),
		affine.RotationY(phiDeg),
		affine.RotationZ(thetaDeg),
	))
}

// SetPatientImageGrid updates the image-grid-to-DICOM transform from
// DICOM image plane geometry.
//
// rowCosine and columnCosine are the image orientation direction
// cosines; the slice direction is their cross product. Columns step by
// columnSpacing along rowCosine, rows by rowSpacing along columnCosine
// and slices by sliceDistance along the slice direction. origin is the
// position of the zeroth voxel in the DICOM patient frame. The matrix
// is built directly rather than from elementary rotations.
func (m *Machine) SetPatientImageGrid(columnSpacing, rowSpacing, sliceDistance float64, origin, rowCosine, columnCosine [3]float64) {
	slice := [3]float64{
		rowCosine[1]*columnCosine[2] - rowCosine[2]*columnCosine[1],
		rowCosine[2]*columnCosine[0] - rowCosine[0]*columnCosine[2],
		rowCosine[0]*columnCosine[1] - rowCosine[1]*columnCosine[0],
	}
	m.setEdge(Edge{PatientImageRegularGrid, DICOM}, affine.FromElements([16]float64{
		rowCosine[0] * columnSpacing, columnCosine[0] * rowSpacing, slice[0] * sliceDistance, origin[0],
		rowCosine[1] * columnSpacing, columnCosine[1] * rowSpacing, slice[1] * sliceDistance, origin[1],
		rowCosine[2] * columnSpacing, columnCosine[2] * rowSpacing, slice[2] * sliceDistance, origin[2],
		0, 0, 0, 1,
	}))
}

// ElementaryTransformBetween returns a copy of the stored matrix for the
// declared edge from->to. Unlike TransformBetween it performs no
// composition: the pair must be declared in exactly this direction, or
// ErrUnknownEdge is returned.
func (m *Machine) ElementaryTransformBetween(from, to Frame) (affine.Matrix, error) {
	t, ok := m.transforms[Edge{from, to}]
	if !ok {
		return affine.Matrix{}, fmt.Errorf("%s: %w", TransformNameBetween(from, to), ErrUnknownEdge)
	}
	return t.Clone(), nil
}

// WriteDump writes every elementary transform to w in registration
// order, for diagnostics.
func (m *Machine) WriteDump(w io.Writer) error {
	for _, e := range declaredEdges {
		if _, err := fmt.Fprintf(w, "%s:\n%s\n", e.Name(), m.transforms[e]); err != nil {
			return err
		}
	}
	return nil
}
