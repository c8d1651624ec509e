// Package setup describes the joint parameters of a treatment machine
// as a plain data structure that can be loaded from TOML, exchanged as
// JSON and applied to an iec.Machine in one step.
//
// A Parameters value holds the inputs of every updatable elementary
// transform: transforms themselves are never stored, only the
// parameters they are rebuilt from. Named parameter sets can be kept in
// a Store (in-memory or Redis) so several processes can share machine
// setups.
package setup

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/beamframe/beamframe/pkg/iec"
)

// Gantry holds the gantry stage parameters.
type Gantry struct {
	RotationDeg float64 `toml:"rotation_deg" json:"rotation_deg"`
	PitchDeg    float64 `toml:"pitch_deg" json:"pitch_deg"`
}

// Collimator holds the collimator stage parameters.
type Collimator struct {
	RotationDeg float64 `toml:"rotation_deg" json:"rotation_deg"`
	OffsetZ     float64 `toml:"offset_z" json:"offset_z"`
}

// WedgeFilter holds the wedge filter stage parameters.
type WedgeFilter struct {
	RotationDeg float64 `toml:"rotation_deg" json:"rotation_deg"`
	OffsetZ     float64 `toml:"offset_z" json:"offset_z"`
}

// PatientSupport holds the patient support rotation parameter.
type PatientSupport struct {
	RotationDeg float64 `toml:"rotation_deg" json:"rotation_deg"`
}

// Eccentric holds the table top eccentric rotation stage parameters.
type Eccentric struct {
	RotationDeg float64 `toml:"rotation_deg" json:"rotation_deg"`
	OffsetY     float64 `toml:"offset_y" json:"offset_y"`
}

// TableTop holds the table top pose parameters.
type TableTop struct {
	X        float64 `toml:"x" json:"x"`
	Y        float64 `toml:"y" json:"y"`
	Z        float64 `toml:"z" json:"z"`
	PitchDeg float64 `toml:"pitch_deg" json:"pitch_deg"`
	RollDeg  float64 `toml:"roll_deg" json:"roll_deg"`
}

// Patient holds the patient pose parameters on the table top.
type Patient struct {
	X        float64 `toml:"x" json:"x"`
	Y        float64 `toml:"y" json:"y"`
	Z        float64 `toml:"z" json:"z"`
	PsiDeg   float64 `toml:"psi_deg" json:"psi_deg"`
	PhiDeg   float64 `toml:"phi_deg" json:"phi_deg"`
	ThetaDeg float64 `toml:"theta_deg" json:"theta_deg"`
}

// ImageGrid holds the DICOM image plane geometry.
type ImageGrid struct {
	ColumnSpacing float64    `toml:"column_spacing" json:"column_spacing"`
	RowSpacing    float64    `toml:"row_spacing" json:"row_spacing"`
	SliceDistance float64    `toml:"slice_distance" json:"slice_distance"`
	Origin        [3]float64 `toml:"origin" json:"origin"`
	RowCosine     [3]float64 `toml:"row_cosine" json:"row_cosine"`
	ColumnCosine  [3]float64 `toml:"column_cosine" json:"column_cosine"`
}

// Parameters is a complete machine setup.
type Parameters struct {
	Gantry         Gantry         `toml:"gantry" json:"gantry"`
	Collimator     Collimator     `toml:"collimator" json:"collimator"`
	WedgeFilter    WedgeFilter    `toml:"wedge_filter" json:"wedge_filter"`
	PatientSupport PatientSupport `toml:"patient_support" json:"patient_support"`
	Eccentric      Eccentric      `toml:"eccentric" json:"eccentric"`
	TableTop       TableTop       `toml:"table_top" json:"table_top"`
	Patient        Patient        `toml:"patient" json:"patient"`
	ImageGrid      ImageGrid      `toml:"image_grid" json:"image_grid"`
}

// Default returns the all-zero setup with an axis-aligned unit image
// grid: applying it leaves a fresh machine unchanged.
func Default() Parameters {
	return Parameters{
		ImageGrid: ImageGrid{
			ColumnSpacing: 1,
			RowSpacing:    1,
			SliceDistance: 1,
			RowCosine:     [3]float64{1, 0, 0},
			ColumnCosine:  [3]float64{0, 1, 0},
		},
	}
}

// Apply pushes every parameter into the machine's elementary
// transforms.
func (p Parameters) Apply(m *iec.Machine) {
	m.SetGantry(p.Gantry.RotationDeg, p.Gantry.PitchDeg)
	m.SetCollimator(p.Collimator.RotationDeg, p.Collimator.OffsetZ)
	m.SetWedgeFilter(p.WedgeFilter.RotationDeg, p.WedgeFilter.OffsetZ)
	m.SetPatientSupportRotation(p.PatientSupport.RotationDeg)
	m.SetTableTopEccentricRotation(p.Eccentric.RotationDeg, p.Eccentric.OffsetY)
	m.SetTableTop(p.TableTop.X, p.TableTop.Y, p.TableTop.Z, p.TableTop.PitchDeg, p.TableTop.RollDeg)
	m.SetPatient(p.Patient.X, p.Patient.Y, p.Patient.Z, p.Patient.PsiDeg, p.Patient.PhiDeg, p.Patient.ThetaDeg)
	m.SetPatientImageGrid(p.ImageGrid.ColumnSpacing, p.ImageGrid.RowSpacing, p.ImageGrid.SliceDistance,
		p.ImageGrid.Origin, p.ImageGrid.RowCosine, p.ImageGrid.ColumnCosine)
}

// LoadFile reads a TOML parameter file. Fields absent from the file
// keep their Default values, so partial files are valid.
func LoadFile(path string) (Parameters, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Parameters{}, fmt.Errorf("read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &p); err != nil {
		return Parameters{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return p, nil
}
