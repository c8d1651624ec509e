package setup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/beamframe/beamframe/pkg/iec"
)

func TestDefaultAppliesAsIdentity(t *testing.T) {
	fresh := iec.NewMachine()
	applied := iec.NewMachine()
	Default().Apply(applied)

	for _, e := range iec.Edges() {
		want, err := fresh.ElementaryTransformBetween(e.From, e.To)
		if err != nil {
			t.Fatal(err)
		}
		got, err := applied.ElementaryTransformBetween(e.From, e.To)
		if err != nil {
			t.Fatal(err)
		}
		if !got.ApproxEqual(want, 0) {
			t.Errorf("%s changed by applying the default setup:\n%s", e.Name(), got)
		}
	}
}

func TestApply(t *testing.T) {
	p := Default()
	p.Collimator.RotationDeg = 90

	m := iec.NewMachine()
	p.Apply(m)

	tr, err := m.TransformBetween(iec.Collimator, iec.Gantry, false)
	if err != nil {
		t.Fatal(err)
	}
	got := tr.ApplyPoint([3]float64{1, 0, 0})
	if got != [3]float64{0, 1, 0} {
		t.Errorf("collimator rotation not applied, point maps to %v", got)
	}
}

func TestLoadFile(t *testing.T) {
	content := `
[gantry]
rotation_deg = 90.0

[table_top]
x = 1.0
y = -2.0
z = 3.0

[image_grid]
column_spacing = 0.9766
row_spacing = 0.9766
slice_distance = 2.5
origin = [-250.0, -250.0, -100.0]
row_cosine = [1.0, 0.0, 0.0]
column_cosine = [0.0, 1.0, 0.0]
`
	path := filepath.Join(t.TempDir(), "linac.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if p.Gantry.RotationDeg != 90 {
		t.Errorf("gantry rotation = %v, want 90", p.Gantry.RotationDeg)
	}
	if p.TableTop != (TableTop{X: 1, Y: -2, Z: 3}) {
		t.Errorf("table top = %+v", p.TableTop)
	}
	if p.ImageGrid.SliceDistance != 2.5 {
		t.Errorf("slice distance = %v, want 2.5", p.ImageGrid.SliceDistance)
	}
	// Sections absent from the file keep defaults.
	if p.Collimator.RotationDeg != 0 {
		t.Errorf("collimator rotation = %v, want default 0", p.Collimator.RotationDeg)
	}
}

func TestLoadFilePartialKeepsGridDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.toml")
	if err := os.WriteFile(path, []byte("[gantry]\nrotation_deg = 10.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.ImageGrid.RowCosine != [3]float64{1, 0, 0} {
		t.Errorf("row cosine default lost: %v", p.ImageGrid.RowCosine)
	}
	if p.ImageGrid.ColumnSpacing != 1 {
		t.Errorf("column spacing default lost: %v", p.ImageGrid.ColumnSpacing)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file should return an error")
	}
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("gantry = {"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("malformed TOML should return an error")
	}
}
