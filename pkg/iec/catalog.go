package iec

// Edge declares an elementary transform from one frame to another.
// For tree edges From is the child and To its parent, so the stored
// matrix maps child coordinates into parent coordinates.
type Edge struct {
	From Frame
	To   Frame
}

// Name returns the edge's transform name, "<From>To<To>".
func (e Edge) Name() string { return TransformNameBetween(e.From, e.To) }

// TransformNameBetween returns the lookup key for the ordered frame pair,
// "<FromName>To<ToName>". The name is never parsed.
func TransformNameBetween(from, to Frame) string {
	return from.String() + "To" + to.String()
}

// declaredEdges lists every elementary transform in registration order.
// All but one are tree edges. FixedReferenceToRas is a fixed offset
// between the mechanical root and the visualization root; it takes part
// in composition like any other edge but is skipped by path resolution.
var declaredEdges = []Edge{
	{FixedReference, RAS},
	{Gantry, FixedReference},
	{Collimator, Gantry},
	{WedgeFilter, Collimator},
	{LeftImagingPanel, Gantry},
	{RightImagingPanel, Gantry},
	{PatientSupportRotation, FixedReference},
	{PatientSupport, PatientSupportRotation},
	{TableTopEccentricRotation, PatientSupportRotation},
	{TableTop, TableTopEccentricRotation},
	{Patient, TableTop},
	{DICOM, Patient},
	{PatientImageRegularGrid, DICOM},
	{RAS, Patient},
	{FlatPanel, Gantry},
}

// hierarchy maps each parent frame to its children, in declaration order.
var hierarchy = map[Frame][]Frame{
	FixedReference:            {Gantry, PatientSupportRotation},
	Gantry:                    {Collimator, LeftImagingPanel, RightImagingPanel, FlatPanel},
	Collimator:                {WedgeFilter},
	PatientSupportRotation:    {PatientSupport, TableTopEccentricRotation},
	TableTopEccentricRotation: {TableTop},
	TableTop:                  {Patient},
	Patient:                   {DICOM, RAS},
	DICOM:                     {PatientImageRegularGrid},
}

// parents is the child-to-parent index derived from hierarchy, giving
// O(1) parent lookup during path resolution. The root has no entry.
var parents = buildParents()

func buildParents() map[Frame]Frame {
	m := make(map[Frame]Frame, frameCount)
	for parent, children := range hierarchy {
		for _, child := range children {
			m[child] = parent
		}
	}
	return m
}

// Edges returns a copy of the declared edge list in registration order.
func Edges() []Edge {
	out := make([]Edge, len(declaredEdges))
	copy(out, declaredEdges)
	return out
}

// Children returns the child frames of parent in declaration order, or
// nil for a leaf or unknown frame. The returned slice must not be
// modified.
func Children(parent Frame) []Frame {
	return hierarchy[parent]
}

// Parent returns the tree parent of f. ok is false for the root and for
// frames outside the tree.
func Parent(f Frame) (parent Frame, ok bool) {
	parent, ok = parents[f]
	return parent, ok
}
