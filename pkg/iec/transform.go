package iec

import (
	"fmt"

	"github.com/beamframe/beamframe/pkg/affine"
)

// TransformBetween returns the affine transform mapping coordinates in
// the from frame to coordinates in the to frame, reflecting the current
// joint parameters.
//
// The transform is composed along both frames' paths to the fixed
// reference root: up the tree the stored child-to-parent matrices are
// concatenated as-is; down the tree each edge matrix is inverted first,
// because the stored direction is child-to-parent. With beam true the
// down-leg inversion is skipped. This asymmetric mode reproduces the
// legacy beam-geometry convention and has no use outside it.
//
// Results are cached per (from, to, beam) and evicted automatically
// when a Set method touches an edge on the composed path.
func (m *Machine) TransformBetween(from, to Frame, beam bool) (affine.Matrix, error) {
	key := pairKey{from: from, to: to, beam: beam}
	if t, ok := m.cache.get(key); ok {
		return t, nil
	}

	fromPath, err := PathToRoot(from)
	if err != nil {
		return affine.Matrix{}, err
	}
	toPath, err := PathFromRoot(to)
	if err != nil {
		return affine.Matrix{}, err
	}

	// Post-multiply accumulation: each edge matrix is applied after the
	// ones already gathered, so the product follows traversal order.
	out := affine.Identity()
	var used []Edge

	for i := 0; i+1 < len(fromPath); i++ {
		child, parent := fromPath[i], fromPath[i+1]
		if child == parent {
			continue
		}
		e := Edge{child, parent}
		t, ok := m.transforms[e]
		if !ok {
			return affine.Matrix{}, fmt.Errorf("%s: %w", e.Name(), ErrUnknownEdge)
		}
		out = t.Mul(out)
		used = append(used, e)
	}

	for i := 0; i+1 < len(toPath); i++ {
		parent, child := toPath[i], toPath[i+1]
		if child == parent {
			continue
		}
		e := Edge{child, parent}
		t, ok := m.transforms[e]
		if !ok {
			return affine.Matrix{}, fmt.Errorf("%s: %w", e.Name(), ErrUnknownEdge)
		}
		if !beam {
			if t, err = t.Invert(); err != nil {
				return affine.Matrix{}, fmt.Errorf("%s: %w", e.Name(), err)
			}
		}
		out = t.Mul(out)
		used = append(used, e)
	}

	m.cache.put(key, out, used)
	return out, nil
}
