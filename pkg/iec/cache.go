package iec

import "github.com/beamframe/beamframe/pkg/affine"

// pairKey identifies one composed transform request. Beam-mode results
// differ from regular ones and are cached separately.
type pairKey struct {
	from, to Frame
	beam     bool
}

// pairCache lazily holds composed transforms per frame pair. Each entry
// remembers which edges it was built from, so an edge update evicts
// exactly the composites that depend on it and leaves the rest intact.
type pairCache struct {
	entries map[pairKey]pairEntry
}

type pairEntry struct {
	matrix affine.Matrix
	edges  []Edge
}

func newPairCache() *pairCache {
	return &pairCache{entries: make(map[pairKey]pairEntry)}
}

func (c *pairCache) get(k pairKey) (affine.Matrix, bool) {
	e, ok := c.entries[k]
	if !ok {
		return affine.Matrix{}, false
	}
	return e.matrix.Clone(), true
}

func (c *pairCache) put(k pairKey, m affine.Matrix, edges []Edge) {
	c.entries[k] = pairEntry{matrix: m.Clone(), edges: edges}
}

func (c *pairCache) invalidate(edge Edge) {
	for k, e := range c.entries {
		for _, used := range e.edges {
			if used == edge {
				delete(c.entries, k)
				break
			}
		}
	}
}

// len reports the number of cached composites (test hook).
func (c *pairCache) len() int { return len(c.entries) }
