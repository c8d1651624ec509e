package iec

import "testing"

func TestCachePopulatesLazily(t *testing.T) {
	m := NewMachine()
	if n := m.cache.len(); n != 0 {
		t.Fatalf("fresh machine has %d cached pairs, want 0", n)
	}
	if _, err := m.TransformBetween(WedgeFilter, Patient, false); err != nil {
		t.Fatal(err)
	}
	if n := m.cache.len(); n != 1 {
		t.Errorf("cache has %d entries after one query, want 1", n)
	}
	// Repeat query hits the cache, no new entry.
	if _, err := m.TransformBetween(WedgeFilter, Patient, false); err != nil {
		t.Fatal(err)
	}
	if n := m.cache.len(); n != 1 {
		t.Errorf("cache has %d entries after repeat query, want 1", n)
	}
}

func TestCacheKeyedByBeamMode(t *testing.T) {
	m := NewMachine()
	m.SetGantry(90, 0)
	if _, err := m.TransformBetween(FixedReference, Gantry, false); err != nil {
		t.Fatal(err)
	}
	if _, err := m.TransformBetween(FixedReference, Gantry, true); err != nil {
		t.Fatal(err)
	}
	if n := m.cache.len(); n != 2 {
		t.Errorf("cache has %d entries, want separate entries per mode", n)
	}
	beam, _ := m.TransformBetween(FixedReference, Gantry, true)
	regular, _ := m.TransformBetween(FixedReference, Gantry, false)
	if beam.ApproxEqual(regular, 1e-6) {
		t.Error("beam and regular cached results must differ for a rotated gantry")
	}
}

func TestCacheInvalidationIsSelective(t *testing.T) {
	m := NewMachine()
	if _, err := m.TransformBetween(Collimator, FixedReference, false); err != nil {
		t.Fatal(err)
	}
	if _, err := m.TransformBetween(Patient, TableTop, false); err != nil {
		t.Fatal(err)
	}
	if n := m.cache.len(); n != 2 {
		t.Fatalf("cache has %d entries, want 2", n)
	}

	// The collimator edge is only on the first pair's path.
	m.SetCollimator(10, 0)
	if n := m.cache.len(); n != 1 {
		t.Errorf("cache has %d entries after update, want 1 surviving", n)
	}
	if _, ok := m.cache.get(pairKey{from: Patient, to: TableTop}); !ok {
		t.Error("unrelated cached pair was evicted")
	}
	if _, ok := m.cache.get(pairKey{from: Collimator, to: FixedReference}); ok {
		t.Error("stale cached pair survived an update on its path")
	}

	// The recomputed transform reflects the new joint value.
	got, err := m.TransformBetween(Collimator, FixedReference, false)
	if err != nil {
		t.Fatal(err)
	}
	stored, _ := m.ElementaryTransformBetween(Collimator, Gantry)
	if !got.ApproxEqual(stored, 1e-12) {
		t.Errorf("recomputed transform is stale:\n%s\nwant:\n%s", got, stored)
	}
}
