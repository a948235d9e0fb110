package ecsquery

import "testing"

func TestTypeCanonicalOrder(t *testing.T) {
	typ := NewType(5, 1, 3, 1)
	if typ.Len() != 3 {
		t.Fatalf("expected 3 unique ids, got %d", typ.Len())
	}
	ids := typ.IDs()
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("ids not strictly ascending: %v", ids)
		}
	}
}

func TestTypeHasAndIndexOf(t *testing.T) {
	typ := NewType(10, 20, 30)
	if !typ.Has(20) {
		t.Errorf("expected Has(20) true")
	}
	if typ.Has(99) {
		t.Errorf("expected Has(99) false")
	}
	if idx := typ.IndexOf(20); idx != 1 {
		t.Errorf("expected IndexOf(20) == 1, got %d", idx)
	}
	if idx := typ.IndexOf(99); idx != -1 {
		t.Errorf("expected IndexOf(99) == -1, got %d", idx)
	}
}

func TestTypeAddIsImmutable(t *testing.T) {
	base := NewType(1, 2)
	extended := base.Add(3)
	if base.Has(3) {
		t.Fatalf("Add mutated the receiver")
	}
	if !extended.Has(3) {
		t.Fatalf("expected extended type to contain 3")
	}
	if same := base.Add(1); same.Len() != base.Len() {
		t.Errorf("adding an existing id should not grow the type")
	}
}

// fakeStore is a minimal TypeStore for exercising prefab-walking tests
// without a full World.
type fakeStore map[Entity]Type

func (f fakeStore) TypeOf(e Entity) Type { return f[e.ID()] }

func TestContainsSearchPrefabs(t *testing.T) {
	const health Entity = 100
	const prefab Entity = 1
	store := fakeStore{
		prefab: NewType(health),
	}
	instance := NewType(InstanceOf(prefab))

	if _, ok := contains(instance, NewType(health), false, false, store); ok {
		t.Errorf("expected no direct match without prefab search")
	}
	if c, ok := contains(instance, NewType(health), false, true, store); !ok || c != health {
		t.Errorf("expected prefab-inherited match for health, got %v %v", c, ok)
	}
}

func TestContainsMatchAllRequiresEveryElement(t *testing.T) {
	const a, b, c Entity = 1, 2, 3
	super := NewType(a, b)
	if _, ok := contains(super, NewType(a, b), true, false, nil); !ok {
		t.Fatalf("expected all of {a,b} to be directly present")
	}
	if _, ok := contains(super, NewType(a, c), true, false, nil); ok {
		t.Errorf("expected match_all to fail when one element is missing")
	}
}
