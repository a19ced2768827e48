package cfglang

import "testing"

func TestDictNamespacesAreIndependent(t *testing.T) {
	d := newDict()
	d.Write("x", 1, 100)
	d.Write("x", 2, 200)

	v, ok := d.Find("x", 1)
	if !ok || v != 100 {
		t.Fatalf("Find(x,1) = %v,%v, want 100,true", v, ok)
	}
	v, ok = d.Find("x", 2)
	if !ok || v != 200 {
		t.Fatalf("Find(x,2) = %v,%v, want 200,true", v, ok)
	}
}

func TestDictEraseAndHas(t *testing.T) {
	d := newDict()
	d.Write("tag", 5, 1)
	if !d.Has("tag", 5) {
		t.Fatal("expected Has to report true before Erase")
	}
	d.Erase("tag", 5)
	if d.Has("tag", 5) {
		t.Fatal("expected Has to report false after Erase")
	}
}

func TestDictClear(t *testing.T) {
	d := newDict()
	d.Write("a", 0, 1)
	d.clear()
	if d.Has("a", 0) {
		t.Fatal("expected clear to remove all entries")
	}
}
