package cache

import "testing"

func TestLRUGetPut(t *testing.T) {
	c := New[string, int](2)
	if _, ok := c.Get("a"); ok {
		t.Fatal("Get on empty cache returned ok")
	}
	c.Put("a", 1)
	c.Put("b", 2)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v, want 1, true", v, ok)
	}

	// b is now the least recently used.
	evicted, ok := c.Put("c", 3)
	if !ok || evicted != 2 {
		t.Errorf("Put(c) evicted %d, %v, want 2, true", evicted, ok)
	}
	if _, ok := c.Get("b"); ok {
		t.Error("b still cached after eviction")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	want := Stats{Hits: 1, Misses: 2, Evictions: 1}
	if c.Stats() != want {
		t.Errorf("Stats() = %+v, want %+v", c.Stats(), want)
	}
}

func TestLRUPutExisting(t *testing.T) {
	c := New[int, string](2)
	c.Put(1, "one")
	c.Put(2, "two")
	if _, ok := c.Put(1, "uno"); ok {
		t.Error("replacing a key evicted an entry")
	}
	// 2 is the oldest now.
	c.Put(3, "three")
	if v, ok := c.Get(1); !ok || v != "uno" {
		t.Errorf("Get(1) = %q, %v, want uno, true", v, ok)
	}
	if _, ok := c.Get(2); ok {
		t.Error("2 should have been evicted")
	}
}

func TestLRUCapacity(t *testing.T) {
	tests := []struct {
		capacity int
		want     int
	}{
		{-1, 1},
		{0, 1},
		{1, 1},
		{16, 16},
	}
	for _, tt := range tests {
		c := New[int, int](tt.capacity)
		if c.Cap() != tt.want {
			t.Errorf("New(%d).Cap() = %d, want %d", tt.capacity, c.Cap(), tt.want)
		}
		for i := range 40 {
			c.Put(i, i)
		}
		if c.Len() != tt.want {
			t.Errorf("New(%d): Len() = %d after 40 puts, want %d", tt.capacity, c.Len(), tt.want)
		}
		if v, ok := c.Get(39); !ok || v != 39 {
			t.Errorf("New(%d): newest entry missing", tt.capacity)
		}
	}
}

func TestLRUClear(t *testing.T) {
	c := New[int, int](4)
	for i := range 4 {
		c.Put(i, i)
	}
	c.Get(0)
	c.Clear()
	if c.Len() != 0 || c.Stats() != (Stats{}) {
		t.Errorf("after Clear: Len() = %d, Stats() = %+v", c.Len(), c.Stats())
	}
	c.Put(7, 7)
	if v, ok := c.Get(7); !ok || v != 7 {
		t.Error("cache unusable after Clear")
	}
}

func BenchmarkLRUGet(b *testing.B) {
	c := New[int, int](64)
	for i := range 64 {
		c.Put(i, i)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.Get(i & 63)
	}
}
