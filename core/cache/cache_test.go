// File: cache_test.go
// Title: Unit Tests for the Bounded Memo Cache
// Description: Tests lookup counters, compute-on-miss behavior, TTL
//              expiry, and the capacity bound with eviction.
// Author: campfirium
// Version: v0.1.0
// Created: 2026-08-10
// Modified: 2026-08-10
//
// Change History:
// - 2026-08-10 v0.1.0: Initial test implementation

package cache

import (
	"errors"
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := New(Config{})

	if _, ok := c.Get("missing"); ok {
		t.Fatal("Get on empty cache should miss")
	}

	c.Set("answer", 42)
	value, ok := c.Get("answer")
	if !ok {
		t.Fatal("Get after Set should hit")
	}
	if value.(int) != 42 {
		t.Errorf("value = %v; want 42", value)
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("stats = %+v; want 1 hit, 1 miss", stats)
	}
	if stats.Entries != 1 {
		t.Errorf("entries = %d; want 1", stats.Entries)
	}
}

func TestGetOrCompute(t *testing.T) {
	c := New(Config{})

	calls := 0
	compute := func() interface{} {
		calls++
		return "computed"
	}

	first := c.GetOrCompute("key", compute)
	second := c.GetOrCompute("key", compute)

	if first != "computed" || second != "computed" {
		t.Errorf("values = %v, %v; want computed twice", first, second)
	}
	if calls != 1 {
		t.Errorf("compute ran %d times; want 1", calls)
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("stats = %+v; want 1 hit, 1 miss", stats)
	}
}

func TestGetOrComputeCachesFailureValues(t *testing.T) {
	c := New(Config{})

	type outcome struct {
		err error
	}

	calls := 0
	value := c.GetOrCompute("bad", func() interface{} {
		calls++
		return &outcome{err: errDummy}
	})
	again := c.GetOrCompute("bad", func() interface{} {
		calls++
		return &outcome{}
	})

	if calls != 1 {
		t.Errorf("compute ran %d times; want 1", calls)
	}
	if value.(*outcome).err == nil || again.(*outcome).err == nil {
		t.Error("cached failure outcome should be returned on both calls")
	}
}

var errDummy = errors.New("dummy")

func TestTTLExpiry(t *testing.T) {
	c := New(Config{})

	c.SetWithTTL("short", "gone soon", 10*time.Millisecond)
	if _, ok := c.Get("short"); !ok {
		t.Fatal("entry should be readable before expiry")
	}

	time.Sleep(25 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("entry should expire after its TTL")
	}
	if c.Size() != 0 {
		t.Errorf("size = %d; want 0 after lazy reap", c.Size())
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	c := New(Config{})

	c.Set("keep", true)
	time.Sleep(15 * time.Millisecond)

	if _, ok := c.Get("keep"); !ok {
		t.Error("entry without TTL should not expire")
	}
}

func TestCapacityEviction(t *testing.T) {
	c := New(Config{MaxEntries: 2})

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	if c.Size() != 2 {
		t.Errorf("size = %d; want capacity bound of 2", c.Size())
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("most recent entry should survive eviction")
	}
}

func TestCapacityPrefersExpiredEntries(t *testing.T) {
	c := New(Config{MaxEntries: 2})

	c.SetWithTTL("stale", 1, 5*time.Millisecond)
	c.Set("fresh", 2)
	time.Sleep(15 * time.Millisecond)

	c.Set("new", 3)

	if _, ok := c.Get("fresh"); !ok {
		t.Error("unexpired entry should survive when an expired one can be reaped")
	}
	if _, ok := c.Get("new"); !ok {
		t.Error("inserted entry should be present")
	}
}

func TestOverwriteAtCapacityKeepsKey(t *testing.T) {
	c := New(Config{MaxEntries: 2})

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 10)

	if c.Size() != 2 {
		t.Errorf("size = %d; want 2 after overwrite", c.Size())
	}
	value, ok := c.Get("a")
	if !ok || value.(int) != 10 {
		t.Errorf("a = %v, %v; want 10, true", value, ok)
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("overwriting an existing key must not evict another")
	}
}

func TestDeleteAndClear(t *testing.T) {
	c := New(Config{})

	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("deleted entry should be absent")
	}

	c.Clear()
	if c.Size() != 0 {
		t.Errorf("size = %d; want 0 after Clear", c.Size())
	}
}

func TestStatsHitRate(t *testing.T) {
	c := New(Config{})

	if rate := c.Stats().HitRate(); rate != 0 {
		t.Errorf("hit rate with no lookups = %v; want 0", rate)
	}

	c.Set("k", 1)
	c.Get("k")
	c.Get("k")
	c.Get("nope")

	// Two hits, one miss.
	if rate := c.Stats().HitRate(); rate < 66 || rate > 67 {
		t.Errorf("hit rate = %v; want about 66.7", rate)
	}
}
