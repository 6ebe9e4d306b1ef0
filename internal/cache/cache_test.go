package cache

import (
	"strings"
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("k1", []byte("v1"), time.Minute); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	val, ok := c.Get("k1")
	if !ok {
		t.Fatal("Expected a hit")
	}
	if string(val) != "v1" {
		t.Errorf("Expected v1, got %s", val)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("Expected a miss for an unknown key")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	if err := c.Set("k1", []byte("v1"), 10*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(30 * time.Millisecond)
	if _, ok := c.Get("k1"); ok {
		t.Error("Expected the entry to expire")
	}
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	_ = c.Set("k1", []byte("v1"), time.Minute)
	_ = c.Set("k2", []byte("v2"), time.Minute)

	if err := c.Delete("k1"); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get("k1"); ok {
		t.Error("Expected k1 deleted")
	}

	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get("k2"); ok {
		t.Error("Expected the cache cleared")
	}
}

func TestDiskCache_SetGet(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("k1", []byte("v1"), time.Minute); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	val, ok := c.Get("k1")
	if !ok {
		t.Fatal("Expected a hit")
	}
	if string(val) != "v1" {
		t.Errorf("Expected v1, got %s", val)
	}
}

func TestDiskCache_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	first := NewDiskCache(dir, time.Minute)
	if err := first.Set("k1", []byte("persisted"), time.Minute); err != nil {
		t.Fatal(err)
	}

	second := NewDiskCache(dir, time.Minute)
	val, ok := second.Get("k1")
	if !ok {
		t.Fatal("Expected the entry to survive a new cache instance")
	}
	if string(val) != "persisted" {
		t.Errorf("Expected persisted, got %s", val)
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)
	if err := c.Set("k1", []byte("v1"), 10*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(30 * time.Millisecond)
	if _, ok := c.Get("k1"); ok {
		t.Error("Expected the entry to expire")
	}
}

func TestDiskCache_ZeroTTLUsesDefault(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)
	if err := c.Set("k1", []byte("v1"), 0); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get("k1"); !ok {
		t.Error("Expected the default TTL to keep the entry alive")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	seed := NewDiskCache(dir, time.Minute)
	if err := seed.Set("k1", []byte("from-disk"), time.Minute); err != nil {
		t.Fatal(err)
	}

	layered := NewLayeredCache(time.Minute, dir, time.Minute)
	val, ok := layered.Get("k1")
	if !ok {
		t.Fatal("Expected the disk tier to serve the entry")
	}
	if string(val) != "from-disk" {
		t.Errorf("Expected from-disk, got %s", val)
	}

	// Remove the disk file; the promoted copy must still answer.
	if err := seed.Delete("k1"); err != nil {
		t.Fatal(err)
	}
	if _, ok := layered.Get("k1"); !ok {
		t.Error("Expected the promoted memory copy to serve after disk deletion")
	}
}

func TestLayeredCache_SetWritesBothTiers(t *testing.T) {
	dir := t.TempDir()
	layered := NewLayeredCache(time.Minute, dir, time.Minute)

	if err := layered.Set("k1", []byte("v1"), time.Minute); err != nil {
		t.Fatal(err)
	}

	disk := NewDiskCache(dir, time.Minute)
	if _, ok := disk.Get("k1"); !ok {
		t.Error("Expected the disk tier to hold the entry")
	}
}

func TestResultKey(t *testing.T) {
	a := ResultKey("条項テキスト", "fp-1")
	b := ResultKey("条項テキスト", "fp-1")
	if a != b {
		t.Error("Expected deterministic keys")
	}
	if !strings.HasPrefix(a, "clauseguard:v1:") {
		t.Errorf("Expected the versioned prefix, got %s", a)
	}
	if ResultKey("条項テキスト", "fp-2") == a {
		t.Error("Expected the fingerprint to change the key")
	}
	if ResultKey("別の条項", "fp-1") == a {
		t.Error("Expected the clause text to change the key")
	}
}
