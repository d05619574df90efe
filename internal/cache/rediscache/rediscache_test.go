package rediscache

import (
	"bytes"
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestRedisCacheGetSetDel(t *testing.T) {
	mr := miniredis.RunT(t)
	c := New(mr.Addr())
	defer c.Close()

	ctx := context.Background()
	if !c.Enabled() {
		t.Fatal("expected enabled cache")
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	b, ok, err := c.Get(ctx, "k")
	if err != nil || !ok || !bytes.Equal(b, []byte("v")) {
		t.Fatalf("unexpected get result: %q ok=%v err=%v", b, ok, err)
	}

	if err := c.Del(ctx, "k"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("expected miss after delete, ok=%v err=%v", ok, err)
	}
}

func TestRedisCacheMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	c := New(mr.Addr())
	defer c.Close()

	if _, ok, err := c.Get(context.Background(), "missing"); err != nil || ok {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}
}

func TestRedisCacheExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	c := New(mr.Addr())
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(2 * time.Second)

	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("expected expiry miss, ok=%v err=%v", ok, err)
	}
}

func TestRedisCacheServerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	c := New(mr.Addr())
	defer c.Close()
	mr.Close()

	ctx := context.Background()
	if _, _, err := c.Get(ctx, "k"); err == nil {
		t.Fatal("expected get error")
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err == nil {
		t.Fatal("expected set error")
	}
	if err := c.Del(ctx, "k"); err == nil {
		t.Fatal("expected del error")
	}
}

func TestRedisCacheDisabled(t *testing.T) {
	c := New("")
	defer c.Close()

	ctx := context.Background()
	if c.Enabled() {
		t.Fatal("expected disabled cache")
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("disabled set must be a no-op: %v", err)
	}
	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("disabled get must miss, ok=%v err=%v", ok, err)
	}
	if err := c.Del(ctx, "k"); err != nil {
		t.Fatalf("disabled del must be a no-op: %v", err)
	}
}
