package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestLocalPutOpenStat(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	if err := store.Put(ctx, "a.xlsx", strings.NewReader("hello")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	rc, err := store.Open(ctx, "a.xlsx")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != "hello" {
		t.Errorf("content = %q", data)
	}

	info, err := store.Stat(ctx, "a.xlsx")
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size != 5 || info.Name != "a.xlsx" {
		t.Errorf("info = %+v", info)
	}

	// overwrite
	if err := store.Put(ctx, "a.xlsx", strings.NewReader("hi")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	info, _ = store.Stat(ctx, "a.xlsx")
	if info.Size != 2 {
		t.Errorf("size after overwrite = %d", info.Size)
	}
}

func TestLocalNotFound(t *testing.T) {
	ctx := context.Background()
	store, _ := NewLocal(t.TempDir())

	if _, err := store.Open(ctx, "missing.xlsx"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Open err = %v", err)
	}
	if _, err := store.Stat(ctx, "missing.xlsx"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Stat err = %v", err)
	}
}

func TestLocalRejectsPaths(t *testing.T) {
	ctx := context.Background()
	store, _ := NewLocal(t.TempDir())

	for _, name := range []string{"../x", "a/b", "..", ""} {
		t.Run(name, func(t *testing.T) {
			if err := store.Put(ctx, name, strings.NewReader("x")); !errors.Is(err, ErrInvalidName) {
				t.Errorf("Put(%q) err = %v", name, err)
			}
			if _, err := store.Open(ctx, name); !errors.Is(err, ErrInvalidName) {
				t.Errorf("Open(%q) err = %v", name, err)
			}
		})
	}
}

func TestLocalList(t *testing.T) {
	ctx := context.Background()
	store, _ := NewLocal(t.TempDir())

	list, err := store.List(ctx)
	if err != nil || len(list) != 0 {
		t.Fatalf("empty List = %v, %v", list, err)
	}
	for _, name := range []string{"b.xlsx", "a.xlsx"} {
		store.Put(ctx, name, strings.NewReader(name))
	}
	list, _ = store.List(ctx)
	if len(list) != 2 || list[0].Name != "a.xlsx" || list[1].Name != "b.xlsx" {
		t.Errorf("List = %+v", list)
	}
}

func TestUseGCS(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	t.Setenv("K_SERVICE", "")
	if UseGCS(false) {
		t.Error("UseGCS without env = true")
	}
	if !UseGCS(true) {
		t.Error("forced UseGCS = false")
	}
	t.Setenv("K_SERVICE", "agentreport")
	if !UseGCS(false) {
		t.Error("UseGCS on Cloud Run = false")
	}
}
