package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dpshade/luma/internal/storage"
)

func TestMigrate_JSONToSQLite(t *testing.T) {
	dir := t.TempDir()
	src, err := storage.Open(storage.BackendJSON, dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := src.Set(context.Background(), "luma-theme", "dark"); err != nil {
		t.Fatal(err)
	}
	src.Close()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--data-dir", dir, "--yes"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !strings.Contains(out.String(), "Migrated 1 keys") {
		t.Errorf("unexpected output: %s", out.String())
	}

	dst, err := storage.Open(storage.BackendSQLite, dir)
	if err != nil {
		t.Fatal(err)
	}
	defer dst.Close()
	v, ok, err := dst.Get(context.Background(), "luma-theme")
	if err != nil || !ok || v != "dark" {
		t.Errorf("expected theme in sqlite store, got %q %v %v", v, ok, err)
	}
}

func TestMigrate_Cancelled(t *testing.T) {
	dir := t.TempDir()
	src, _ := storage.Open(storage.BackendJSON, dir)
	src.Set(context.Background(), "luma-theme", "dark")
	src.Close()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("n\n"))
	cmd.SetArgs([]string{"--data-dir", dir})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Migration cancelled") {
		t.Errorf("expected cancellation, got %s", out.String())
	}
}

func TestMigrate_SameBackend(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--from", "json", "--to", "json"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected error for identical backends")
	}
}
