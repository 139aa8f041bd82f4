package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chandan-cmd-dev/jsonwc-go/jsonwc"
)

func write(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	p := write(t, "jsonwc.yaml", `
numbers: decimal
schema: schemas/service.jsonc
indent: true
server:
  listen: 127.0.0.1:9000
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Version != 1 || cfg.NumberMode() != jsonwc.NumberDecimal || !cfg.Indent {
		t.Fatalf("got %+v", cfg)
	}
	if cfg.Schema != filepath.Join(filepath.Dir(p), "schemas", "service.jsonc") {
		t.Fatalf("schema path %q not resolved against the config file", cfg.Schema)
	}
	if cfg.Server.Listen != "127.0.0.1:9000" || cfg.Server.ReadTimeoutMS != DefaultReadTimeoutMS {
		t.Fatalf("server %+v", cfg.Server)
	}
	if cfg.MaxBytes != DefaultMaxBytes {
		t.Fatalf("max_bytes %d", cfg.MaxBytes)
	}
}

func TestLoadJSONWithComments(t *testing.T) {
	p := write(t, "jsonwc.jsonc", `{
  // exact numbers for money
  "numbers": "number",
  "max_bytes": 1024, /* small */
  "server": { "listen": ":9999" }
}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.NumberMode() != jsonwc.NumberJSON || cfg.MaxBytes != 1024 || cfg.Server.Listen != ":9999" {
		t.Fatalf("got %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]string{
		"bad.jsonc":   `{"numbers": "float64" /* open`,
		"bad.json":    `{"numbers": }`,
		"bad.yaml":    "numbers: [",
		"mode.yaml":   "numbers: int",
		"ver.yaml":    "version: 7",
		"neg.yaml":    "max_bytes: -1",
		"timeout.yml": "server:\n  read_timeout_ms: -5",
	}
	for name, body := range cases {
		if _, err := Load(write(t, name, body)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}

	_, err := Load(write(t, "pos.jsonc", "{\n  \"numbers\": x\n}"))
	var e *jsonwc.Error
	if !errors.As(err, &e) || e.Line != 2 || !strings.Contains(err.Error(), "pos.jsonc") {
		t.Fatalf("got %v", err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("got %v", err)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.NumberMode() != jsonwc.NumberFloat64 || cfg.Server.Listen != DefaultListen {
		t.Fatalf("got %+v", cfg)
	}
}
