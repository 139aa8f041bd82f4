package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/chandan-cmd-dev/jsonwc-go/internal/config"
	"github.com/chandan-cmd-dev/jsonwc-go/internal/httpapi"
	"github.com/chandan-cmd-dev/jsonwc-go/jsonwc"
)

func main() {
	var cfgPath, addr, schemaPath string
	flag.StringVar(&cfgPath, "config", "", "YAML or JSON-with-comments config file")
	flag.StringVar(&addr, "listen", "", "listen address (default "+config.DefaultListen+")")
	flag.StringVar(&schemaPath, "schema", "", "JSON Schema applied by /v1/check")
	flag.Parse()

	cfg := config.Default()
	if cfgPath != "" {
		var err error
		if cfg, err = config.Load(cfgPath); err != nil {
			log.Fatalf("config: %v", err)
		}
	}
	if addr != "" {
		cfg.Server.Listen = addr
	}
	if schemaPath != "" {
		cfg.Schema = schemaPath
	}

	srv := &httpapi.Server{
		MaxBytes: cfg.MaxBytes,
		Numbers:  cfg.NumberMode(),
		Indent:   cfg.Indent,
	}
	if cfg.Schema != "" {
		b, err := os.ReadFile(cfg.Schema)
		if err != nil {
			log.Fatalf("read schema: %v", err)
		}
		if srv.Schema, err = jsonwc.CompileSchema(cfg.Schema, b); err != nil {
			log.Fatalf("%v", err)
		}
		log.Printf("schema %s enabled on /v1/check", cfg.Schema)
	}

	hs := &http.Server{
		Addr:        cfg.Server.Listen,
		Handler:     srv.Handler(),
		ReadTimeout: time.Duration(cfg.Server.ReadTimeoutMS) * time.Millisecond,
	}
	log.Printf("jsonwcd on %s (numbers=%s, max_bytes=%d)", hs.Addr, srv.Numbers, srv.MaxBytes)
	log.Fatal(hs.ListenAndServe())
}
