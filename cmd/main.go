// Command ropecat concatenates a set of input files into a single rope
// and either prints the result, reports its content hash, or serves it
// to WebSocket clients for inspection — a small demonstrator for the
// rope/config/stream packages working together.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/h-a-n-a/turbo/pkg/config"
	"github.com/h-a-n-a/turbo/pkg/diagnostics"
	"github.com/h-a-n-a/turbo/pkg/rope"
	"github.com/h-a-n-a/turbo/pkg/stream"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML tunables file (optional)")
		serve      = flag.String("serve", "", "if set, stream the concatenated rope to WebSocket clients on this address instead of printing it")
		dump       = flag.Bool("dump", false, "print the rope's chunk structure instead of its content")
		hashOnly   = flag.Bool("hash", false, "print only the content hash")
	)
	flag.Parse()

	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("ropecat: %v", err)
		}
		config.Apply(cfg)
	}

	r, err := concatFiles(flag.Args())
	if err != nil {
		log.Fatalf("ropecat: %v", err)
	}

	switch {
	case *serve != "":
		serveRope(*serve, r)
	case *dump:
		fmt.Print(diagnostics.DumpChunks(r))
	case *hashOnly:
		fmt.Printf("%016x\n", r.Hash())
	default:
		s, err := r.String()
		if err != nil {
			log.Fatalf("ropecat: %v", err)
		}
		fmt.Print(s)
	}
}

// concatFiles builds a rope out of every named file's content, in
// argument order, using Builder.Concat so the result references each
// file's bytes through its own rope rather than flattening them up
// front. Each file is read in bounded chunks via rope.FromReader rather
// than loaded whole, so a multi-gigabyte input never needs to fit in
// memory as a single contiguous buffer before it's committed.
func concatFiles(paths []string) (rope.Rope, error) {
	b := rope.NewBuilder()
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return rope.Rope{}, fmt.Errorf("open %s: %w", path, err)
		}
		fileRope, err := rope.FromReader(f, 0)
		f.Close()
		if err != nil {
			return rope.Rope{}, fmt.Errorf("read %s: %w", path, err)
		}
		b.Concat(fileRope)
	}
	return b.Build(), nil
}

// serveRope starts an HTTP server exposing r over WebSocket at /rope,
// and shuts it down cleanly on SIGINT/SIGTERM.
func serveRope(addr string, r rope.Rope) {
	mux := http.NewServeMux()
	mux.Handle("/rope", &stream.WebSocketSource{
		Lookup: func(req *http.Request) (rope.Rope, error) {
			return r, nil
		},
	})

	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("ropecat: shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}()

	log.Printf("ropecat: serving %d bytes on ws://%s/rope", r.Len(), addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("ropecat: server error: %v", err)
	}
}
