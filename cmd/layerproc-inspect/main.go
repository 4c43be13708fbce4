// main.go implements the layerproc inspector CLI: it parses command-line
// flags, fetches a ring-occupancy snapshot from a target process exposing
// the layerproc debug endpoint, and prints it either as pretty text or
// JSON. It also supports periodic watch mode.
//
// The target Go process is expected to expose:
//   - GET /debug/layerproc/snapshot - JSON array of per-layer ring stats.
//
// The snapshot element is intentionally decoded as map[string]any to avoid
// version skew between CLI and library.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

type options struct {
	target   string
	json     bool
	watch    bool
	interval time.Duration
}

func parseFlags() *options {
	o := &options{}
	flag.StringVar(&o.target, "target", "http://127.0.0.1:6060", "base URL of the process to inspect")
	flag.BoolVar(&o.json, "json", false, "print the raw JSON snapshot instead of a table")
	flag.BoolVar(&o.watch, "watch", false, "poll the snapshot endpoint repeatedly")
	flag.DurationVar(&o.interval, "interval", 2*time.Second, "poll interval in watch mode")
	flag.Parse()
	return o
}

func main() {
	opts := parseFlags()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	if opts.watch {
		ticker := time.NewTicker(opts.interval)
		defer ticker.Stop()
		for {
			if err := dumpOnce(ctx, opts); err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
			}
			select {
			case <-ticker.C:
				continue
			case <-ctx.Done():
				return
			}
		}
	}

	if err := dumpOnce(ctx, opts); err != nil {
		fatal(err)
	}
}

func dumpOnce(ctx context.Context, opts *options) error {
	snap, err := fetchSnapshot(ctx, opts.target)
	if err != nil {
		return err
	}
	if opts.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}
	return prettyPrint(snap)
}

func fetchSnapshot(ctx context.Context, base string) ([]map[string]any, error) {
	url := base + "/debug/layerproc/snapshot"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", res.Status)
	}
	var data []map[string]any
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return nil, err
	}
	return data, nil
}

func prettyPrint(layers []map[string]any) error {
	fmt.Printf("%-20s %10s %10s %8s\n", "LAYER", "OCCUPIED", "CAPACITY", "FULL%")
	for _, l := range layers {
		name := fmt.Sprintf("%v", l["name"])
		occupied := toFloat(l["occupied"])
		capacity := toFloat(l["capacity"])
		pct := 0.0
		if capacity > 0 {
			pct = occupied / capacity * 100
		}
		fmt.Printf("%-20s %10.0f %10.0f %7.1f%%\n", name, occupied, capacity, pct)
	}
	return nil
}

func toFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int64:
		return float64(t)
	case json.Number:
		f, _ := t.Float64()
		return f
	default:
		return 0
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "layerproc-inspect:", err)
	os.Exit(1)
}
