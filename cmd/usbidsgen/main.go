// Command usbidsgen regenerates the vendored usb.ids snapshot.
//
// It fetches the upstream database from one or more mirrors (or reads a local
// file), validates it by fully parsing it, optionally compresses it, and
// rewrites the embedded snapshot file:
//
//	usbidsgen -out data/usb.ids
//	usbidsgen -in /tmp/usb.ids -codec zstd -out data/usb.ids
//	usbidsgen -url https://usb-ids.gowdy.us/usb.ids,https://mirror.example/usb.ids
//
// A snapshot that fails to parse never reaches the output file; a broken
// upstream revision halts regeneration instead of shipping corrupt data.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/hupe1980/usbids/feed"
	"github.com/hupe1980/usbids/internal/compress"
)

func main() {
	var (
		in      = flag.String("in", "", "read the snapshot from a local file instead of fetching")
		urls    = flag.String("url", feed.DefaultURL, "comma-separated mirror URLs, raced in parallel")
		out     = flag.String("out", "data/usb.ids", "output path for the embedded snapshot")
		codec   = flag.String("codec", "none", "snapshot encoding: none, zstd, or lz4")
		timeout = flag.Duration("timeout", 2*time.Minute, "overall fetch timeout")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(logger, *in, *urls, *out, *codec, *timeout); err != nil {
		logger.Error("regeneration failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, in, urls, out, codecName string, timeout time.Duration) error {
	typ, ok := compress.TypeByName(codecName)
	if !ok {
		return fmt.Errorf("unknown codec %q", codecName)
	}

	var sources []feed.Source
	if in != "" {
		sources = append(sources, feed.NewFile(in))
	} else {
		for _, u := range strings.Split(urls, ",") {
			if u = strings.TrimSpace(u); u != "" {
				sources = append(sources, feed.NewHTTP(u))
			}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	snap, err := feed.Fetch(ctx, sources...)
	if err != nil {
		return err
	}
	logger.Info("snapshot validated",
		"source", snap.Source,
		"version", snap.Version,
		"date", snap.Date,
		"vendors", snap.Vendors,
		"devices", snap.Devices,
		"classes", snap.Classes,
	)

	encoded, err := compress.Compress(snap.Data, typ)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, encoded, 0o644); err != nil {
		return err
	}
	logger.Info("snapshot written",
		"path", out,
		"codec", typ.String(),
		"bytes", len(encoded),
		"raw_bytes", len(snap.Data),
	)
	return nil
}
