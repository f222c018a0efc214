// Command l2replay replays a Shenzhen-style order-entry and trade-execution
// CSV pair in event-time order and emits a Level-2 snapshot per instrument
// at each requested timestamp.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"

	"l2replay/internal/engine"
	"l2replay/internal/ingest"
	"l2replay/internal/output"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultTimestamps are the snapshot request timestamps this session was
// observed requesting. -timestamps lets a caller supply its own list
// without dropping this documented default.
var defaultTimestamps = []int64{
	1587605144280888,
	1587605154280888,
	1587605164280888,
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := run(); err != nil {
		log.Error().Err(err).Msg("l2replay failed")
		os.Exit(1)
	}
}

func run() error {
	var (
		orderPath     string
		tradePath     string
		timestampPath string
	)

	fs := flag.NewFlagSet("l2replay", flag.ExitOnError)
	fs.StringVar(&orderPath, "o", "", "csv file of orders")
	fs.StringVar(&orderPath, "order", "", "csv file of orders")
	fs.StringVar(&tradePath, "t", "", "csv file of trades")
	fs.StringVar(&tradePath, "trade", "", "csv file of trades")
	fs.StringVar(&timestampPath, "ts", "", "newline-delimited file of snapshot request timestamps (optional)")
	fs.StringVar(&timestampPath, "timestamps", "", "newline-delimited file of snapshot request timestamps (optional)")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	if orderPath == "" || tradePath == "" {
		fs.Usage()
		return fmt.Errorf("l2replay: -o/--order and -t/--trade are both required")
	}

	timestamps := defaultTimestamps
	if timestampPath != "" {
		ts, err := readTimestamps(timestampPath)
		if err != nil {
			return err
		}
		timestamps = ts
	}

	streams, err := ingest.Load(orderPath, tradePath)
	if err != nil {
		return err
	}

	builder := engine.NewSnapshotBuilder(streams.Orders, streams.Trades, engine.DefaultBookConfig())
	snapshots := builder.BuildSnapshot(timestamps)

	w, err := output.NewWriter(os.Stdout)
	if err != nil {
		return err
	}
	for _, snap := range snapshots {
		if err := w.WriteSnapshot(snap); err != nil {
			return fmt.Errorf("l2replay: write snapshot: %w", err)
		}
	}
	return w.Flush()
}

func readTimestamps(path string) ([]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("l2replay: open %s: %w", path, err)
	}
	defer f.Close()

	var timestamps []int64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		ts, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("l2replay: parse timestamp %q: %w", line, err)
		}
		timestamps = append(timestamps, ts)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("l2replay: scan %s: %w", path, err)
	}
	return timestamps, nil
}
