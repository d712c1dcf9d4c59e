package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/grahalabs/jyotish/internal/cache"
	"github.com/grahalabs/jyotish/internal/config"
)

func batchCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "batch <requests.jsonl>",
		Short: "Derive readings for a file of requests",
		Long: `Reads one derivation request per line, routes each through the
cache coordinator so repeated requests are derived only once, and
writes one reading per line to the output file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			e, engineCleanup, err := buildEngine(ctx, settings)
			if err != nil {
				return err
			}
			defer engineCleanup()

			store, storeCleanup, err := newCacheStore(ctx, settings)
			if err != nil {
				return err
			}
			defer storeCleanup()

			coordinator, err := cache.New(e, store, settings.CacheTTL, e.RuleSetVersion)
			if err != nil {
				return err
			}

			requests, err := readRequestLines(args[0])
			if err != nil {
				return err
			}
			if len(requests) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No requests to process.")
				return nil
			}

			out, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create output %s: %w", outPath, err)
			}
			defer func() { _ = out.Close() }()

			writer := bufio.NewWriter(out)
			encoder := json.NewEncoder(writer)

			bar := progressbar.NewOptions(len(requests),
				progressbar.OptionSetDescription("Deriving readings"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)

			var failed int
			for i, req := range requests {
				reading, err := coordinator.Reading(ctx, req.toDeriveRequest(settings))
				if err != nil {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					failed++
					fmt.Fprintf(os.Stderr, "request %d: %v\n", i+1, err)
					_ = bar.Add(1)
					continue
				}
				if err := encoder.Encode(reading); err != nil {
					return fmt.Errorf("write reading %d: %w", i+1, err)
				}
				_ = bar.Add(1)
			}
			if err := writer.Flush(); err != nil {
				return fmt.Errorf("flush output %s: %w", outPath, err)
			}
			_ = bar.Finish()

			fmt.Fprintf(cmd.OutOrStdout(), "Derived %d readings to %s",
				len(requests)-failed, outPath)
			if failed > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), " (%d failed)", failed)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "readings.jsonl", "output file, one reading per line")
	return cmd
}

// readRequestLines parses a JSONL file of derivation requests. Blank
// lines are skipped; a malformed line fails the whole batch with its
// line number so the file can be fixed before anything is derived.
func readRequestLines(path string) ([]*requestFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open requests %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var requests []*requestFile
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Bytes()
		if len(text) == 0 {
			continue
		}
		var req requestFile
		if err := json.Unmarshal(text, &req); err != nil {
			return nil, fmt.Errorf("parse %s line %d: %w", path, line, err)
		}
		requests = append(requests, &req)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read requests %s: %w", path, err)
	}
	return requests, nil
}
