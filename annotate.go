package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/9seconds/zonographer/csvio"
	"github.com/9seconds/zonographer/zonelib"
	"github.com/paulmach/orb"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

func runAnnotate(configPath, inputPath, outputPath string, appLog zerolog.Logger) error {
	conf, err := parseConfig(configPath)
	if err != nil {
		return fmt.Errorf("cannot parse config: %w", err)
	}

	ctx, cancel := makeRootContext()
	defer cancel()

	fs := afero.NewOsFs()

	zono, err := makeZonographer(conf, fs, newLogger())
	if err != nil {
		return fmt.Errorf("cannot create zonographer: %w", err)
	}

	defer zono.Shutdown()

	if outputPath == "" {
		outputPath = inputPath
	}

	stats, err := annotateFile(ctx, fs, zono, inputPath, outputPath)
	if err != nil {
		return err
	}

	appLog.Info().
		Str("input", inputPath).
		Str("output", outputPath).
		Int("records", stats.records).
		Int("exact", stats.exact).
		Int("fallback", stats.fallback).
		Int("unmatched", stats.records-stats.exact-stats.fallback).
		Msg("File is annotated")

	return nil
}

type annotateStats struct {
	records  int
	exact    int
	fallback int
}

type batchResolver interface {
	ResolveAll(context.Context, []orb.Point) ([]zonelib.ResolveResult, error)
}

// annotateFile writes into a temporary file in the output directory and
// renames it at the end. Output path may be the same as input one.
func annotateFile(ctx context.Context, fs afero.Fs, resolver batchResolver,
	inputPath, outputPath string) (annotateStats, error) {
	stats := annotateStats{}

	header, records, err := readCSV(fs, inputPath)
	if err != nil {
		return stats, err
	}

	points := make([]orb.Point, len(records))

	for i, v := range records {
		points[i] = v.Point
	}

	results, err := resolver.ResolveAll(ctx, points)
	if err != nil {
		return stats, fmt.Errorf("cannot resolve points: %w", err)
	}

	tmpFile, err := afero.TempFile(fs, filepath.Dir(outputPath), "."+filepath.Base(outputPath)+".")
	if err != nil {
		return stats, fmt.Errorf("cannot create a temporary file: %w", err)
	}

	defer fs.Remove(tmpFile.Name()) // nolint: errcheck

	if err := writeCSV(tmpFile, header, records, results); err != nil {
		tmpFile.Close()

		return stats, err
	}

	if err := tmpFile.Close(); err != nil {
		return stats, fmt.Errorf("cannot close a temporary file: %w", err)
	}

	if err := fs.Rename(tmpFile.Name(), outputPath); err != nil {
		return stats, fmt.Errorf("cannot move a temporary file to %s: %w", outputPath, err)
	}

	stats.records = len(results)

	for _, v := range results {
		switch v.Method {
		case zonelib.MethodExact:
			stats.exact++
		case zonelib.MethodFallback:
			stats.fallback++
		}
	}

	return stats, nil
}

func readCSV(fs afero.Fs, path string) ([]string, []*csvio.Record, error) {
	fp, err := fs.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open %s: %w", path, err)
	}

	defer fp.Close()

	reader := csvio.NewReader(fp)

	header, err := reader.Header()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	return header, records, nil
}

func writeCSV(writer io.Writer, header []string, records []*csvio.Record, results []zonelib.ResolveResult) error {
	csvWriter := csvio.NewWriter(writer)

	if err := csvWriter.WriteHeader(header); err != nil {
		return err
	}

	for i, v := range records {
		if err := csvWriter.Write(v, results[i]); err != nil {
			return err
		}
	}

	if err := csvWriter.Flush(); err != nil {
		return fmt.Errorf("cannot flush csv: %w", err)
	}

	return nil
}
