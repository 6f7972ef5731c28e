// Package export writes the kept score list to columnar files for offline
// analysis.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

// SchemaVersion is stored in the file metadata under the "schema" key.
const SchemaVersion = "snake_score_v1"

// ScoreRow is one score record as stored in Parquet.
type ScoreRow struct {
	Rank       int32  `parquet:"rank"`
	RunID      string `parquet:"run_id"`
	Name       string `parquet:"name,dict"`
	Score      int32  `parquet:"score"`
	DurationMS int64  `parquet:"duration_ms"`
	PlayedAt   int64  `parquet:"played_at_unix_ms"`
}

// Rows converts records, already in rank order, to Parquet rows.
func Rows(records []storage.ScoreRecord) []ScoreRow {
	rows := make([]ScoreRow, len(records))
	for i, r := range records {
		rows[i] = ScoreRow{
			Rank:       int32(i + 1),
			RunID:      r.RunID,
			Name:       r.Name,
			Score:      int32(r.Score),
			DurationMS: r.Duration.Milliseconds(),
			PlayedAt:   r.When.UnixMilli(),
		}
	}
	return rows
}

// Record converts a row back to a score record.
func (r ScoreRow) Record() storage.ScoreRecord {
	return storage.ScoreRecord{
		RunID:    r.RunID,
		Name:     r.Name,
		Score:    int(r.Score),
		Duration: time.Duration(r.DurationMS) * time.Millisecond,
		When:     time.UnixMilli(r.PlayedAt).UTC(),
	}
}

// WriteScores writes records to outPath. The file is written next to the
// target and renamed into place so readers never see a partial file.
func WriteScores(outPath string, records []storage.ScoreRecord) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("export: create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, Rows(records),
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", SchemaVersion),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("export: write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("export: rename parquet: %w", err)
	}
	return nil
}

// ReadScores reads a file written by WriteScores.
func ReadScores(path string) ([]storage.ScoreRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("export: open: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("export: stat: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("export: open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[ScoreRow](pf)
	defer reader.Close()

	rows := make([]ScoreRow, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("export: read rows: %w", err)
	}

	records := make([]storage.ScoreRecord, 0, n)
	for _, row := range rows[:n] {
		records = append(records, row.Record())
	}
	return records, nil
}
