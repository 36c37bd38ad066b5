package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// TurnRecord is one row of the turn journal.
// Error is empty for turns that produced an action.
type TurnRecord struct {
	Player       int32  `parquet:"player"`
	Step         int32  `parquet:"step"`
	X            int32  `parquet:"x"`
	Y            int32  `parquet:"y"`
	Energy       int32  `parquet:"energy"`
	Lighthouses  int32  `parquet:"lighthouses"`
	Action       string `parquet:"action,dict"`
	DestX        int32  `parquet:"dest_x"`
	DestY        int32  `parquet:"dest_y"`
	AttackEnergy int32  `parquet:"attack_energy"`
	DurationNs   int64  `parquet:"duration_ns"`
	Error        string `parquet:"error,optional"`
}

type Writer struct {
	path string
}

func NewWriter(path string) (*Writer, error) {
	if path == "" {
		return nil, fmt.Errorf("journal path is empty")
	}
	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &Writer{path: path}, nil
}

func (w *Writer) Path() string {
	return w.path
}

func NewTurnRecords(session SessionMetric, turns []TurnMetric) []TurnRecord {
	records := make([]TurnRecord, 0, len(turns))
	for _, t := range turns {
		record := TurnRecord{
			Player:      int32(session.Player),
			Step:        int32(t.Step),
			X:           int32(t.Position.X),
			Y:           int32(t.Position.Y),
			Energy:      int32(t.Energy),
			Lighthouses: int32(t.Lighthouses),
			DurationNs:  t.Duration.Nanoseconds(),
		}
		if t.Err != nil {
			record.Error = t.Err.Error()
		} else {
			record.Action = t.Action.Type.String()
			record.DestX = int32(t.Action.Destination.X)
			record.DestY = int32(t.Action.Destination.Y)
			record.AttackEnergy = int32(t.Action.Energy)
		}
		records = append(records, record)
	}
	return records
}

// WriteTurnRecords writes the journal to a temp file and renames it into place.
func (w *Writer) WriteTurnRecords(records []TurnRecord) error {
	tmpPath := w.path + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, records,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "turn_journal_v1"),
	); err != nil {
		return fmt.Errorf("failed to write turn records: %w", err)
	}
	if err := os.Rename(tmpPath, w.path); err != nil {
		return fmt.Errorf("failed to rename turn journal: %w", err)
	}
	return nil
}

func ReadTurnRecords(path string) ([]TurnRecord, error) {
	records, err := parquet.ReadFile[TurnRecord](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read turn records: %w", err)
	}
	return records, nil
}
