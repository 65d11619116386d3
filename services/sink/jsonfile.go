package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ybelaid/dzadscraper/internal/record"
	"ybelaid/dzadscraper/internal/vertical"
	"ybelaid/dzadscraper/logger"
)

// JSONFile writes each batch as one timestamped JSON array per
// vertical. Files are UTF-8 with HTML escaping disabled so French text
// and URLs stay readable.
type JSONFile struct {
	outputDir string
	now       func() time.Time
	log       *logger.Logger
}

// NewJSONFile creates a JSON file sink rooted at outputDir.
func NewJSONFile(outputDir string) *JSONFile {
	return &JSONFile{
		outputDir: outputDir,
		now:       time.Now,
		log:       logger.ForSink("jsonfile"),
	}
}

func (j *JSONFile) Name() string { return "jsonfile" }

// Write groups the batch by vertical and writes one file per group.
func (j *JSONFile) Write(_ context.Context, records []*record.Record) error {
	if len(records) == 0 {
		return nil
	}
	if err := os.MkdirAll(j.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", j.outputDir, err)
	}

	groups := make(map[vertical.Vertical][]*record.Record)
	for _, r := range records {
		groups[r.Vertical] = append(groups[r.Vertical], r)
	}

	// One failing vertical group must not abandon the other groups.
	timestamp := j.now().Format("2006-01-02_15-04-05")
	var firstErr error
	for v, group := range groups {
		path := filepath.Join(j.outputDir, fmt.Sprintf("%s_%s.json", v, timestamp))
		if err := j.writeFile(path, group); err != nil {
			j.log.Warn().Str("vertical", string(v)).Err(err).Msg("Failed to write records")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		j.log.Info().
			Str("vertical", string(v)).
			Str("file", path).
			Int("records", len(group)).
			Msg("Wrote records")
	}
	return firstErr
}

func (j *JSONFile) writeFile(path string, records []*record.Record) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode records for %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (j *JSONFile) Close() error { return nil }
