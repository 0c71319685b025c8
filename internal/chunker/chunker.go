// Package chunker slices extracted report text into overlapping windows.
package chunker

import (
	"regexp"

	"go.uber.org/zap"

	"github.com/marketbench/quizgen-cli/internal/model"
)

// Config controls chunking behavior.
type Config struct {
	ChunkSize    int // Window length in runes.
	ChunkOverlap int // Overlap between consecutive windows in runes.
	MinChunk     int // Windows shorter than this are dropped.
}

// DefaultConfig returns the standard window geometry.
func DefaultConfig() Config {
	return Config{
		ChunkSize:    1500,
		ChunkOverlap: 200,
		MinChunk:     100,
	}
}

// yearRe finds a report year like "2023" in a filename.
var yearRe = regexp.MustCompile(`20\d{2}`)

// ReportYear extracts the report year from a filename, defaulting to "2024".
func ReportYear(filename string) string {
	if m := yearRe.FindString(filename); m != "" {
		return m
	}
	return "2024"
}

// Split produces the ordered chunk sequence for one document. Chunk ids are
// 1-based and local to the document; the same input always yields the same
// sequence.
func Split(text string, ref model.PdfReference, company string, cfg Config) []model.Chunk {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 1500
	}
	if cfg.ChunkOverlap <= 0 {
		cfg.ChunkOverlap = 200
	}
	if cfg.MinChunk <= 0 {
		cfg.MinChunk = 100
	}

	if text == "" {
		zap.L().Warn("no text content to create chunks from", zap.String("file", ref.Filename))
		return nil
	}

	year := ReportYear(ref.Filename)
	runes := []rune(text)
	stride := cfg.ChunkSize - cfg.ChunkOverlap

	var chunks []model.Chunk
	for i := 0; i < len(runes); i += stride {
		end := i + cfg.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}
		window := runes[i:end]
		if len(window) < cfg.MinChunk {
			continue
		}
		chunks = append(chunks, model.Chunk{
			Text:       string(window),
			ID:         len(chunks) + 1,
			SourceFile: ref.Filename,
			Company:    company,
			Country:    ref.Country,
			ReportYear: year,
		})
	}

	zap.L().Debug("created chunks",
		zap.String("file", ref.Filename),
		zap.Int("chunks", len(chunks)),
	)
	return chunks
}
