// Package writer emits the entity graph as JSON documents.
package writer

import (
	"encoding/json"
	"fmt"

	"countygraph/internal/logger"
	"countygraph/internal/models"
)

// Writer serializes a graph into a sink.
type Writer struct {
	sink   Sink
	logger *logger.Logger
	clean  bool
}

// Options tunes a writer.
type Options struct {
	// Clean removes existing documents before writing.
	Clean bool
}

// NewWriter creates a writer.
func NewWriter(sink Sink, log *logger.Logger, opts Options) *Writer {
	return &Writer{sink: sink, logger: log, clean: opts.Clean}
}

// WriteResult contains the results of a write operation.
type WriteResult struct {
	Files         []string
	Entities      int
	Relationships int
}

// Write emits every entity as <ref>.json and every edge as a relationship file.
// It stops at the first failure; files already written stay in place.
func (w *Writer) Write(g *models.Graph) (*WriteResult, error) {
	if w.clean {
		if err := w.sink.Clean(); err != nil {
			return nil, err
		}

		w.logger.Debug("cleaned output")
	}

	result := &WriteResult{}

	for _, e := range g.Entities() {
		name := e.Ref.FileName()
		if err := w.writeJSON(name, e.Record); err != nil {
			return result, err
		}

		result.Files = append(result.Files, name)
		result.Entities++
	}

	for _, edge := range g.Edges() {
		name := edge.FileName()
		if err := w.writeJSON(name, edge.Relationship()); err != nil {
			return result, err
		}

		result.Files = append(result.Files, name)
		result.Relationships++
	}

	w.logger.Info("wrote output", "entities", result.Entities, "relationships", result.Relationships)

	return result, nil
}

func (w *Writer) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	return w.sink.WriteFile(name, append(data, '\n'))
}
