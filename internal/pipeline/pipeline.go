// Package pipeline runs one county extraction from input files to output documents.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"countygraph/internal/config"
	"countygraph/internal/formatter"
	"countygraph/internal/logger"
	"countygraph/internal/normalizer"
	"countygraph/internal/owners"
	"countygraph/internal/source"
	"countygraph/internal/source/parsers"
	"countygraph/internal/validator"
	"countygraph/internal/writer"
	"countygraph/pkg/metadata"
)

// Options locates the input and output of a run.
type Options struct {
	InputDir   string
	OutputDir  string
	ReportPath string
}

// Summary describes a finished run.
type Summary struct {
	RunID  string
	Report *formatter.Report
	Write  *writer.WriteResult
}

// Pipeline extracts one county.
type Pipeline struct {
	profile *config.CountyProfile
	opts    Options
	log     *logger.Logger
}

// New creates a pipeline for profile.
func New(profile *config.CountyProfile, opts Options, log *logger.Logger) *Pipeline {
	if opts.InputDir == "" {
		opts.InputDir = "."
	}

	if opts.OutputDir == "" {
		opts.OutputDir = "data"
	}

	return &Pipeline{profile: profile, opts: opts, log: log}
}

// OwnerOptions converts a county's name settings into parser options.
func OwnerOptions(names config.NameConfig) owners.Options {
	opts := owners.DefaultOptions()
	opts.ExtraCompanyKeywords = names.CompanyKeywords
	opts.SuffixTokens = names.SuffixTokens
	opts.Prefixes = names.Prefixes
	opts.Suffixes = names.Suffixes
	opts.NamePattern = names.NamePattern

	if names.CompanyCasing != "" {
		opts.CompanyCasing = names.CompanyCasing
	}

	if names.SharedSurnameSplit != nil {
		opts.SharedSurnameSplit = *names.SharedSurnameSplit
	}

	if names.SplitOnComma != nil {
		opts.SplitOnComma = *names.SplitOnComma
	}

	return opts
}

// Run executes the extraction. Schema violations are returned as
// *validator.SchemaError. Files written before a failure are left in place.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	started := time.Now()
	runID := uuid.NewString()
	log := p.log.With("run_id", runID, "county", p.profile.Name)

	log.Info("starting extraction", "input", p.opts.InputDir, "output", p.opts.OutputDir)

	names, err := owners.NewParser(OwnerOptions(p.profile.Names))
	if err != nil {
		return nil, fmt.Errorf("invalid name settings: %w", err)
	}

	docParser, err := parsers.New(p.profile)
	if err != nil {
		return nil, err
	}

	in, err := source.NewLoader(p.opts.InputDir, p.profile, log).Load()
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := docParser.Parse(in.Document)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", in.DocumentPath, err)
	}

	rec := &normalizer.Record{
		Document: doc,
		Seed:     in.Seed,
		Address:  in.Address,
	}

	issues := in.Issues
	parcelID := strings.TrimSpace(rec.ParcelID())

	rec.Owners, err = in.Owners.Owners(parcelID)
	if err != nil {
		log.Warn("ignoring malformed owner data", "error", err)
		issues.Warn(validator.CodeMissingSidecar, filepath.Join(source.OwnersDir, source.OwnerDataFile), "", "owner data could not be decoded; no owners extracted")
	}

	sidecars := []struct {
		name   string
		from   *source.Sidecar
		target *[]map[string]any
	}{
		{source.UtilitiesFile, in.Utilities, &rec.Utilities},
		{source.LayoutFile, in.Layouts, &rec.Layouts},
		{source.StructureFile, in.Structures, &rec.Structures},
	}

	for _, sc := range sidecars {
		records, err := sc.from.Records(parcelID)
		if err != nil {
			log.Warn("ignoring malformed sidecar records", "file", sc.name, "error", err)
			continue
		}

		*sc.target = records
	}

	result, err := normalizer.NewProcessor(p.profile, names).Process(rec)
	if err != nil {
		return nil, err
	}

	issues.Merge(result.Issues)

	for _, issue := range issues.Issues {
		log.Warn(issue.Message, "code", issue.Code, "path", issue.Path, "value", issue.Value, "hint", issue.Hint)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sink, err := writer.NewDirSink(p.opts.OutputDir)
	if err != nil {
		return nil, err
	}

	written, err := writer.NewWriter(sink, log, writer.Options{Clean: p.profile.CleanOutput}).Write(result.Graph)
	if err != nil {
		return nil, err
	}

	report := &formatter.Report{
		RunID:         runID,
		County:        p.profile.Name,
		ParcelID:      parcelID,
		OutputDir:     p.opts.OutputDir,
		StartedAt:     started,
		Duration:      time.Since(started),
		EntityCounts:  entityCounts(result),
		Relationships: written.Relationships,
		Issues:        issues,
	}

	if p.opts.ReportPath != "" {
		signed := metadata.Sign(report.Markdown(), metadata.Metadata{
			RunID:     runID,
			County:    p.profile.Name,
			Generated: started,
			Clean:     issues.Len() == 0,
		})

		if err := os.WriteFile(p.opts.ReportPath, []byte(signed), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write report: %w", err)
		}
	}

	log.Info("extraction complete",
		"entities", written.Entities,
		"relationships", written.Relationships,
		"warnings", issues.Len(),
		"duration", report.Duration)

	return &Summary{RunID: runID, Report: report, Write: written}, nil
}

func entityCounts(result *normalizer.Result) map[string]int {
	kinds := []string{
		normalizer.KindProperty, normalizer.KindAddress, normalizer.KindLot,
		normalizer.KindMailingAddress, owners.RefPerson, owners.RefCompany,
		normalizer.KindSalesHistory, normalizer.KindDeed, normalizer.KindFile,
		normalizer.KindTax, normalizer.KindStructure, normalizer.KindUtility,
		normalizer.KindLayout,
	}

	counts := make(map[string]int, len(kinds))

	for _, kind := range kinds {
		if n := result.Graph.CountKind(kind); n > 0 {
			counts[kind] = n
		}
	}

	return counts
}
