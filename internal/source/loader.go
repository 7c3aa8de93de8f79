// Package source loads the input files of one county extraction run.
package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"countygraph/internal/config"
	"countygraph/internal/logger"
	"countygraph/internal/models"
	"countygraph/internal/validator"
)

// Input file names, relative to the input directory.
const (
	HTMLFile       = "input.html"
	JSONFile       = "input.json"
	AddressFile    = "unnormalized_address.json"
	SeedFile       = "property_seed.json"
	ParcelFile     = "parcel.json"
	OwnersDir      = "owners"
	OwnerDataFile  = "owner_data.json"
	UtilitiesFile  = "utilities_data.json"
	LayoutFile     = "layout_data.json"
	StructureFile  = "structure_data.json"
	sidecarKeyBase = "property_"
)

// Loader errors.
var (
	ErrMissingInput   = errors.New("county document not found")
	ErrMissingAddress = errors.New("unnormalized_address.json is required for this county")
)

// Input is everything read from the input directory.
type Input struct {
	Document     []byte
	DocumentPath string
	Seed         *models.Seed
	Address      *models.UnnormalizedAddress
	Owners       *Sidecar
	Utilities    *Sidecar
	Layouts      *Sidecar
	Structures   *Sidecar
	Issues       validator.Result
}

// Loader reads the input files of one county.
type Loader struct {
	dir     string
	profile *config.CountyProfile
	log     *logger.Logger
}

// NewLoader creates a loader for dir.
func NewLoader(dir string, profile *config.CountyProfile, log *logger.Logger) *Loader {
	return &Loader{dir: dir, profile: profile, log: log}
}

// Load reads the county document and every sidecar. Only the document, and the
// address file when the profile requires it, are mandatory.
func (l *Loader) Load() (*Input, error) {
	in := &Input{}

	name := HTMLFile
	if l.profile.Format == config.FormatJSON {
		name = JSONFile
	}

	in.DocumentPath = filepath.Join(l.dir, name)

	content, size, duration, err := l.ReadLocalFileWithMetrics(in.DocumentPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, in.DocumentPath)
		}

		return nil, err
	}

	in.Document = content
	l.log.Debug("read county document", "path", in.DocumentPath, "bytes", size, "duration", duration)

	var addr models.UnnormalizedAddress

	found, err := l.readJSON(AddressFile, &addr)

	switch {
	case err != nil && l.profile.AddressFileRequired:
		return nil, err
	case err != nil:
		l.log.Warn("ignoring unreadable address file", "error", err)
		in.Issues.Warn(validator.CodeMissingSidecar, AddressFile, "", "address file unreadable; address fields left empty")
	case found:
		in.Address = &addr
	case l.profile.AddressFileRequired:
		return nil, ErrMissingAddress
	default:
		in.Issues.Warn(validator.CodeMissingSidecar, AddressFile, "", "address file not found; address fields left empty")
	}

	for _, seedName := range []string{SeedFile, ParcelFile} {
		var seed models.Seed

		ok, err := l.readJSON(seedName, &seed)
		if err != nil {
			l.log.Warn("ignoring unreadable seed file", "file", seedName, "error", err)
			continue
		}

		if ok {
			in.Seed = &seed
			break
		}
	}

	sidecars := []struct {
		name   string
		target **Sidecar
	}{
		{OwnerDataFile, &in.Owners},
		{UtilitiesFile, &in.Utilities},
		{LayoutFile, &in.Layouts},
		{StructureFile, &in.Structures},
	}

	for _, sc := range sidecars {
		path := filepath.Join(l.dir, OwnersDir, sc.name)

		data, err := os.ReadFile(path)
		if err != nil {
			l.log.Debug("sidecar not available", "file", path, "error", err)
			in.Issues.Warn(validator.CodeMissingSidecar, filepath.Join(OwnersDir, sc.name), "", "sidecar not found; nothing extracted from it")

			continue
		}

		sidecar, err := ParseSidecar(data)
		if err != nil {
			l.log.Warn("ignoring malformed sidecar", "file", path, "error", err)
			in.Issues.Warn(validator.CodeMissingSidecar, filepath.Join(OwnersDir, sc.name), "", "sidecar is not a JSON object; ignored")

			continue
		}

		*sc.target = sidecar
	}

	return in, nil
}

// ReadLocalFileWithMetrics returns (content, fileSize, duration, error).
func (l *Loader) ReadLocalFileWithMetrics(filePath string) ([]byte, int64, time.Duration, error) {
	startTime := time.Now()

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, 0, time.Since(startTime), fmt.Errorf("failed to stat file %s: %w", filePath, err)
	}

	content, err := os.ReadFile(filePath)
	duration := time.Since(startTime)

	if err != nil {
		return nil, 0, duration, fmt.Errorf("failed to read local file %s: %w", filePath, err)
	}

	return content, fileInfo.Size(), duration, nil
}

// readJSON decodes name into v. A missing file is reported as found == false.
func (l *Loader) readJSON(name string, v any) (bool, error) {
	path := filepath.Join(l.dir, name)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to read local file %s: %w", path, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return true, nil
}

// SidecarKey returns the key under which sidecars store a parcel's record.
func SidecarKey(parcelID string) string {
	return sidecarKeyBase + parcelID
}
