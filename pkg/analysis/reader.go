package analysis

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ajxudir/supportreport/pkg/constants"
	"github.com/ajxudir/supportreport/pkg/errors"
	"github.com/ajxudir/supportreport/pkg/verbose"
)

// DefaultMaxArtifactSize caps the size of a single artifact (256 MiB).
const DefaultMaxArtifactSize int64 = 256 << 20

// Reader loads analysis artifacts from package directories.
//
// Fields:
//   - ArtifactPath: Artifact location relative to the package directory
//   - MaxSize: Largest accepted artifact in bytes; 0 means DefaultMaxArtifactSize
type Reader struct {
	ArtifactPath string
	MaxSize      int64
}

// NewReader creates a Reader for the given relative artifact path.
// An empty path selects constants.DefaultArtifactPath.
func NewReader(artifactPath string, maxSize int64) *Reader {
	if artifactPath == "" {
		artifactPath = constants.DefaultArtifactPath
	}
	return &Reader{ArtifactPath: artifactPath, MaxSize: maxSize}
}

// Read loads the artifact of one package using the default size limit.
//
// Parameters:
//   - packageDir: Directory of the package
//   - artifactPath: Artifact location relative to packageDir
//
// Returns:
//   - *Record: The parsed record
//   - error: *errors.NotFoundError or *errors.ParseError
func Read(packageDir, artifactPath string) (*Record, error) {
	return NewReader(artifactPath, 0).Read(packageDir)
}

// Read loads and validates the artifact of one package.
//
// It performs the following operations:
//   - Step 1: Resolves the artifact path under packageDir
//   - Step 2: Rejects absent artifacts with NotFoundError
//   - Step 3: Rejects oversized or undecodable artifacts with ParseError
//   - Step 4: Validates the document against the artifact schema
//   - Step 5: Decodes it into procedure records
//
// Parameters:
//   - packageDir: Directory of the package
//
// Returns:
//   - *Record: The parsed record
//   - error: *errors.NotFoundError or *errors.ParseError
func (r *Reader) Read(packageDir string) (*Record, error) {
	path := filepath.Join(packageDir, r.ArtifactPath)

	info, err := os.Stat(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, &errors.NotFoundError{Path: path, Err: err}
		}
		return nil, &errors.ParseError{Path: path, Reason: "cannot stat artifact", Err: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &errors.ParseError{Path: path, Reason: "not a regular file"}
	}
	if limit := r.maxSize(); info.Size() > limit {
		return nil, &errors.ParseError{
			Path:   path,
			Reason: fmt.Sprintf("artifact too large: %d bytes (max %d bytes)", info.Size(), limit),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.ParseError{Path: path, Reason: "cannot read artifact", Err: err}
	}

	record, err := parse(path, data)
	if err != nil {
		return nil, err
	}
	verbose.Printf("Read %d procedures from %s", len(record.Procedures), path)
	return record, nil
}

func (r *Reader) maxSize() int64 {
	if r.MaxSize > 0 {
		return r.MaxSize
	}
	return DefaultMaxArtifactSize
}

// parse decodes raw artifact bytes. source is only used in errors and the record.
func parse(source string, data []byte) (*Record, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, &errors.ParseError{Path: source, Reason: "invalid JSON", Err: err}
	}
	if dec.More() {
		return nil, &errors.ParseError{Path: source, Reason: "invalid JSON: trailing data after document"}
	}

	violations, err := validateDocument(doc)
	if err != nil {
		return nil, &errors.ParseError{Path: source, Reason: "schema validation failed", Err: err}
	}
	if len(violations) > 0 {
		return nil, &errors.ParseError{
			Path:    source,
			Reason:  fmt.Sprintf("missing or invalid fields (%d violations, first: %s)", len(violations), violations[0]),
			Details: violations,
		}
	}

	var file artifactFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, &errors.ParseError{Path: source, Reason: "invalid JSON", Err: err}
	}
	return file.toRecord(source), nil
}
