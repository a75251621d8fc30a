package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ArtifactRelPath mirrors the default artifact location inside a crate directory.
const ArtifactRelPath = "source/prusti-filter-results.json"

// ProcedureBuilder provides a fluent API for building artifact entries.
type ProcedureBuilder struct {
	path         string
	restrictions []any
	interestings []string
}

// NewProcedure starts an unrestricted, untagged procedure with the given path.
func NewProcedure(path string) *ProcedureBuilder {
	return &ProcedureBuilder{path: path}
}

// Restricted adds a restriction with the given reason.
func (b *ProcedureBuilder) Restricted(reason string) *ProcedureBuilder {
	b.restrictions = append(b.restrictions, map[string]string{"reason": reason})
	return b
}

// Tagged adds interestingness tags.
func (b *ProcedureBuilder) Tagged(tags ...string) *ProcedureBuilder {
	b.interestings = append(b.interestings, tags...)
	return b
}

// entry renders the builder as one element of the artifact "functions" array.
func (b *ProcedureBuilder) entry() map[string]any {
	restrictions := b.restrictions
	if restrictions == nil {
		restrictions = []any{}
	}
	interestings := b.interestings
	if interestings == nil {
		interestings = []string{}
	}
	return map[string]any{
		"node_path": b.path,
		"procedure": map[string]any{
			"restrictions": restrictions,
			"interestings": interestings,
		},
	}
}

// ArtifactJSON renders procedures as an artifact document.
func ArtifactJSON(t *testing.T, procs ...*ProcedureBuilder) []byte {
	t.Helper()
	functions := make([]map[string]any, 0, len(procs))
	for _, p := range procs {
		functions = append(functions, p.entry())
	}
	data, err := json.MarshalIndent(map[string]any{"functions": functions}, "", "  ")
	if err != nil {
		t.Fatalf("marshal artifact: %v", err)
	}
	return data
}

// WriteCrate writes a crate directory with a well-formed artifact under root.
//
// Returns:
//   - string: the crate directory
func WriteCrate(t *testing.T, root, name string, procs ...*ProcedureBuilder) string {
	t.Helper()
	return WriteRawArtifact(t, root, name, ArtifactJSON(t, procs...))
}

// WriteRawArtifact writes arbitrary artifact bytes for a crate, for malformed cases.
func WriteRawArtifact(t *testing.T, root, name string, data []byte) string {
	t.Helper()
	dir := filepath.Join(root, name)
	path := filepath.Join(dir, filepath.FromSlash(ArtifactRelPath))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	return dir
}

// WriteList writes a plain-text list file (package names or blacklist entries).
func WriteList(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}
	return path
}
