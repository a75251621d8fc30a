// Package analysis reads the per-package artifacts written by the external
// static-analysis tool and turns them into procedure records.
package analysis

import (
	"encoding/json"
	"slices"
)

// Procedure is one analyzed procedure of a package.
//
// Fields:
//   - Path: Fully-qualified path, e.g. "serde::de::from_str"
//   - Restrictions: Reasons the tool does not fully support the procedure;
//     kept opaque because only emptiness matters here
//   - Interestings: Interestingness tags, e.g. "uses_assertions"
type Procedure struct {
	Path         string
	Restrictions []json.RawMessage
	Interestings []string
}

// IsSupported reports whether the procedure has no restrictions.
func (p Procedure) IsSupported() bool {
	return len(p.Restrictions) == 0
}

// HasTag reports whether the procedure carries the given interestingness tag.
func (p Procedure) HasTag(tag string) bool {
	return slices.Contains(p.Interestings, tag)
}

// Record is the full analysis output for one package, in artifact order.
//
// Fields:
//   - Source: Path of the artifact the record was read from
//   - Procedures: Procedures in the order the tool listed them
type Record struct {
	Source     string
	Procedures []Procedure
}

// artifactFile mirrors the JSON document written by the analysis tool.
type artifactFile struct {
	Functions []artifactFunction `json:"functions"`
}

type artifactFunction struct {
	NodePath  string            `json:"node_path"`
	Procedure artifactProcedure `json:"procedure"`
}

type artifactProcedure struct {
	Restrictions []json.RawMessage `json:"restrictions"`
	Interestings []string          `json:"interestings"`
}

func (f artifactFile) toRecord(source string) *Record {
	procs := make([]Procedure, 0, len(f.Functions))
	for _, fn := range f.Functions {
		procs = append(procs, Procedure{
			Path:         fn.NodePath,
			Restrictions: fn.Procedure.Restrictions,
			Interestings: fn.Procedure.Interestings,
		})
	}
	return &Record{Source: source, Procedures: procs}
}
