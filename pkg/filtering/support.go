package filtering

import (
	"github.com/ajxudir/supportreport/pkg/analysis"
	"github.com/ajxudir/supportreport/pkg/blacklist"
	"github.com/ajxudir/supportreport/pkg/constants"
)

// Options controls how procedures are counted.
//
// Fields:
//   - Feature: Interestingness tag counted in SupportedWithFeature; empty means constants.DefaultFeature
//   - FeatureRequiresSupported: Also require an empty restriction list for the feature count
//   - Dedupe: Count each fully-qualified path at most once
type Options struct {
	Feature                  string
	FeatureRequiresSupported bool
	Dedupe                   bool
}

// DefaultOptions returns the options matching the built-in configuration.
func DefaultOptions() Options {
	return Options{Feature: constants.DefaultFeature}
}

// Counts holds the three numbers reported for a package.
type Counts struct {
	All                  int
	Supported            int
	SupportedWithFeature int
}

// Compute derives the support counts of one package.
//
// It performs the following operations:
//   - Step 1: Optionally collapses repeated paths
//   - Step 2: Collects unrestricted procedures and feature-tagged procedures
//   - Step 3: Subtracts the blacklist from both candidate lists
//
// Parameters:
//   - procedures: Procedures of the package, in artifact order
//   - bl: Global blacklist
//   - opts: Counting options
//
// Returns:
//   - Counts: Procedure, supported and supported-with-feature counts
func Compute(procedures []analysis.Procedure, bl blacklist.Blacklist, opts Options) Counts {
	feature := opts.Feature
	if feature == "" {
		feature = constants.DefaultFeature
	}

	if opts.Dedupe {
		procedures = dedupe(procedures)
	}

	var supported, featured []string
	for _, p := range procedures {
		if p.IsSupported() {
			supported = append(supported, p.Path)
		}
		if p.HasTag(feature) && (!opts.FeatureRequiresSupported || p.IsSupported()) {
			featured = append(featured, p.Path)
		}
	}

	return Counts{
		All:                  len(procedures),
		Supported:            len(Subtract(supported, bl)),
		SupportedWithFeature: len(Subtract(featured, bl)),
	}
}

// Subtract returns the candidates that are not in the blacklist.
//
// Candidate order and multiplicity are preserved.
//
// Parameters:
//   - candidates: Fully-qualified paths
//   - bl: Paths to exclude
//
// Returns:
//   - []string: candidates − bl
func Subtract(candidates []string, bl blacklist.Blacklist) []string {
	kept := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if !bl.Contains(c) {
			kept = append(kept, c)
		}
	}
	return kept
}

// dedupe keeps the first occurrence of every path.
//
// When a path repeats, the first record wins; later records with different
// restrictions or tags are ignored.
func dedupe(procedures []analysis.Procedure) []analysis.Procedure {
	seen := make(map[string]struct{}, len(procedures))
	out := make([]analysis.Procedure, 0, len(procedures))
	for _, p := range procedures {
		if _, ok := seen[p.Path]; ok {
			continue
		}
		seen[p.Path] = struct{}{}
		out = append(out, p)
	}
	return out
}
