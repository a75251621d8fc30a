// Package filtering computes per-package support counts.
//
// The engine is pure: it takes the procedures of one package and the global
// blacklist and returns three counts. Blacklist exclusion is plain set
// subtraction on fully-qualified paths:
//
//	supported            = |{p : p.restrictions empty} − blacklist|
//	supportedWithFeature = |{p : p tagged with feature} − blacklist|
//
// Options.FeatureRequiresSupported narrows the feature candidates to
// procedures that are also unrestricted, making the third count a subset of
// the second. It is off by default.
//
// Counting keeps multiplicity: a path listed twice is counted twice unless
// Options.Dedupe is set.
package filtering
