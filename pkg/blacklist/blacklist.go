// Package blacklist loads the global set of fully-qualified identifiers that
// are never counted as supported.
package blacklist

import (
	"sort"

	"github.com/ajxudir/supportreport/pkg/errors"
	"github.com/ajxudir/supportreport/pkg/utils"
	"github.com/ajxudir/supportreport/pkg/verbose"
)

// Blacklist is an immutable set of fully-qualified identifiers.
//
// The zero value is an empty blacklist. Membership does not depend on the
// order in which identifiers were listed.
type Blacklist struct {
	entries map[string]struct{}
}

// New builds a blacklist from identifiers. Duplicates collapse.
//
// Parameters:
//   - ids: Fully-qualified identifiers
//
// Returns:
//   - Blacklist: The resulting set
func New(ids ...string) Blacklist {
	entries := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		entries[id] = struct{}{}
	}
	return Blacklist{entries: entries}
}

// Load reads a blacklist file, one fully-qualified identifier per line.
//
// Lines are trimmed; blank lines and '#' comments are ignored. The file
// does not need to be sorted.
//
// Parameters:
//   - path: Path to the blacklist file
//
// Returns:
//   - Blacklist: The loaded set
//   - error: *errors.ConfigError when the file is missing or unreadable
func Load(path string) (Blacklist, error) {
	lines, err := utils.ReadLines(path)
	if err != nil {
		return Blacklist{}, errors.NewConfigError("blacklist", path, err)
	}

	bl := New(lines...)
	if dups := len(lines) - bl.Len(); dups > 0 {
		verbose.Printf("Blacklist %s: %d duplicate entries collapsed", path, dups)
	}
	verbose.Printf("Blacklist %s: %d identifiers", path, bl.Len())
	return bl, nil
}

// Contains reports whether id is blacklisted.
func (b Blacklist) Contains(id string) bool {
	_, ok := b.entries[id]
	return ok
}

// Len returns the number of distinct identifiers.
func (b Blacklist) Len() int {
	return len(b.entries)
}

// Sorted returns the identifiers in ascending order.
func (b Blacklist) Sorted() []string {
	ids := make([]string, 0, len(b.entries))
	for id := range b.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
