package models

import "sort"

// Discriminator identifies which attribute ruled out file equality
type Discriminator string

const (
	// DiscriminatorSize indicates the sizes differ
	DiscriminatorSize Discriminator = "size"
	// DiscriminatorDate indicates the modification dates differ
	DiscriminatorDate Discriminator = "date"
	// DiscriminatorChecksum indicates the content checksums differ
	DiscriminatorChecksum Discriminator = "checksum"
)

// PathSet is a set of relative path keys
type PathSet map[string]bool

// NewPathSet creates an empty path set
func NewPathSet() PathSet {
	return make(PathSet)
}

// Add inserts a path into the set
func (s PathSet) Add(path string) {
	s[path] = true
}

// Contains reports whether the set holds path
func (s PathSet) Contains(path string) bool {
	return s[path]
}

// Sorted returns the paths in lexical order
func (s PathSet) Sorted() []string {
	paths := make([]string, 0, len(s))
	for p := range s {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Conflict records one source path whose destination counterpart carries
// differing metadata, together with the attributes that mismatched.
type Conflict struct {
	RelativePath   string
	Discriminators []Discriminator
	Source         *FileInfo
	Dest           *FileInfo
}

// ReconciliationResult partitions the source path set of one comparison:
// every relative path present in the source scan lands in exactly one of
// ToCopy, ToSkip, or Conflicts. Paths that exist only in the destination
// appear in none of the sets; removing them is the transfer layer's
// delete option, not a comparison outcome.
type ReconciliationResult struct {
	// ToCopy holds source paths absent from the destination.
	ToCopy PathSet

	// ToSkip holds source paths whose destination counterpart is
	// considered identical.
	ToSkip PathSet

	// Conflicts holds source paths present on both sides with differing
	// metadata.
	Conflicts PathSet

	// Details records the mismatching attributes for each conflict,
	// keyed by relative path.
	Details map[string]*Conflict
}

// NewReconciliationResult creates an empty result
func NewReconciliationResult() *ReconciliationResult {
	return &ReconciliationResult{
		ToCopy:    NewPathSet(),
		ToSkip:    NewPathSet(),
		Conflicts: NewPathSet(),
		Details:   make(map[string]*Conflict),
	}
}

// AddConflict records a conflicting path with its discriminators
func (r *ReconciliationResult) AddConflict(src, dest *FileInfo, discriminators []Discriminator) {
	r.Conflicts.Add(src.RelativePath)
	r.Details[src.RelativePath] = &Conflict{
		RelativePath:   src.RelativePath,
		Discriminators: discriminators,
		Source:         src,
		Dest:           dest,
	}
}

// HasConflicts reports whether any source path conflicted
func (r *ReconciliationResult) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// Total returns the number of classified source paths
func (r *ReconciliationResult) Total() int {
	return len(r.ToCopy) + len(r.ToSkip) + len(r.Conflicts)
}
