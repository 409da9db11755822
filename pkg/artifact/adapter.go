// Package artifact defines the host-supplied adapter contract (C3): the two
// async callbacks the pipeline driver uses to map textual "@name" handles
// to artifact records. The core never caches artifacts across
// compilations and never retains a reference to one past the compilation
// that fetched it.
package artifact

import (
	"context"

	"github.com/kilnhq/promptc/pkg/promptspec"
)

// ResolveRefsFunc maps raw artifact names to ArtifactRefs, one per input
// name, in the same order. It is invoked at most once per compilation, and
// only when there is at least one name to resolve.
type ResolveRefsFunc func(ctx context.Context, names []string) ([]promptspec.ArtifactRef, error)

// FetchArtifactFunc fetches a single artifact by id. A nil Artifact with a
// nil error means "not found" and is not itself an error (spec.md §4.9): it
// simply contributes zero blocks.
type FetchArtifactFunc func(ctx context.Context, id string) (*promptspec.Artifact, error)
