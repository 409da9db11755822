// Package testutil provides mock implementations of the compiler's host
// adapter interfaces (artifact.ResolveRefsFunc, artifact.FetchArtifactFunc)
// for testing the pipeline driver without a real artifact store.
package testutil

import (
	"context"
	"sync"

	"github.com/kilnhq/promptc/pkg/promptspec"
)

// MockResolver is a mock implementation of artifact.ResolveRefsFunc.
type MockResolver struct {
	ResolveFunc func(ctx context.Context, names []string) ([]promptspec.ArtifactRef, error)

	mu    sync.Mutex
	Calls [][]string
}

// Resolve satisfies artifact.ResolveRefsFunc, recording the call before
// delegating to ResolveFunc. With no ResolveFunc set, every name resolves
// to itself as both id and name.
func (m *MockResolver) Resolve(ctx context.Context, names []string) ([]promptspec.ArtifactRef, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, append([]string(nil), names...))
	m.mu.Unlock()

	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, names)
	}

	refs := make([]promptspec.ArtifactRef, len(names))
	for i, n := range names {
		refs[i] = promptspec.ArtifactRef{Raw: "@" + n, ArtifactID: n, ArtifactName: n, Resolved: true}
	}
	return refs, nil
}

// CallCount returns how many times Resolve has been invoked.
func (m *MockResolver) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockFetcher is a mock implementation of artifact.FetchArtifactFunc.
type MockFetcher struct {
	FetchFunc func(ctx context.Context, id string) (*promptspec.Artifact, error)
	Artifacts map[string]*promptspec.Artifact

	mu    sync.Mutex
	Calls []string
}

// Fetch satisfies artifact.FetchArtifactFunc, recording the call before
// delegating to FetchFunc, or else looking id up in Artifacts.
func (m *MockFetcher) Fetch(ctx context.Context, id string) (*promptspec.Artifact, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, id)
	m.mu.Unlock()

	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, id)
	}
	return m.Artifacts[id], nil
}

// CallCount returns how many times Fetch has been invoked.
func (m *MockFetcher) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
