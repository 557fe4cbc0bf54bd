package registry

import "context"

// MockRegistry is a Registry for tests.
type MockRegistry struct {
	PublishedFn func(ctx context.Context, name, version string) (bool, error)

	// Queries records every name@version looked up.
	Queries []string
}

var _ Registry = (*MockRegistry)(nil)

// Published implements Registry.
func (m *MockRegistry) Published(ctx context.Context, name, version string) (bool, error) {
	m.Queries = append(m.Queries, name+"@"+version)
	if m.PublishedFn != nil {
		return m.PublishedFn(ctx, name, version)
	}
	return false, nil
}
