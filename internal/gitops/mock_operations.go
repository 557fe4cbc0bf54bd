package gitops

import "context"

// MockOperations is a mock implementation of Operations for testing.
// Calls records the method names in invocation order.
type MockOperations struct {
	HasChangesFn         func(ctx context.Context) (bool, error)
	StageAllFn           func(ctx context.Context) error
	CommitFn             func(ctx context.Context, message string) error
	FetchTagsFn          func(ctx context.Context, remote string) error
	TagExistsFn          func(ctx context.Context, name string) (bool, error)
	CreateAnnotatedTagFn func(ctx context.Context, name, message string) error
	PushTagFn            func(ctx context.Context, remote, name string) error

	Calls []string
}

var _ Operations = (*MockOperations)(nil)

// HasChanges implements Operations.
func (m *MockOperations) HasChanges(ctx context.Context) (bool, error) {
	m.Calls = append(m.Calls, "HasChanges")
	if m.HasChangesFn != nil {
		return m.HasChangesFn(ctx)
	}
	return false, nil
}

// StageAll implements Operations.
func (m *MockOperations) StageAll(ctx context.Context) error {
	m.Calls = append(m.Calls, "StageAll")
	if m.StageAllFn != nil {
		return m.StageAllFn(ctx)
	}
	return nil
}

// Commit implements Operations.
func (m *MockOperations) Commit(ctx context.Context, message string) error {
	m.Calls = append(m.Calls, "Commit")
	if m.CommitFn != nil {
		return m.CommitFn(ctx, message)
	}
	return nil
}

// FetchTags implements Operations.
func (m *MockOperations) FetchTags(ctx context.Context, remote string) error {
	m.Calls = append(m.Calls, "FetchTags")
	if m.FetchTagsFn != nil {
		return m.FetchTagsFn(ctx, remote)
	}
	return nil
}

// TagExists implements Operations.
func (m *MockOperations) TagExists(ctx context.Context, name string) (bool, error) {
	m.Calls = append(m.Calls, "TagExists")
	if m.TagExistsFn != nil {
		return m.TagExistsFn(ctx, name)
	}
	return false, nil
}

// CreateAnnotatedTag implements Operations.
func (m *MockOperations) CreateAnnotatedTag(ctx context.Context, name, message string) error {
	m.Calls = append(m.Calls, "CreateAnnotatedTag")
	if m.CreateAnnotatedTagFn != nil {
		return m.CreateAnnotatedTagFn(ctx, name, message)
	}
	return nil
}

// PushTag implements Operations.
func (m *MockOperations) PushTag(ctx context.Context, remote, name string) error {
	m.Calls = append(m.Calls, "PushTag")
	if m.PushTagFn != nil {
		return m.PushTagFn(ctx, remote, name)
	}
	return nil
}
