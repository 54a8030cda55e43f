package snippet

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockAdapter is a testify mock implementation of Adapter
type MockAdapter struct {
	mock.Mock
}

func (m *MockAdapter) Save(ctx context.Context, s Snippet) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockAdapter) GetAll(ctx context.Context) ([]Snippet, error) {
	args := m.Called(ctx)
	snippets, _ := args.Get(0).([]Snippet)
	return snippets, args.Error(1)
}

func (m *MockAdapter) GetByID(ctx context.Context, id string) (*Snippet, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*Snippet)
	return s, args.Error(1)
}

func (m *MockAdapter) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAdapter) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
