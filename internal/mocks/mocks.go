package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockImageStore is a mock implementation of service.ImageStore. The
// uploaded bytes are read and passed to Called as a string.
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) PutObject(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	args := m.Called(ctx, key, contentType, string(data))
	return args.String(0), args.Error(1)
}
