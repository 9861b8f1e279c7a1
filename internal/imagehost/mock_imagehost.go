package imagehost

import (
	"context"
	"errors"
	"fmt"
)

// MockImageHost simulates the image host for testing.
type MockImageHost struct {
	Uploads    []string // uploaded file payloads
	Destroyed  []string // destroyed public ids
	ShouldFail bool     // flag to simulate failures
}

func NewMockImageHost() *MockImageHost {
	return &MockImageHost{}
}

func (m *MockImageHost) Upload(ctx context.Context, file string) (string, error) {
	if m.ShouldFail {
		return "", errors.New("mock: image upload failed")
	}
	m.Uploads = append(m.Uploads, file)
	return fmt.Sprintf("https://res.example.com/image/upload/v1/mock_%d.png", len(m.Uploads)), nil
}

func (m *MockImageHost) Destroy(ctx context.Context, publicID string) error {
	if m.ShouldFail {
		return errors.New("mock: image destroy failed")
	}
	m.Destroyed = append(m.Destroyed, publicID)
	return nil
}
