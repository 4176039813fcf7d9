package core

import (
	"context"

	"github.com/stretchr/testify/mock"

	coreport "github.com/MrEisbear/Silk/internal/domain/port/core"
)

// MockWebhookNotifier is a mock implementation of the WebhookNotifier port
type MockWebhookNotifier struct {
	mock.Mock
}

func (m *MockWebhookNotifier) Notify(ctx context.Context, url string, notification coreport.WebhookNotification) error {
	args := m.Called(ctx, url, notification)
	return args.Error(0)
}
