package notification

import "dealflow/pkg/logger"

// MockRepository logs instead of sending. Used when no email provider is
// configured (local development).
type MockRepository struct{}

func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

func (MockRepository) SendEmail(toName, toEmail, subject, message string) error {
	logger.Info("Mock email", "to", toEmail, "subject", subject)
	return nil
}
