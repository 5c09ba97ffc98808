package messaging

import (
	"context"
	"testing"

	"kbtassist/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	if msg != nil {
		msg.ID = 1000
	}
	return args.Error(0)
}

func (m *MockMessageRepository) ListConversation(ctx context.Context, userA, userB int64) ([]domain.Message, error) {
	args := m.Called(ctx, userA, userB)
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *MockMessageRepository) MarkRead(ctx context.Context, recipientID, senderID int64) (int64, error) {
	args := m.Called(ctx, recipientID, senderID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageRepository) CountUnread(ctx context.Context, recipientID int64) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func TestService_SendMessage(t *testing.T) {
	messages := new(MockMessageRepository)
	users := new(MockUserReader)
	svc := NewService(messages, users, NewHub())

	users.On("GetByID", mock.Anything, int64(8)).Return(&domain.User{ID: 8}, nil)
	messages.On("Create", mock.Anything, mock.AnythingOfType("*domain.Message")).Return(nil)

	sender := domain.Principal{UserID: 7, Role: domain.RoleTenant}
	m, err := svc.SendMessage(context.Background(), sender, SendMessageRequest{
		RecipientID: 8,
		Content:     "Boiler fixed, thanks!",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), m.SenderID)
	assert.Equal(t, domain.VisibilityPrivate, m.Visibility)
}

func TestService_SendMessage_Rejections(t *testing.T) {
	messages := new(MockMessageRepository)
	users := new(MockUserReader)
	svc := NewService(messages, users, nil)

	sender := domain.Principal{UserID: 7, Role: domain.RoleTenant}

	_, err := svc.SendMessage(context.Background(), sender, SendMessageRequest{RecipientID: 8, Content: "  "})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.SendMessage(context.Background(), sender, SendMessageRequest{RecipientID: 7, Content: "hi"})
	assert.ErrorIs(t, err, ErrValidation, "cannot message yourself")

	users.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)
	_, err = svc.SendMessage(context.Background(), sender, SendMessageRequest{RecipientID: 99, Content: "hi"})
	assert.ErrorIs(t, err, ErrNotFound)

	messages.AssertNotCalled(t, "Create")
}

func TestService_MarkRead(t *testing.T) {
	messages := new(MockMessageRepository)
	svc := NewService(messages, new(MockUserReader), nil)

	messages.On("MarkRead", mock.Anything, int64(7), int64(8)).Return(int64(3), nil)

	recipient := domain.Principal{UserID: 7, Role: domain.RoleTenant}
	count, err := svc.MarkRead(context.Background(), recipient, 8)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestService_ListConversation_Validation(t *testing.T) {
	svc := NewService(new(MockMessageRepository), new(MockUserReader), nil)

	actor := domain.Principal{UserID: 7, Role: domain.RoleTenant}
	_, err := svc.ListConversation(context.Background(), actor, 7)
	assert.ErrorIs(t, err, ErrValidation)
}
