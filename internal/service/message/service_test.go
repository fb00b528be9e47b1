package message

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitacare/hospital-api/internal/model"
)

type fakeMessageRepo struct {
	messages []*model.ContactMessage
}

func (r *fakeMessageRepo) Create(_ context.Context, msg *model.ContactMessage) error {
	msg.ID = uuid.New()
	r.messages = append(r.messages, msg)
	return nil
}

func (r *fakeMessageRepo) List(_ context.Context) ([]*model.ContactMessage, error) {
	return r.messages, nil
}

func TestSendAndList(t *testing.T) {
	repo := &fakeMessageRepo{}
	svc := NewService(repo)

	msg, err := svc.Send(context.Background(), &model.SendMessageRequest{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Message: "What are your opening hours?",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, msg.ID)

	messages, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "visitor@example.com", messages[0].Email)
}
