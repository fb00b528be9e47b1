package message

import (
	"context"
	"fmt"

	"github.com/vitacare/hospital-api/internal/model"
	"github.com/vitacare/hospital-api/internal/repository"
	"github.com/vitacare/hospital-api/pkg/apperror"
)

type Service struct {
	repo repository.MessageRepository
}

func NewService(repo repository.MessageRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Send(ctx context.Context, req *model.SendMessageRequest) (*model.ContactMessage, error) {
	msg := &model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to save message: %w", err))
	}
	return msg, nil
}

func (s *Service) List(ctx context.Context) ([]*model.ContactMessage, error) {
	messages, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to list messages: %w", err))
	}
	return messages, nil
}
