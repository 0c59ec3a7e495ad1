package tickets

import (
	"context"
	"fmt"
	"pathsys-service/internal/app/contracts"
	"pathsys-service/internal/app/models"
	"pathsys-service/internal/app/services/core/consecutives"
	"pathsys-service/internal/pkg/constvars"
	"pathsys-service/internal/pkg/dto/requests"
	"pathsys-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type ticketUsecase struct {
	TicketRepository      TicketRepository
	ConsecutiveRepository consecutives.ConsecutiveRepository
	Notifier              contracts.Notifier
	Log                   *zap.Logger
}

func NewTicketUsecase(
	ticketRepository TicketRepository,
	consecutiveRepository consecutives.ConsecutiveRepository,
	notifier contracts.Notifier,
	logger *zap.Logger,
) TicketUsecase {
	return &ticketUsecase{
		TicketRepository:      ticketRepository,
		ConsecutiveRepository: consecutiveRepository,
		Notifier:              notifier,
		Log:                   logger,
	}
}

func (uc *ticketUsecase) CreateTicket(ctx context.Context, request *requests.CreateTicket, reportedBy string) (*models.Ticket, error) {
	now := time.Now().UTC()
	ticket := &models.Ticket{
		Title:       request.Title,
		Description: request.Description,
		Category:    request.Category,
		State:       constvars.TicketStateOpen,
		ReportedBy:  reportedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var lastErr error
	for attempt := 0; attempt < constvars.CaseCodeAllocationAttempts; attempt++ {
		n, err := uc.ConsecutiveRepository.Next(ctx, constvars.CounterKindTicket, now.Year())
		if err != nil {
			return nil, err
		}
		ticket.TicketCode = consecutives.FormatCode(constvars.CounterKindTicket, now.Year(), n)

		err = uc.TicketRepository.Insert(ctx, ticket)
		if err == nil {
			lastErr = nil
			break
		}
		if !exceptions.IsConflict(err) {
			return nil, err
		}
		lastErr = err
	}
	if lastErr != nil {
		return nil, lastErr
	}

	notification := contracts.Notification{
		Kind:      contracts.NotificationTicketCreated,
		Subject:   fmt.Sprintf("Support ticket %s opened", ticket.TicketCode),
		Body:      ticket.Title,
		Reference: ticket.TicketCode,
	}
	if err := uc.Notifier.Publish(ctx, notification); err != nil {
		uc.Log.Error("failed to publish ticket notification",
			zap.String(constvars.LoggingTicketCodeKey, ticket.TicketCode),
			zap.Error(err),
		)
	}

	return ticket, nil
}

func (uc *ticketUsecase) ListTickets(ctx context.Context, request *requests.ListTickets) ([]models.Ticket, int64, error) {
	filter := bson.M{}
	if request.State != "" {
		filter["state"] = request.State
	}

	limit := request.Limit
	if limit == 0 {
		limit = constvars.ListingDefaultLimit
	}
	if limit < 1 || limit > constvars.ListingMaxLimit || request.Skip < 0 {
		return nil, 0, exceptions.ErrInvalidPagination(nil)
	}

	total, err := uc.TicketRepository.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result, err := uc.TicketRepository.Find(ctx, filter, int64(request.Skip), int64(limit))
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (uc *ticketUsecase) CloseTicket(ctx context.Context, ticketCode string) (*models.Ticket, error) {
	ticket, err := uc.TicketRepository.FindByTicketCode(ctx, ticketCode)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, exceptions.ErrTicketNotFound(nil)
	}
	if ticket.State == constvars.TicketStateClosed {
		return ticket, nil
	}

	fields := bson.M{
		"state":     constvars.TicketStateClosed,
		"closed_at": time.Now().UTC(),
	}
	updated, err := uc.TicketRepository.UpdateByTicketCode(ctx, ticketCode, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, exceptions.ErrTicketNotFound(nil)
	}
	return updated, nil
}
