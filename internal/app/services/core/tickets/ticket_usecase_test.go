package tickets

import (
	"context"
	"errors"
	"fmt"
	"pathsys-service/internal/app/contracts"
	"pathsys-service/internal/app/models"
	"pathsys-service/internal/pkg/constvars"
	"pathsys-service/internal/pkg/dto/requests"
	"pathsys-service/internal/pkg/exceptions"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type fakeTicketRepository struct {
	byCode         map[string]*models.Ticket
	insertConflict int
}

func newFakeTicketRepository() *fakeTicketRepository {
	return &fakeTicketRepository{byCode: map[string]*models.Ticket{}}
}

func (f *fakeTicketRepository) Insert(ctx context.Context, ticket *models.Ticket) error {
	if f.insertConflict > 0 {
		f.insertConflict--
		return exceptions.BuildNewCustomError(nil, constvars.StatusConflict, constvars.ErrClientCannotProcessRequest, constvars.ErrDevDBDuplicateKey)
	}
	clone := *ticket
	f.byCode[ticket.TicketCode] = &clone
	return nil
}

func (f *fakeTicketRepository) FindByTicketCode(ctx context.Context, ticketCode string) (*models.Ticket, error) {
	ticket, ok := f.byCode[ticketCode]
	if !ok {
		return nil, nil
	}
	clone := *ticket
	return &clone, nil
}

func (f *fakeTicketRepository) UpdateByTicketCode(ctx context.Context, ticketCode string, fields bson.M) (*models.Ticket, error) {
	ticket, ok := f.byCode[ticketCode]
	if !ok {
		return nil, nil
	}
	if state, ok := fields["state"].(string); ok {
		ticket.State = state
	}
	if closedAt, ok := fields["closed_at"].(time.Time); ok {
		ticket.ClosedAt = &closedAt
	}
	ticket.UpdatedAt = time.Now().UTC()
	clone := *ticket
	return &clone, nil
}

func (f *fakeTicketRepository) Find(ctx context.Context, filter bson.M, skip, limit int64) ([]models.Ticket, error) {
	result := make([]models.Ticket, 0, len(f.byCode))
	for _, ticket := range f.byCode {
		if state, ok := filter["state"].(string); ok && ticket.State != state {
			continue
		}
		result = append(result, *ticket)
	}
	return result, nil
}

func (f *fakeTicketRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	result, _ := f.Find(ctx, filter, 0, 0)
	return int64(len(result)), nil
}

type fakeTicketCounter struct {
	last int
}

func (f *fakeTicketCounter) Next(ctx context.Context, kind string, year int) (int, error) {
	f.last++
	return f.last, nil
}

func (f *fakeTicketCounter) Peek(ctx context.Context, kind string, year int) (int, error) {
	return f.last + 1, nil
}

type fakeTicketNotifier struct {
	published []contracts.Notification
	fail      bool
}

func (f *fakeTicketNotifier) Publish(ctx context.Context, notification contracts.Notification) error {
	if f.fail {
		return errors.New("broker unavailable")
	}
	f.published = append(f.published, notification)
	return nil
}

func newTestTicketUsecase(repo *fakeTicketRepository, notifier *fakeTicketNotifier) TicketUsecase {
	return NewTicketUsecase(repo, &fakeTicketCounter{}, notifier, zap.NewNop())
}

func TestCreateTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("Happy Path", func(t *testing.T) {
		repo := newFakeTicketRepository()
		notifier := &fakeTicketNotifier{}
		usecase := newTestTicketUsecase(repo, notifier)

		ticket, err := usecase.CreateTicket(ctx, &requests.CreateTicket{
			Title:       "Printer offline in histology",
			Description: "Label printer stopped responding",
			Category:    "hardware",
		}, "u1")
		assert.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^T-\d{4}-\d{3}$`), ticket.TicketCode)
		assert.Equal(t, constvars.TicketStateOpen, ticket.State)
		assert.Equal(t, "u1", ticket.ReportedBy)

		assert.Len(t, notifier.published, 1)
		assert.Equal(t, contracts.NotificationTicketCreated, notifier.published[0].Kind)
		assert.Equal(t, ticket.TicketCode, notifier.published[0].Reference)
	})

	t.Run("Retries Past A Duplicate Code", func(t *testing.T) {
		repo := newFakeTicketRepository()
		repo.insertConflict = 2
		usecase := newTestTicketUsecase(repo, &fakeTicketNotifier{})

		ticket, err := usecase.CreateTicket(ctx, &requests.CreateTicket{Title: "Slow searches"}, "u1")
		assert.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`-003$`), ticket.TicketCode)
	})

	t.Run("Notifier Failure Does Not Lose The Ticket", func(t *testing.T) {
		repo := newFakeTicketRepository()
		usecase := newTestTicketUsecase(repo, &fakeTicketNotifier{fail: true})

		ticket, err := usecase.CreateTicket(ctx, &requests.CreateTicket{Title: "No labels"}, "u1")
		assert.NoError(t, err)

		stored, _ := repo.FindByTicketCode(ctx, ticket.TicketCode)
		assert.NotNil(t, stored)
	})
}

func TestListTickets(t *testing.T) {
	ctx := context.Background()

	seedTickets := func(usecase TicketUsecase, n int) {
		for i := 0; i < n; i++ {
			_, err := usecase.CreateTicket(ctx, &requests.CreateTicket{Title: fmt.Sprintf("issue %d", i)}, "u1")
			if err != nil {
				panic(err)
			}
		}
	}

	t.Run("State Filter", func(t *testing.T) {
		repo := newFakeTicketRepository()
		usecase := newTestTicketUsecase(repo, &fakeTicketNotifier{})
		seedTickets(usecase, 3)

		closed, err := usecase.CreateTicket(ctx, &requests.CreateTicket{Title: "resolved already"}, "u1")
		assert.NoError(t, err)
		_, err = usecase.CloseTicket(ctx, closed.TicketCode)
		assert.NoError(t, err)

		open, total, err := usecase.ListTickets(ctx, &requests.ListTickets{State: constvars.TicketStateOpen})
		assert.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, open, 3)
	})

	t.Run("Invalid Pagination Rejected", func(t *testing.T) {
		usecase := newTestTicketUsecase(newFakeTicketRepository(), &fakeTicketNotifier{})
		_, _, err := usecase.ListTickets(ctx, &requests.ListTickets{Limit: 2000})
		assert.Error(t, err)
	})
}

func TestCloseTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("Closes And Stamps", func(t *testing.T) {
		repo := newFakeTicketRepository()
		usecase := newTestTicketUsecase(repo, &fakeTicketNotifier{})

		ticket, err := usecase.CreateTicket(ctx, &requests.CreateTicket{Title: "stuck queue"}, "u1")
		assert.NoError(t, err)

		closed, err := usecase.CloseTicket(ctx, ticket.TicketCode)
		assert.NoError(t, err)
		assert.Equal(t, constvars.TicketStateClosed, closed.State)
		assert.NotNil(t, closed.ClosedAt)
	})

	t.Run("Closing Twice Is Idempotent", func(t *testing.T) {
		repo := newFakeTicketRepository()
		usecase := newTestTicketUsecase(repo, &fakeTicketNotifier{})

		ticket, err := usecase.CreateTicket(ctx, &requests.CreateTicket{Title: "stuck queue"}, "u1")
		assert.NoError(t, err)
		first, err := usecase.CloseTicket(ctx, ticket.TicketCode)
		assert.NoError(t, err)

		second, err := usecase.CloseTicket(ctx, ticket.TicketCode)
		assert.NoError(t, err)
		assert.Equal(t, first.ClosedAt.Unix(), second.ClosedAt.Unix())
	})

	t.Run("Unknown Ticket", func(t *testing.T) {
		usecase := newTestTicketUsecase(newFakeTicketRepository(), &fakeTicketNotifier{})
		_, err := usecase.CloseTicket(ctx, "T-2026-099")
		assert.True(t, exceptions.IsNotFound(err))
	})
}
