package tickets

import (
	"context"
	"pathsys-service/internal/app/models"
	"pathsys-service/internal/pkg/dto/requests"

	"go.mongodb.org/mongo-driver/bson"
)

type TicketUsecase interface {
	CreateTicket(ctx context.Context, request *requests.CreateTicket, reportedBy string) (*models.Ticket, error)
	ListTickets(ctx context.Context, request *requests.ListTickets) ([]models.Ticket, int64, error)
	CloseTicket(ctx context.Context, ticketCode string) (*models.Ticket, error)
}

type TicketRepository interface {
	Insert(ctx context.Context, ticket *models.Ticket) error
	FindByTicketCode(ctx context.Context, ticketCode string) (*models.Ticket, error)
	UpdateByTicketCode(ctx context.Context, ticketCode string, fields bson.M) (*models.Ticket, error)
	Find(ctx context.Context, filter bson.M, skip, limit int64) ([]models.Ticket, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
}
