package consecutives

import (
	"context"
	"fmt"
	"pathsys-service/internal/pkg/constvars"
)

type allocatorUsecase struct {
	ConsecutiveRepository ConsecutiveRepository
}

func NewAllocatorUsecase(consecutiveRepository ConsecutiveRepository) Allocator {
	return &allocatorUsecase{
		ConsecutiveRepository: consecutiveRepository,
	}
}

func (uc *allocatorUsecase) NextCode(ctx context.Context, kind string, year int) (string, error) {
	n, err := uc.ConsecutiveRepository.Next(ctx, kind, year)
	if err != nil {
		return "", err
	}
	return FormatCode(kind, year, n), nil
}

func (uc *allocatorUsecase) PeekCode(ctx context.Context, kind string, year int) (string, error) {
	n, err := uc.ConsecutiveRepository.Peek(ctx, kind, year)
	if err != nil {
		return "", err
	}
	return FormatCode(kind, year, n), nil
}

// FormatCode renders a consecutive number in the wire format of its kind:
// cases as YYYY-NNNNN, approvals as AP-YYYY-NNN, tickets as T-YYYY-NNN.
func FormatCode(kind string, year, n int) string {
	switch kind {
	case constvars.CounterKindCase:
		return fmt.Sprintf(constvars.CaseCodeFormat, year, n)
	case constvars.CounterKindApproval:
		return fmt.Sprintf(constvars.ApprovalCodeFormat, year, n)
	case constvars.CounterKindTicket:
		return fmt.Sprintf(constvars.TicketCodeFormat, year, n)
	default:
		return fmt.Sprintf("%d-%d", year, n)
	}
}
