package ports

import (
	"context"

	"github.com/aretw0/megaverse/pkg/domain"
)

// Gateway exposes the remote entity operations.
//
// Every call issues at most one request and never retries. A failed call
// returns a *domain.GatewayError; an attribute outside its enumeration
// returns an error matching domain.ErrInvalidAttribute without any request.
type Gateway interface {
	CreatePolyanet(ctx context.Context, row, column int) (*domain.Response, error)
	DeletePolyanet(ctx context.Context, row, column int) (*domain.Response, error)

	CreateSoloon(ctx context.Context, row, column int, attrs map[string]string) (*domain.Response, error)
	DeleteSoloon(ctx context.Context, row, column int) (*domain.Response, error)

	CreateCometh(ctx context.Context, row, column int, attrs map[string]string) (*domain.Response, error)
	DeleteCometh(ctx context.Context, row, column int) (*domain.Response, error)
}
