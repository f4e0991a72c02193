package memory

import (
	"context"
	"net/http"
	"sync"

	"github.com/aretw0/megaverse/pkg/adapters/attrs"
	"github.com/aretw0/megaverse/pkg/domain"
	"github.com/aretw0/megaverse/pkg/ports"
)

// Call records one gateway invocation that passed attribute validation.
type Call struct {
	Op         domain.Operation
	Kind       domain.EntityKind
	Row        int
	Column     int
	Attributes map[string]string
}

// FailureFunc decides whether a call fails. Returning nil lets it succeed.
type FailureFunc func(n int, call Call) error

// Gateway implements ports.Gateway on top of a Universe.
// It is used for dry runs and as a programmable fake in tests.
type Gateway struct {
	universe *Universe
	failures FailureFunc

	mu    sync.Mutex
	calls []Call
}

var _ ports.Gateway = (*Gateway)(nil)

// GatewayOption configures the memory gateway.
type GatewayOption func(*Gateway)

// WithUniverse shares an existing universe (e.g. with the sandbox server).
func WithUniverse(u *Universe) GatewayOption {
	return func(g *Gateway) {
		g.universe = u
	}
}

// WithFailures installs a failure script. n is the 1-based call number.
func WithFailures(fn FailureFunc) GatewayOption {
	return func(g *Gateway) {
		g.failures = fn
	}
}

// FailFirst fails the first k calls with a 503 and lets the rest succeed.
func FailFirst(k int) FailureFunc {
	return func(n int, _ Call) error {
		if n <= k {
			return &domain.GatewayError{Status: http.StatusServiceUnavailable, Message: "injected failure"}
		}
		return nil
	}
}

// FailAlways fails every call whose position matches (row, column).
func FailAlways(row, column int) FailureFunc {
	return func(_ int, c Call) error {
		if c.Row == row && c.Column == column {
			return &domain.GatewayError{Status: http.StatusInternalServerError, Message: "injected failure"}
		}
		return nil
	}
}

// NewGateway creates an in-memory gateway.
func NewGateway(opts ...GatewayOption) *Gateway {
	g := &Gateway{universe: NewUniverse()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Universe returns the backing state.
func (g *Gateway) Universe() *Universe {
	return g.universe
}

// Calls returns a copy of the recorded calls.
func (g *Gateway) Calls() []Call {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Call(nil), g.calls...)
}

func (g *Gateway) CreatePolyanet(ctx context.Context, row, column int) (*domain.Response, error) {
	return g.apply(Call{Op: domain.OpCreate, Kind: domain.EntityPolyanet, Row: row, Column: column})
}

func (g *Gateway) DeletePolyanet(ctx context.Context, row, column int) (*domain.Response, error) {
	return g.apply(Call{Op: domain.OpDelete, Kind: domain.EntityPolyanet, Row: row, Column: column})
}

func (g *Gateway) CreateSoloon(ctx context.Context, row, column int, a map[string]string) (*domain.Response, error) {
	p, err := attrs.Soloon(a)
	if err != nil {
		return nil, err
	}
	return g.apply(Call{
		Op: domain.OpCreate, Kind: domain.EntitySoloon, Row: row, Column: column,
		Attributes: map[string]string{domain.AttrColor: p.Color},
	})
}

func (g *Gateway) DeleteSoloon(ctx context.Context, row, column int) (*domain.Response, error) {
	return g.apply(Call{Op: domain.OpDelete, Kind: domain.EntitySoloon, Row: row, Column: column})
}

func (g *Gateway) CreateCometh(ctx context.Context, row, column int, a map[string]string) (*domain.Response, error) {
	p, err := attrs.Cometh(a)
	if err != nil {
		return nil, err
	}
	return g.apply(Call{
		Op: domain.OpCreate, Kind: domain.EntityCometh, Row: row, Column: column,
		Attributes: map[string]string{domain.AttrDirection: p.Direction},
	})
}

func (g *Gateway) DeleteCometh(ctx context.Context, row, column int) (*domain.Response, error) {
	return g.apply(Call{Op: domain.OpDelete, Kind: domain.EntityCometh, Row: row, Column: column})
}

func (g *Gateway) apply(call Call) (*domain.Response, error) {
	g.mu.Lock()
	g.calls = append(g.calls, call)
	n := len(g.calls)
	g.mu.Unlock()

	if g.failures != nil {
		if err := g.failures(n, call); err != nil {
			return nil, err
		}
	}

	if call.Op == domain.OpDelete {
		g.universe.Remove(call.Kind, call.Row, call.Column)
	} else {
		g.universe.Place(call.Kind, call.Row, call.Column, call.Attributes)
	}
	return &domain.Response{Status: http.StatusOK, Body: map[string]any{}}, nil
}
