package auth

import "context"

type Kind string

const (
	KindClient Kind = "client"
	KindAdmin  Kind = "admin"
)

// Principal is the authenticated caller of a request. The zero value is an
// anonymous caller.
type Principal struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name,omitempty"`
	Kind       Kind   `json:"kind"`
	SuperAdmin bool   `json:"isSuperAdmin"`
}

func (p Principal) Authenticated() bool {
	return p.ID != "" && p.Email != "" && (p.Kind == KindClient || p.Kind == KindAdmin)
}

func (p Principal) IsClient() bool {
	return p.Authenticated() && p.Kind == KindClient
}

func (p Principal) IsAdmin() bool {
	return p.Authenticated() && p.Kind == KindAdmin
}

func (p Principal) IsSuperAdmin() bool {
	return p.IsAdmin() && p.SuperAdmin
}

type ctxKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	return p, ok
}
