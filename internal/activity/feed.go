//go:generate mockgen -source ./feed.go -destination=./mocks/feed.go -package=mock_activity
package activity

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/transcontinental/portal/internal/auth"
	"github.com/transcontinental/portal/internal/storage"
)

const (
	DefaultPerSource = 10
	DefaultLimit     = 10
)

type Type string

const (
	TypeShipment     Type = "shipment"
	TypeClientSignup Type = "client_signup"
	TypeAdminCreated Type = "admin_created"
)

type Activity struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Sources returns the most recent records of each kind, newest first.
type Sources interface {
	RecentShipments(ctx context.Context, limit int) ([]storage.Shipment, error)
	RecentClients(ctx context.Context, limit int) ([]storage.Client, error)
	RecentAdmins(ctx context.Context, limit int) ([]storage.Admin, error)
}

// Feed merges recent shipments, client signups and admin accounts into a
// single reverse-chronological list. Nothing is stored; every call reads
// the sources again.
type Feed struct {
	sources   Sources
	perSource int
	limit     int
	logger    *zap.Logger
}

func NewFeed(sources Sources, perSource, limit int, logger *zap.Logger) *Feed {
	if perSource <= 0 {
		perSource = DefaultPerSource
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feed{
		sources:   sources,
		perSource: perSource,
		limit:     limit,
		logger:    logger.With(zap.String("component", "activity_feed")),
	}
}

func (f *Feed) Recent(ctx context.Context, p auth.Principal) ([]Activity, error) {
	if !p.Authenticated() {
		return nil, storage.ErrUnauthorized
	}
	if !p.IsAdmin() {
		return nil, storage.ErrForbidden
	}

	var (
		shipments []storage.Shipment
		clients   []storage.Client
		admins    []storage.Admin
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		shipments, err = f.sources.RecentShipments(gctx, f.perSource)
		return err
	})
	g.Go(func() error {
		var err error
		clients, err = f.sources.RecentClients(gctx, f.perSource)
		return err
	})
	g.Go(func() error {
		var err error
		admins, err = f.sources.RecentAdmins(gctx, f.perSource)
		return err
	})
	if err := g.Wait(); err != nil {
		f.logger.Error("failed to gather activity sources", zap.Error(err))
		return nil, fmt.Errorf("failed to gather activities: %w", err)
	}

	return merge(f.limit, shipments, clients, admins), nil
}

func merge(limit int, shipments []storage.Shipment, clients []storage.Client, admins []storage.Admin) []Activity {
	out := make([]Activity, 0, len(shipments)+len(clients)+len(admins))
	for _, s := range shipments {
		out = append(out, shipmentActivity(s))
	}
	for _, c := range clients {
		out = append(out, clientActivity(c))
	}
	for _, a := range admins {
		out = append(out, adminActivity(a))
	}

	// Equal timestamps keep source order: shipments, clients, admins.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func shipmentActivity(s storage.Shipment) Activity {
	bol := "Not provided"
	if len(s.BillOfLadingFiles) > 0 {
		bol = "Available"
	}
	return Activity{
		ID:   "shipment-" + s.ID,
		Type: TypeShipment,
		Message: fmt.Sprintf("New shipment from %s: %d x 20ft, %d x 40ft. Bill of Lading: %s.",
			s.ClientName, s.Containers20ft, s.Containers40ft, bol),
		CreatedAt: s.CreatedAt,
	}
}

func clientActivity(c storage.Client) Activity {
	msg := "New client signup: " + c.Email
	if c.CompanyName != "" {
		msg += " (" + c.CompanyName + ")"
	}
	return Activity{
		ID:        "user-" + c.ID,
		Type:      TypeClientSignup,
		Message:   msg + ".",
		CreatedAt: c.CreatedAt,
	}
}

func adminActivity(a storage.Admin) Activity {
	return Activity{
		ID:        "admin-created-" + a.ID,
		Type:      TypeAdminCreated,
		Message:   "Admin account created: " + a.Email + ".",
		CreatedAt: a.CreatedAt,
	}
}
