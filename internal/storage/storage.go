package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/transcontinental/portal/internal/auth"
	"github.com/transcontinental/portal/internal/db"
	"github.com/transcontinental/portal/internal/repository"
)

const DefaultEventTopic = "portal_events"

// Storage is the domain service of the portal. Every state change is
// committed together with an outbox task describing it.
type Storage struct {
	db           db.DB
	shipmentRepo ShipmentRepository
	clientRepo   ClientRepository
	adminRepo    AdminRepository
	outboxRepo   OutboxTaskRepository

	files      FileChecker
	pending    PendingCache
	eventTopic string
	logger     *zap.Logger

	timeNow func() time.Time
	newID   func() string
}

type Option func(*Storage)

func WithFileChecker(fc FileChecker) Option {
	return func(s *Storage) { s.files = fc }
}

func WithPendingCache(c PendingCache) Option {
	return func(s *Storage) { s.pending = c }
}

func WithEventTopic(topic string) Option {
	return func(s *Storage) {
		if topic != "" {
			s.eventTopic = topic
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Storage) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewStorage(
	database db.DB,
	shipmentRepo ShipmentRepository,
	clientRepo ClientRepository,
	adminRepo AdminRepository,
	outboxRepo OutboxTaskRepository,
	opts ...Option,
) *Storage {
	s := &Storage{
		db:           database,
		shipmentRepo: shipmentRepo,
		clientRepo:   clientRepo,
		adminRepo:    adminRepo,
		outboxRepo:   outboxRepo,
		eventTopic:   DefaultEventTopic,
		logger:       zap.NewNop(),
		timeNow:      func() time.Time { return time.Now().UTC() },
		newID:        func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Storage) withTx(ctx context.Context, fn func(tx db.Tx) error) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			s.logger.Warn("rollback failed", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type event struct {
	Type       string
	EntityType string
	EntityID   string
	OldStatus  Status
	NewStatus  Status
	Data       any
}

func (s *Storage) enqueueEvent(ctx context.Context, tx db.Tx, actor auth.Principal, ev event, now time.Time) error {
	payload := repository.EventPayload{
		Type:       ev.Type,
		EntityType: ev.EntityType,
		EntityID:   ev.EntityID,
		Actor:      actor.Email,
		OldStatus:  string(ev.OldStatus),
		NewStatus:  string(ev.NewStatus),
		OccurredAt: now,
	}
	if ev.Data != nil {
		data, err := json.Marshal(ev.Data)
		if err != nil {
			return fmt.Errorf("failed to marshal event data: %w", err)
		}
		payload.Data = data
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	task := &repository.OutboxTask{
		ID:        uuid.New(),
		Status:    repository.TaskStatusCreated,
		Payload:   body,
		Topic:     s.eventTopic,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.outboxRepo.CreateTx(ctx, tx, task); err != nil {
		return fmt.Errorf("failed to create outbox task: %w", err)
	}
	return nil
}

func requireAuthenticated(p auth.Principal) error {
	if !p.Authenticated() {
		return ErrUnauthorized
	}
	return nil
}

func requireAdmin(p auth.Principal) error {
	if !p.Authenticated() {
		return ErrUnauthorized
	}
	if !p.IsAdmin() {
		return fmt.Errorf("%w: admin access required", ErrForbidden)
	}
	return nil
}

func requireSuperAdmin(p auth.Principal) error {
	if err := requireAdmin(p); err != nil {
		return err
	}
	if !p.IsSuperAdmin() {
		return fmt.Errorf("%w: super admin access required", ErrForbidden)
	}
	return nil
}

// requireActiveAdmin is requireAdmin for operations that change state: the
// account behind the token must still exist.
func (s *Storage) requireActiveAdmin(ctx context.Context, p auth.Principal) error {
	if err := requireAdmin(p); err != nil {
		return err
	}
	if _, err := s.adminRepo.GetByID(ctx, p.ID); err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return fmt.Errorf("%w: account no longer exists", ErrUnauthorized)
		}
		return fmt.Errorf("failed to get admin: %w", err)
	}
	return nil
}

// requireLockedSuperAdmin checks the caller against the super admin rows
// locked by the current transaction. Tokens outlive demotions.
func requireLockedSuperAdmin(p auth.Principal, superIDs []string) error {
	if !slices.Contains(superIDs, p.ID) {
		return fmt.Errorf("%w: super admin access required", ErrForbidden)
	}
	return nil
}

func requireClient(p auth.Principal) error {
	if !p.Authenticated() {
		return ErrUnauthorized
	}
	if !p.IsClient() {
		return fmt.Errorf("%w: client access required", ErrForbidden)
	}
	return nil
}

// sessionClient loads the calling client's account.
func (s *Storage) sessionClient(ctx context.Context, p auth.Principal) (*repository.Client, error) {
	row, err := s.clientRepo.GetByID(ctx, p.ID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: account no longer exists", ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return row, nil
}

// ownerScope returns the owner email shipment reads are limited to. Clients
// are pinned to the current email of their account; admins get the requested
// filter, empty meaning every owner.
func (s *Storage) ownerScope(ctx context.Context, p auth.Principal, requested string) (string, error) {
	if !p.IsClient() {
		return normalizeEmail(requested), nil
	}
	row, err := s.sessionClient(ctx, p)
	if err != nil {
		return "", err
	}
	return row.Email, nil
}

// validID reports whether id can name a stored row. Rows are keyed by UUID,
// so anything else cannot exist.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func toShipment(r *repository.Shipment) Shipment {
	refs := r.BillOfLadingFiles
	if refs == nil {
		refs = []string{}
	}
	return Shipment{
		ID:             r.ID,
		ClientEmail:    r.ClientEmail,
		ClientName:     r.ClientName,
		Containers20ft: r.Containers20ft,
		Containers40ft: r.Containers40ft,
		FileRefs: FileRefs{
			BillOfLadingFiles:     refs,
			PackingListFile:       r.PackingListFile,
			CommercialInvoiceFile: r.CommercialInvoiceFile,
		},
		Status:    Status(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toShipments(rows []*repository.Shipment) []Shipment {
	out := make([]Shipment, 0, len(rows))
	for _, r := range rows {
		out = append(out, toShipment(r))
	}
	return out
}

func toClient(r *repository.Client) Client {
	return Client{
		ID:          r.ID,
		Email:       r.Email,
		Name:        r.Name,
		CompanyName: r.CompanyName,
		Phone:       r.Phone,
		Address:     r.Address,
		City:        r.City,
		Country:     r.Country,
		PostalCode:  r.PostalCode,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toAdmin(r *repository.Admin) Admin {
	return Admin{
		ID:           r.ID,
		Email:        r.Email,
		Name:         r.Name,
		IsAdmin:      true,
		IsSuperAdmin: r.IsSuperAdmin,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
