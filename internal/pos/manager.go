package pos

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hypermart/pos-backend/internal/sales"
	"github.com/hypermart/pos-backend/pkg/db/models"
	"github.com/hypermart/pos-backend/pkg/errors"
	"github.com/hypermart/pos-backend/pkg/logger"
)

// ItemFinder is the slice of the catalog the register needs.
type ItemFinder interface {
	GetByBarcode(ctx context.Context, barcode string) (*models.Item, error)
	Search(ctx context.Context, term string) ([]models.Item, error)
}

// SaleCommitter turns a finished cart into a permanent sale.
type SaleCommitter interface {
	CommitSale(ctx context.Context, input sales.CommitInput) (*sales.CommitResult, error)
}

// DefaultSessionTTL is how long an untouched cart survives before a
// sweep reclaims it. Registers sit idle between customers, so this is
// generous.
const DefaultSessionTTL = 2 * time.Hour

type session struct {
	id      string
	lines   []Line
	touched time.Time
}

// Manager owns the open register carts. Sessions live in memory only;
// a cart that was never committed writes nothing anywhere.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration

	log     *logger.Logger
	catalog ItemFinder
	sales   SaleCommitter
	now     func() time.Time
}

func NewManager(log *logger.Logger, catalogSvc ItemFinder, salesSvc SaleCommitter) *Manager {
	return &Manager{
		sessions: make(map[string]*session),
		ttl:      DefaultSessionTTL,
		log:      log,
		catalog:  catalogSvc,
		sales:    salesSvc,
		now:      time.Now,
	}
}

// Open starts a fresh cart and returns its session id.
func (m *Manager) Open(ctx context.Context) *Cart {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := &session{id: uuid.NewString(), touched: m.now()}
	m.sessions[s.id] = s
	m.log.Debug(m.log.WithSessionID(ctx, s.id), "cart session opened")
	return m.view(s)
}

func (m *Manager) Get(ctx context.Context, sessionID string) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return m.view(s), nil
}

// AddItem looks the term up in the catalog and merges it into the cart.
// Adding an item already in the cart bumps its quantity instead of
// creating a second line.
func (m *Manager) AddItem(ctx context.Context, sessionID, term string, qty int64) (*Cart, error) {
	if qty <= 0 {
		return nil, errors.New(errors.CodeValidation, "quantity must be positive")
	}

	item, err := m.catalog.GetByBarcode(ctx, term)
	if err != nil {
		if appErr := errors.As(err); appErr == nil || appErr.Code() != errors.CodeNotFound {
			return nil, err
		}
		matches, serr := m.catalog.Search(ctx, term)
		if serr != nil {
			return nil, serr
		}
		if len(matches) == 0 {
			return nil, errors.New(errors.CodeNotFound, "no item matches %q", term)
		}
		if len(matches) > 1 {
			return nil, errors.New(errors.CodeConflict, "%d items match %q, scan the barcode instead", len(matches), term)
		}
		item = &matches[0]
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	s.touched = m.now()

	for i := range s.lines {
		if s.lines[i].ItemID == item.ID {
			s.lines[i].Quantity += qty
			return m.view(s), nil
		}
	}
	s.lines = append(s.lines, newLine(item, qty))
	return m.view(s), nil
}

// UpdateQuantity sets a line's quantity. Zero removes the line.
func (m *Manager) UpdateQuantity(ctx context.Context, sessionID string, itemID, qty int64) (*Cart, error) {
	if qty < 0 {
		return nil, errors.New(errors.CodeValidation, "quantity cannot be negative")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	s.touched = m.now()

	for i := range s.lines {
		if s.lines[i].ItemID != itemID {
			continue
		}
		if qty == 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		} else {
			s.lines[i].Quantity = qty
		}
		return m.view(s), nil
	}
	return nil, errors.New(errors.CodeNotFound, "item %d is not in the cart", itemID)
}

func (m *Manager) RemoveItem(ctx context.Context, sessionID string, itemID int64) (*Cart, error) {
	return m.UpdateQuantity(ctx, sessionID, itemID, 0)
}

// Clear empties the cart but keeps the session open.
func (m *Manager) Clear(ctx context.Context, sessionID string) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	s.lines = nil
	s.touched = m.now()
	return m.view(s), nil
}

// Commit hands the cart to the sales service and, on success, closes
// the session. A failed commit leaves the cart intact so the cashier
// can fix it and retry.
func (m *Manager) Commit(ctx context.Context, sessionID string, tableNumber *string) (*sales.CommitResult, error) {
	m.mu.Lock()
	s, err := m.lookup(sessionID)
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	lines := make([]sales.CartLine, 0, len(s.lines))
	for _, line := range s.lines {
		lines = append(lines, sales.CartLine{
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	m.mu.Unlock()

	result, err := m.sales.CommitSale(ctx, sales.CommitInput{Lines: lines, TableNumber: tableNumber})
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
	return result, nil
}

// Close drops a session without committing.
func (m *Manager) Close(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sessionID]; !ok {
		return errors.New(errors.CodeNotFound, "cart session %s not found", sessionID)
	}
	delete(m.sessions, sessionID)
	return nil
}

// Prune drops sessions idle past the TTL and reports how many went.
func (m *Manager) Prune(ctx context.Context) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.ttl)
	pruned := 0
	for id, s := range m.sessions {
		if s.touched.Before(cutoff) {
			delete(m.sessions, id)
			pruned++
		}
	}
	if pruned > 0 {
		m.log.Info(m.log.WithField(ctx, "pruned", pruned), "stale cart sessions reclaimed")
	}
	return pruned
}

func (m *Manager) lookup(sessionID string) (*session, error) {
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, errors.New(errors.CodeNotFound, "cart session %s not found", sessionID)
	}
	return s, nil
}

func (m *Manager) view(s *session) *Cart {
	total := decimal.Zero
	lines := make([]Line, len(s.lines))
	copy(lines, s.lines)
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return &Cart{SessionID: s.id, Lines: lines, Total: total}
}
