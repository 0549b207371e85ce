package settings

import (
	"context"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/hypermart/pos-backend/pkg/db/models"
	"github.com/hypermart/pos-backend/pkg/errors"
)

// InvoicePrefix is the literal prefix on every invoice number.
const InvoicePrefix = "HYP-"

type Service interface {
	WithTx(tx *gorm.DB) Service
	// InvoiceCounter returns the last issued invoice counter value.
	InvoiceCounter(ctx context.Context) (int64, error)
	// AdvanceInvoiceCounter writes next over the counter, but only if
	// it still holds prev. A false return means a concurrent commit
	// advanced it first.
	AdvanceInvoiceCounter(ctx context.Context, prev, next int64) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) WithTx(tx *gorm.DB) Service {
	return &service{repo: s.repo.WithTx(tx)}
}

func (s *service) InvoiceCounter(ctx context.Context) (int64, error) {
	setting, err := s.repo.Get(ctx, models.SettingLastInvoiceNumber)
	if err != nil {
		if appErr := errors.As(err); appErr != nil && appErr.Code() == errors.CodeNotFound {
			return 0, errors.New(errors.CodeCounterCorruption, "invoice counter row is missing")
		}
		return 0, err
	}
	counter, perr := strconv.ParseInt(setting.Value, 10, 64)
	if perr != nil {
		return 0, errors.Wrap(errors.CodeCounterCorruption, perr,
			"invoice counter holds non-numeric value %q", setting.Value)
	}
	return counter, nil
}

func (s *service) AdvanceInvoiceCounter(ctx context.Context, prev, next int64) (bool, error) {
	return s.repo.CompareAndSet(ctx, models.SettingLastInvoiceNumber,
		strconv.FormatInt(prev, 10), strconv.FormatInt(next, 10))
}

func (s *service) Get(ctx context.Context, key string) (string, error) {
	setting, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *service) Set(ctx context.Context, key, value string) error {
	return s.repo.Set(ctx, key, value)
}

// FormatInvoiceNumber renders a counter value as a customer-facing
// invoice number, e.g. 10001 becomes "HYP-10001".
func FormatInvoiceNumber(counter int64) string {
	return fmt.Sprintf("%s%d", InvoicePrefix, counter)
}
