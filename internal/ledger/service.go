package ledger

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/hypermart/pos-backend/pkg/db/models"
	"github.com/hypermart/pos-backend/pkg/errors"
)

type Service interface {
	WithTx(tx *gorm.DB) Service
	Record(ctx context.Context, entry *models.LedgerEntry) error
	Get(ctx context.Context, id int64) (*models.LedgerEntry, error)
	List(ctx context.Context, filter Filter) ([]models.LedgerEntry, error)
	// ExportCSV streams the filtered entries as CSV, newest first,
	// one row per stock movement.
	ExportCSV(ctx context.Context, filter Filter, w io.Writer) error
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

func (s *service) Record(ctx context.Context, entry *models.LedgerEntry) error {
	if !entry.Type.IsValid() {
		return errors.New(errors.CodeValidation, "invalid ledger entry type %q", entry.Type)
	}
	if entry.EntryDate == "" {
		entry.EntryDate = models.EntryDate(time.Now())
	}
	return s.repo.Create(ctx, entry)
}

func (s *service) Get(ctx context.Context, id int64) (*models.LedgerEntry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]models.LedgerEntry, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, filter)
}

func (s *service) ExportCSV(ctx context.Context, filter Filter, w io.Writer) error {
	entries, err := s.List(ctx, filter)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"id", "date", "type", "item_name", "quantity", "price", "notes"}
	if err := cw.Write(header); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "writing csv header")
	}
	for _, entry := range entries {
		notes := ""
		if entry.Notes != nil {
			notes = *entry.Notes
		}
		row := []string{
			strconv.FormatInt(entry.ID, 10),
			entry.EntryDate,
			entry.Type.String(),
			entry.ItemName,
			strconv.FormatInt(entry.Quantity, 10),
			entry.Price.StringFixed(2),
			notes,
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(errors.CodeInternal, err, "writing csv row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "flushing csv")
	}
	return nil
}

func validateFilter(filter Filter) error {
	for _, d := range []string{filter.From, filter.To} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(models.EntryDateFormat, d); err != nil {
			return errors.New(errors.CodeValidation, "invalid date %q, expected YYYY-MM-DD", d)
		}
	}
	if filter.From != "" && filter.To != "" && filter.From > filter.To {
		return errors.New(errors.CodeValidation, "date range is inverted, %s is after %s", filter.From, filter.To)
	}
	if filter.Type != "" && !filter.Type.IsValid() {
		return errors.New(errors.CodeValidation, "invalid ledger entry type %q", filter.Type)
	}
	return nil
}
