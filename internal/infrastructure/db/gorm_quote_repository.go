package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/damon-houk/cotacao/internal/domain/entity"
	"github.com/damon-houk/cotacao/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// QuoteModel is the GORM model for the currency_quotes table.
// Seq orders rows by insertion; the quote is kept as text so SQLite
// does not round it to a float.
type QuoteModel struct {
	Seq            uint64          `gorm:"primaryKey;autoIncrement"`
	ID             string          `gorm:"uniqueIndex;size:36;not null"`
	BaseCurrency   string          `gorm:"size:3;not null"`
	TargetCurrency string          `gorm:"size:3;not null;index:idx_quote_lookup,priority:1"`
	QuoteDate      string          `gorm:"size:10;not null;index:idx_quote_lookup,priority:2"`
	Quote          decimal.Decimal `gorm:"type:varchar(40);not null"`
	CreatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (QuoteModel) TableName() string {
	return "currency_quotes"
}

// ToEntity converts the GORM model to a domain entity.
func (m *QuoteModel) ToEntity() (*entity.CurrencyQuote, error) {
	date, err := entity.ParseDate(m.QuoteDate)
	if err != nil {
		return nil, err
	}

	return &entity.CurrencyQuote{
		ID:             m.ID,
		BaseCurrency:   entity.Currency(m.BaseCurrency),
		TargetCurrency: entity.Currency(m.TargetCurrency),
		Quote:          m.Quote,
		Date:           date,
		CreatedAt:      m.CreatedAt,
	}, nil
}

// QuoteModelFromEntity converts a domain entity to a GORM model.
func QuoteModelFromEntity(q *entity.CurrencyQuote) *QuoteModel {
	return &QuoteModel{
		ID:             q.ID,
		BaseCurrency:   q.BaseCurrency.String(),
		TargetCurrency: q.TargetCurrency.String(),
		QuoteDate:      entity.FormatDate(q.Date),
		Quote:          q.Quote,
		CreatedAt:      q.CreatedAt,
	}
}

// GormQuoteRepository implements the quote repository interface on SQLite or PostgreSQL
type GormQuoteRepository struct {
	db *gorm.DB
}

// NewGormQuoteRepository creates a new GORM quote repository
func NewGormQuoteRepository(db *gorm.DB) *GormQuoteRepository {
	return &GormQuoteRepository{db: db}
}

// Store inserts a new row; duplicates for a currency and date are allowed
func (r *GormQuoteRepository) Store(ctx context.Context, quote *entity.CurrencyQuote) error {
	if err := quote.Validate(); err != nil {
		return fmt.Errorf("invalid quote: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(QuoteModelFromEntity(quote)).Error; err != nil {
		return fmt.Errorf("failed to store quote: %w", err)
	}
	return nil
}

// FindFirst returns the row with the lowest Seq for a currency and date
func (r *GormQuoteRepository) FindFirst(ctx context.Context, currency entity.Currency, date time.Time) (*entity.CurrencyQuote, error) {
	var m QuoteModel
	err := r.db.WithContext(ctx).
		Where("target_currency = ? AND quote_date = ?", currency.String(), entity.FormatDate(date)).
		Order("seq ASC").
		First(&m).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrQuoteNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to retrieve quote: %w", err)
	}

	quote, err := m.ToEntity()
	if err != nil {
		return nil, fmt.Errorf("failed to decode stored quote: %w", err)
	}
	return quote, nil
}

// Close releases the underlying connection pool
func (r *GormQuoteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
