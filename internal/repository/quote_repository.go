package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/decioext/quotes-service/internal/model"
)

type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) Create(ctx context.Context, quote *model.Quote) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

// List returns the owner's quotes, newest first, optionally narrowed by a
// case-insensitive client name substring.
func (r *QuoteRepository) List(ctx context.Context, owner, clientSubstr string) ([]model.Quote, error) {
	query := r.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("created_at DESC")

	clientSubstr = strings.TrimSpace(clientSubstr)
	if clientSubstr != "" {
		pattern := "%" + strings.ToLower(clientSubstr) + "%"
		query = query.Where("LOWER(client_name) LIKE ?", pattern)
	}

	var quotes []model.Quote
	if err := query.Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

func (r *QuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Quote, error) {
	var quote model.Quote
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// Replace overwrites the record wholesale. id, owner and created_at stay as
// they were persisted.
func (r *QuoteRepository) Replace(ctx context.Context, id uuid.UUID, quote *model.Quote) error {
	result := r.db.WithContext(ctx).
		Model(&model.Quote{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"client_name":    quote.Client.Name,
			"client_address": quote.Client.Address,
			"client_city":    quote.Client.City,
			"client_tax_id":  quote.Client.TaxID,
			"items":          quote.Items,
			"validity_days":  quote.ValidityDays,
			"payment_terms":  quote.PaymentTerms,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *QuoteRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Quote{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
