package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultValidityDays = 10
	DefaultPaymentTerms = "Dinheiro, Débito, Boleto para 28 dias"
)

// ManualCapacity marks free-text items that carry no capacity of their own.
const ManualCapacity = "-"

type Client struct {
	Name    string `json:"name" gorm:"column:client_name"`
	Address string `json:"address" gorm:"column:client_address"`
	City    string `json:"city" gorm:"column:client_city"`
	TaxID   string `json:"tax_id" gorm:"column:client_tax_id"`
}

type LineItem struct {
	Model     string  `json:"model"`
	Capacity  string  `json:"capacity"`
	Accessory string  `json:"accessory,omitempty"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

func (it LineItem) ComputeSubtotal() float64 {
	return it.UnitPrice * float64(it.Quantity)
}

// LineItems is stored as a single JSON column so a quote stays one flat record.
type LineItems []LineItem

func (items LineItems) Value() (driver.Value, error) {
	if items == nil {
		items = LineItems{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (items *LineItems) Scan(value interface{}) error {
	if value == nil {
		*items = LineItems{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, items)
	case string:
		return json.Unmarshal([]byte(v), items)
	default:
		return fmt.Errorf("unsupported line items column type %T", value)
	}
}

type Quote struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Owner        string    `json:"owner" gorm:"index"`
	Client       Client    `json:"client" gorm:"embedded"`
	Items        LineItems `json:"items" gorm:"type:text"`
	ValidityDays int       `json:"validity_days"`
	PaymentTerms string    `json:"payment_terms"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Quote) TableName() string { return "quotes" }

func (q *Quote) BeforeCreate(_ *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// AfterFind tolerates records persisted before newer optional fields existed.
func (q *Quote) AfterFind(_ *gorm.DB) error {
	q.ApplyDefaults()
	return nil
}

// ApplyDefaults fills absent optional fields and recomputes every subtotal.
// Stored totals are never trusted over unit_price × quantity.
func (q *Quote) ApplyDefaults() {
	if q.ValidityDays <= 0 {
		q.ValidityDays = DefaultValidityDays
	}
	if q.PaymentTerms == "" {
		q.PaymentTerms = DefaultPaymentTerms
	}
	for i := range q.Items {
		q.Items[i].Subtotal = q.Items[i].ComputeSubtotal()
	}
}

func (q *Quote) GrandTotal() float64 {
	total := 0.0
	for _, it := range q.Items {
		total += it.ComputeSubtotal()
	}
	return total
}
