package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/decioext/quotes-service/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.Quote{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seed(t *testing.T, repo *QuoteRepository, owner, client string, createdAt time.Time) model.Quote {
	t.Helper()
	q := model.Quote{
		Owner:  owner,
		Client: model.Client{Name: client, Address: "Rua A", City: "Indaial", TaxID: "00.000.000/0000-00"},
		Items: model.LineItems{
			{Model: "Extintor PQSP (Novo)", Capacity: "4 Kg", UnitPrice: 120, Quantity: 1, Subtotal: 120},
		},
		ValidityDays: 10,
		PaymentTerms: model.DefaultPaymentTerms,
		CreatedAt:    createdAt,
	}
	if err := repo.Create(context.Background(), &q); err != nil {
		t.Fatalf("create: %v", err)
	}
	return q
}

func TestCreateAssignsID(t *testing.T) {
	repo := NewQuoteRepository(setupTestDB(t))
	q := seed(t, repo, "decio", "Maria", time.Now().UTC())
	if q.ID == uuid.Nil {
		t.Fatal("id not assigned on create")
	}
}

func TestListCaseInsensitiveSubstringNewestFirst(t *testing.T) {
	repo := NewQuoteRepository(setupTestDB(t))
	base := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)

	seed(t, repo, "decio", "ana souza", base)
	seed(t, repo, "decio", "Mariana Costa", base.Add(time.Minute))
	seed(t, repo, "decio", "Pedro Lima", base.Add(2*time.Minute))

	quotes, err := repo.List(context.Background(), "decio", "ANA")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("matches = %d, want 2", len(quotes))
	}
	if quotes[0].Client.Name != "Mariana Costa" {
		t.Fatalf("first = %q, want newest match", quotes[0].Client.Name)
	}
}

func TestListScopesToOwner(t *testing.T) {
	repo := NewQuoteRepository(setupTestDB(t))
	now := time.Now().UTC()

	seed(t, repo, "decio", "Maria", now)
	seed(t, repo, "vendedor2", "Maria", now)

	quotes, err := repo.List(context.Background(), "decio", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(quotes) != 1 {
		t.Fatalf("quotes = %d, want 1", len(quotes))
	}
	if quotes[0].Owner != "decio" {
		t.Fatalf("owner = %q", quotes[0].Owner)
	}
}

func TestListAppliesDefaultsToOldRecords(t *testing.T) {
	db := setupTestDB(t)
	repo := NewQuoteRepository(db)

	// Record written before validity_days/payment_terms existed.
	q := model.Quote{
		ID:     uuid.New(),
		Owner:  "decio",
		Client: model.Client{Name: "Antiga", Address: "Rua B", City: "Timbó", TaxID: "11.111.111/1111-11"},
		Items: model.LineItems{
			{Model: "Extintor CO2", Capacity: "6 Kg", UnitPrice: 150, Quantity: 2},
		},
		CreatedAt: time.Now().UTC(),
	}
	if err := db.Create(&q).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	found, err := repo.GetByID(context.Background(), q.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found.ValidityDays != model.DefaultValidityDays {
		t.Fatalf("validity_days = %d, want default", found.ValidityDays)
	}
	if found.PaymentTerms != model.DefaultPaymentTerms {
		t.Fatalf("payment_terms = %q, want default", found.PaymentTerms)
	}
	if found.Items[0].Subtotal != 300 {
		t.Fatalf("subtotal = %v, want 300", found.Items[0].Subtotal)
	}
}

func TestReplaceKeepsIdentityColumns(t *testing.T) {
	repo := NewQuoteRepository(setupTestDB(t))
	created := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	q := seed(t, repo, "decio", "Maria", created)

	err := repo.Replace(context.Background(), q.ID, &model.Quote{
		Owner:  "intruso",
		Client: model.Client{Name: "Maria", Address: "Rua C", City: "Pomerode", TaxID: "22.222.222/2222-22"},
		Items: model.LineItems{
			{Model: "Extintor CO2", Capacity: "6 Kg", UnitPrice: 150, Quantity: 1, Subtotal: 150},
		},
		ValidityDays: 30,
		PaymentTerms: "À vista",
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}

	found, err := repo.GetByID(context.Background(), q.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found.Owner != "decio" {
		t.Fatalf("owner overwritten: %q", found.Owner)
	}
	if !found.CreatedAt.Equal(created) {
		t.Fatalf("created_at overwritten: %v", found.CreatedAt)
	}
	if found.Client.City != "Pomerode" || found.ValidityDays != 30 {
		t.Fatalf("replacement not applied: %+v", found)
	}
}

func TestReplaceUnknownID(t *testing.T) {
	repo := NewQuoteRepository(setupTestDB(t))
	err := repo.Replace(context.Background(), uuid.New(), &model.Quote{
		Client: model.Client{Name: "X", Address: "Y", City: "Z", TaxID: "W"},
		Items:  model.LineItems{{Model: "CO2", Quantity: 1}},
	})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want gorm.ErrRecordNotFound", err)
	}
}

func TestDeleteByID(t *testing.T) {
	repo := NewQuoteRepository(setupTestDB(t))
	q := seed(t, repo, "decio", "Maria", time.Now().UTC())

	if err := repo.DeleteByID(context.Background(), q.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), q.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("get after delete err = %v", err)
	}
	if err := repo.DeleteByID(context.Background(), q.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
}
