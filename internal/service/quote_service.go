package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/decioext/quotes-service/internal/config"
	"github.com/decioext/quotes-service/internal/model"
	"github.com/decioext/quotes-service/internal/repository"
)

type PDFGenerator interface {
	Generate(quote model.Quote) ([]byte, error)
}

type ListingGenerator interface {
	Generate(quotes []model.Quote) ([]byte, error)
}

type QuoteService struct {
	repo     *repository.QuoteRepository
	drafts   *DraftStore
	pdf      PDFGenerator
	listing  ListingGenerator
	company  config.CompanyConfig
	defaults config.QuoteConfig
}

func NewQuoteService(
	repo *repository.QuoteRepository,
	drafts *DraftStore,
	pdf PDFGenerator,
	listing ListingGenerator,
	cfg *config.Config,
) *QuoteService {
	return &QuoteService{
		repo:     repo,
		drafts:   drafts,
		pdf:      pdf,
		listing:  listing,
		company:  cfg.Company,
		defaults: cfg.Quotes,
	}
}

type LineItemInput struct {
	Model     string  `json:"model"`
	Capacity  string  `json:"capacity"`
	Accessory string  `json:"accessory"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// AddDraftItem appends one item to the user's draft. Catalog and manual
// items go through the same path so the subtotal is always computed the
// same way.
func (s *QuoteService) AddDraftItem(principal model.Principal, input LineItemInput) (model.LineItem, error) {
	if strings.TrimSpace(input.Model) == "" {
		return model.LineItem{}, fmt.Errorf("%w: item model is required", ErrInvalidInput)
	}
	if input.UnitPrice < 0 {
		return model.LineItem{}, fmt.Errorf("%w: unit_price must not be negative", ErrInvalidInput)
	}
	if input.Quantity < 1 {
		return model.LineItem{}, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}

	capacity := strings.TrimSpace(input.Capacity)
	if capacity == "" {
		capacity = model.ManualCapacity
	}

	item := model.LineItem{
		Model:     strings.TrimSpace(input.Model),
		Capacity:  capacity,
		Accessory: strings.TrimSpace(input.Accessory),
		UnitPrice: input.UnitPrice,
		Quantity:  input.Quantity,
	}
	item.Subtotal = item.ComputeSubtotal()

	s.drafts.Add(principal.Username, item)
	return item, nil
}

func (s *QuoteService) RemoveDraftItem(principal model.Principal, index int) error {
	if !s.drafts.Remove(principal.Username, index) {
		return fmt.Errorf("%w: no draft item at index %d", ErrInvalidInput, index)
	}
	return nil
}

func (s *QuoteService) DraftItems(principal model.Principal) []model.LineItem {
	return s.drafts.Items(principal.Username)
}

func (s *QuoteService) ClearDraft(principal model.Principal) {
	s.drafts.Clear(principal.Username)
}

type SaveQuoteInput struct {
	Client       model.Client
	ValidityDays int
	PaymentTerms string
}

// Save validates the client block and the draft, then persists a new quote.
// The draft survives a failed validation and is cleared only after the
// record is durable.
func (s *QuoteService) Save(ctx context.Context, principal model.Principal, input SaveQuoteInput) (*model.Quote, error) {
	if err := validateClient(input.Client); err != nil {
		return nil, err
	}

	items := s.drafts.Items(principal.Username)
	if len(items) == 0 {
		return nil, ErrEmptyDraft
	}

	quote := &model.Quote{
		Owner:        principal.Username,
		Client:       trimClient(input.Client),
		Items:        items,
		ValidityDays: input.ValidityDays,
		PaymentTerms: strings.TrimSpace(input.PaymentTerms),
		CreatedAt:    time.Now().UTC(),
	}
	if quote.ValidityDays <= 0 {
		quote.ValidityDays = s.defaults.ValidityDays
	}
	if quote.PaymentTerms == "" {
		quote.PaymentTerms = s.defaults.PaymentTerms
	}
	quote.ApplyDefaults()

	if err := s.repo.Create(ctx, quote); err != nil {
		return nil, err
	}

	s.drafts.Clear(principal.Username)
	return quote, nil
}

func (s *QuoteService) List(ctx context.Context, principal model.Principal, clientSubstr string) ([]model.Quote, error) {
	return s.repo.List(ctx, principal.Username, clientSubstr)
}

func (s *QuoteService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Quote, error) {
	quote, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if quote.Owner != principal.Username {
		return nil, ErrNotFound
	}
	return quote, nil
}

type UpdateQuoteInput struct {
	Client       model.Client
	Items        []LineItemInput
	ValidityDays int
	PaymentTerms string
}

// Update replaces the stored quote wholesale. There is no partial item edit:
// the request carries the full replacement item list.
func (s *QuoteService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input UpdateQuoteInput) (*model.Quote, error) {
	if err := validateClient(input.Client); err != nil {
		return nil, err
	}
	if len(input.Items) == 0 {
		return nil, ErrEmptyDraft
	}

	existing, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	items := make(model.LineItems, 0, len(input.Items))
	for _, in := range input.Items {
		if strings.TrimSpace(in.Model) == "" {
			return nil, fmt.Errorf("%w: item model is required", ErrInvalidInput)
		}
		if in.UnitPrice < 0 {
			return nil, fmt.Errorf("%w: unit_price must not be negative", ErrInvalidInput)
		}
		if in.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
		}
		capacity := strings.TrimSpace(in.Capacity)
		if capacity == "" {
			capacity = model.ManualCapacity
		}
		item := model.LineItem{
			Model:     strings.TrimSpace(in.Model),
			Capacity:  capacity,
			Accessory: strings.TrimSpace(in.Accessory),
			UnitPrice: in.UnitPrice,
			Quantity:  in.Quantity,
		}
		item.Subtotal = item.ComputeSubtotal()
		items = append(items, item)
	}

	replacement := &model.Quote{
		Client:       trimClient(input.Client),
		Items:        items,
		ValidityDays: input.ValidityDays,
		PaymentTerms: strings.TrimSpace(input.PaymentTerms),
	}
	if replacement.ValidityDays <= 0 {
		replacement.ValidityDays = s.defaults.ValidityDays
	}
	if replacement.PaymentTerms == "" {
		replacement.PaymentTerms = s.defaults.PaymentTerms
	}

	if err := s.repo.Replace(ctx, existing.ID, replacement); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Get(ctx, principal, id)
}

func (s *QuoteService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if _, err := s.Get(ctx, principal, id); err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

type DocumentResult struct {
	FileName string
	Content  []byte
}

func (s *QuoteService) RenderPDF(ctx context.Context, principal model.Principal, id uuid.UUID) (*DocumentResult, error) {
	quote, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	content, err := s.pdf.Generate(*quote)
	if err != nil {
		return nil, err
	}
	return &DocumentResult{
		FileName: buildFileName("orcamento", quote.Client.Name, quote.CreatedAt, "pdf"),
		Content:  content,
	}, nil
}

func (s *QuoteService) ExportListing(ctx context.Context, principal model.Principal, clientSubstr string) (*DocumentResult, error) {
	quotes, err := s.repo.List(ctx, principal.Username, clientSubstr)
	if err != nil {
		return nil, err
	}

	content, err := s.listing.Generate(quotes)
	if err != nil {
		return nil, err
	}
	return &DocumentResult{
		FileName: buildFileName("orcamentos", principal.Username, time.Now(), "xlsx"),
		Content:  content,
	}, nil
}

type ShareLinks struct {
	Text        string `json:"text"`
	MailtoURL   string `json:"mailto_url"`
	WhatsAppURL string `json:"whatsapp_url"`
}

// ShareMessage builds the plain-text summary shared via email or WhatsApp.
// The links carry the text, not the PDF.
func (s *QuoteService) ShareMessage(ctx context.Context, principal model.Principal, id uuid.UUID) (*ShareLinks, error) {
	quote, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Orçamento - %s\n", s.company.Name)
	fmt.Fprintf(&b, "Cliente: %s - %s\n", quote.Client.Name, quote.Client.City)
	for i, item := range quote.Items {
		fmt.Fprintf(&b, "Item %d: %s - %s | %d x R$ %.2f = R$ %.2f\n",
			i+1, item.Model, item.Capacity, item.Quantity, item.UnitPrice, item.ComputeSubtotal())
	}
	fmt.Fprintf(&b, "Total Geral: R$ %.2f\n", quote.GrandTotal())
	fmt.Fprintf(&b, "Validade: %d dias a partir de %s\n", quote.ValidityDays, quote.CreatedAt.Format("02/01/2006"))
	fmt.Fprintf(&b, "Pagamento: %s", quote.PaymentTerms)
	text := b.String()

	subject := fmt.Sprintf("Orçamento - %s", s.company.Name)
	mailto := "mailto:?subject=" + escapeQuery(subject) + "&body=" + escapeQuery(text)
	whatsapp := "https://wa.me/?text=" + escapeQuery(text)

	return &ShareLinks{Text: text, MailtoURL: mailto, WhatsAppURL: whatsapp}, nil
}

func validateClient(client model.Client) error {
	fields := []struct {
		label string
		value string
	}{
		{"client name", client.Name},
		{"client address", client.Address},
		{"client city", client.City},
		{"client tax_id", client.TaxID},
	}
	for _, field := range fields {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, field.label)
		}
	}
	return nil
}

func trimClient(client model.Client) model.Client {
	return model.Client{
		Name:    strings.TrimSpace(client.Name),
		Address: strings.TrimSpace(client.Address),
		City:    strings.TrimSpace(client.City),
		TaxID:   strings.TrimSpace(client.TaxID),
	}
}

func buildFileName(prefix, name string, at time.Time, ext string) string {
	cleaned := sanitizeFileName(name)
	if cleaned == "" {
		cleaned = "sem-nome"
	}
	return fmt.Sprintf("%s-%s-%s.%s", prefix, cleaned, at.Format("20060102"), ext)
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range strings.ToLower(input) {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}

// escapeQuery keeps spaces as %20 so mail and WhatsApp clients render the
// prefilled body verbatim.
func escapeQuery(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
