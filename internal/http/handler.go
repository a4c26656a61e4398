package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/decioext/quotes-service/internal/auth"
	"github.com/decioext/quotes-service/internal/http/middleware"
	"github.com/decioext/quotes-service/internal/model"
	"github.com/decioext/quotes-service/internal/service"
)

type Handler struct {
	quotes *service.QuoteService
	authn  *auth.Authenticator
	issuer *auth.Issuer
	log    zerolog.Logger
}

func NewHandler(quotes *service.QuoteService, authn *auth.Authenticator, issuer *auth.Issuer, log zerolog.Logger) *Handler {
	return &Handler{quotes: quotes, authn: authn, issuer: issuer, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.POST("/login", h.login)

	protected := router.Group("/")
	protected.Use(authMiddleware)
	protected.GET("/catalog", h.catalog)
	protected.GET("/draft", h.draftItems)
	protected.POST("/draft/items", h.addDraftItem)
	protected.DELETE("/draft/items/:index", h.removeDraftItem)
	protected.DELETE("/draft", h.clearDraft)
	protected.POST("/quotes", h.createQuote)
	protected.GET("/quotes", h.listQuotes)
	protected.GET("/exports/quotes", h.exportQuotes)
	protected.GET("/quotes/:id", h.getQuote)
	protected.PUT("/quotes/:id", h.updateQuote)
	protected.DELETE("/quotes/:id", h.deleteQuote)
	protected.GET("/quotes/:id/pdf", h.quotePDF)
	protected.GET("/quotes/:id/share", h.shareQuote)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.authn.Check(req.Username, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.issuer.Issue(req.Username)
	if err != nil {
		h.log.Error().Err(err).Msg("issue token failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "username": req.Username})
}

func (h *Handler) catalog(c *gin.Context) {
	c.JSON(http.StatusOK, model.DefaultCatalog())
}

func (h *Handler) draftItems(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	items := h.quotes.DraftItems(principal)
	c.JSON(http.StatusOK, gin.H{"items": items, "total": sumSubtotals(items)})
}

func (h *Handler) addDraftItem(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req service.LineItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.quotes.AddDraftItem(principal, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) removeDraftItem(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
		return
	}

	if err := h.quotes.RemoveDraftItem(principal, index); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) clearDraft(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	h.quotes.ClearDraft(principal)
	c.Status(http.StatusNoContent)
}

type saveQuoteRequest struct {
	Client       model.Client `json:"client" binding:"required"`
	ValidityDays int          `json:"validity_days"`
	PaymentTerms string       `json:"payment_terms"`
}

func (h *Handler) createQuote(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req saveQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := h.quotes.Save(c.Request.Context(), principal, service.SaveQuoteInput{
		Client:       req.Client,
		ValidityDays: req.ValidityDays,
		PaymentTerms: req.PaymentTerms,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quoteView(quote))
}

func (h *Handler) listQuotes(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	quotes, err := h.quotes.List(c.Request.Context(), principal, c.Query("client"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	views := make([]gin.H, 0, len(quotes))
	for i := range quotes {
		views = append(views, quoteView(&quotes[i]))
	}
	c.JSON(http.StatusOK, gin.H{"quotes": views})
}

func (h *Handler) getQuote(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	quote, err := h.quotes.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, quoteView(quote))
}

type updateQuoteRequest struct {
	Client       model.Client            `json:"client" binding:"required"`
	Items        []service.LineItemInput `json:"items" binding:"required"`
	ValidityDays int                     `json:"validity_days"`
	PaymentTerms string                  `json:"payment_terms"`
}

func (h *Handler) updateQuote(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req updateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := h.quotes.Update(c.Request.Context(), principal, id, service.UpdateQuoteInput{
		Client:       req.Client,
		Items:        req.Items,
		ValidityDays: req.ValidityDays,
		PaymentTerms: req.PaymentTerms,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, quoteView(quote))
}

func (h *Handler) deleteQuote(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.quotes.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) quotePDF(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	result, err := h.quotes.RenderPDF(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

func (h *Handler) shareQuote(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	links, err := h.quotes.ShareMessage(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, links)
}

func (h *Handler) exportQuotes(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	result, err := h.quotes.ExportListing(c.Request.Context(), principal, c.Query("client"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", result.Content)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrEmptyDraft):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("quote operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func quoteView(quote *model.Quote) gin.H {
	return gin.H{
		"id":            quote.ID,
		"owner":         quote.Owner,
		"client":        quote.Client,
		"items":         quote.Items,
		"validity_days": quote.ValidityDays,
		"payment_terms": quote.PaymentTerms,
		"grand_total":   quote.GrandTotal(),
		"created_at":    quote.CreatedAt,
	}
}

func parseID(c *gin.Context) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Param("id")))
}

func sumSubtotals(items []model.LineItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.ComputeSubtotal()
	}
	return total
}
