package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/propledger/property_ledger_app/internal/core/ports/services"
	"github.com/propledger/property_ledger_app/internal/dto"
)

// paymentHandler handles HTTP requests for payment flows.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(svc portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: svc}
}

// registerPaymentRoutes registers payment routes on the entity-scoped group.
func registerPaymentRoutes(rg *gin.RouterGroup, svc portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(svc)

	payments := rg.Group("/payments")
	{
		payments.POST("", h.recordPayment)
		payments.POST("/check-deposit", h.recordCheckDeposit)
		payments.POST("/batch", h.recordPaymentBatch)
		payments.GET("/unreconciled", h.getUnreconciledPayments)
		payments.GET("/methods", h.getPaymentMethods)
		payments.GET("/revenue-accounts", h.getRevenueAccounts)
		payments.POST("/:paymentID/reconcile", h.reconcilePayment)
		payments.POST("/:paymentID/receipt", h.generateReceipt)
	}
}

// recordPayment godoc
// @Summary Record a payment
// @Description Records a payment into a bank ledger and posts its balanced entry pair
// @Tags payments
// @Accept json
// @Produce json
// @Param entityID path string true "Entity ID"
// @Param payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.RecordPaymentResponse
// @Failure 400 {object} map[string]string "Invalid input, unlinked bank ledger or over-applied invoice"
// @Failure 404 {object} map[string]string "Bank ledger, revenue account or invoice not found"
// @Failure 409 {object} map[string]string "Payment already deposited"
// @Security BearerAuth
// @Router /entities/{entityID}/payments [post]
func (h *paymentHandler) recordPayment(c *gin.Context) {
	logger, userID, ok := requestIdentity(c)
	if !ok {
		return
	}
	entityID := c.Param("entityID")

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.paymentService.RecordPayment(c.Request.Context(), entityID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "record payment")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// recordCheckDeposit godoc
// @Summary Record a check deposit batch
// @Description Deposits several checks into one bank ledger as a single atomic batch
// @Tags payments
// @Accept json
// @Produce json
// @Param entityID path string true "Entity ID"
// @Param deposit body dto.RecordCheckDepositRequest true "Deposit details"
// @Success 201 {object} dto.RecordCheckDepositResponse
// @Failure 400 {object} map[string]string "Total mismatch or invalid check"
// @Failure 404 {object} map[string]string "Bank ledger or revenue account not found"
// @Security BearerAuth
// @Router /entities/{entityID}/payments/check-deposit [post]
func (h *paymentHandler) recordCheckDeposit(c *gin.Context) {
	logger, userID, ok := requestIdentity(c)
	if !ok {
		return
	}
	entityID := c.Param("entityID")

	var req dto.RecordCheckDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordCheckDeposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.paymentService.RecordCheckDeposit(c.Request.Context(), entityID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "record check deposit")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// recordPaymentBatch godoc
// @Summary Deposit a batch of pre-recorded payments
// @Description Completes pre-recorded payments into one bank ledger atomically
// @Tags payments
// @Accept json
// @Produce json
// @Param entityID path string true "Entity ID"
// @Param batch body dto.RecordPaymentBatchRequest true "Batch details"
// @Success 201 {object} dto.RecordPaymentBatchResponse
// @Failure 400 {object} map[string]string "Invalid input or duplicate payment in batch"
// @Failure 404 {object} map[string]string "Bank ledger, payment or revenue account not found"
// @Failure 409 {object} map[string]string "A payment is already deposited"
// @Security BearerAuth
// @Router /entities/{entityID}/payments/batch [post]
func (h *paymentHandler) recordPaymentBatch(c *gin.Context) {
	logger, userID, ok := requestIdentity(c)
	if !ok {
		return
	}
	entityID := c.Param("entityID")

	var req dto.RecordPaymentBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPaymentBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.paymentService.RecordPaymentBatch(c.Request.Context(), entityID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "record payment batch")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// getUnreconciledPayments godoc
// @Summary List unreconciled payments
// @Description Lists payments not yet cleared against the bank, with their aggregate amount
// @Tags payments
// @Produce json
// @Param entityID path string true "Entity ID"
// @Param bankLedgerID query string false "Filter by bank ledger"
// @Param startDate query string false "ISO start date"
// @Param endDate query string false "ISO end date"
// @Param paymentMethod query string false "Filter by payment method"
// @Success 200 {object} dto.UnreconciledPaymentsResponse
// @Failure 400 {object} map[string]string "Invalid date or payment method"
// @Security BearerAuth
// @Router /entities/{entityID}/payments/unreconciled [get]
func (h *paymentHandler) getUnreconciledPayments(c *gin.Context) {
	logger, _, ok := requestIdentity(c)
	if !ok {
		return
	}
	entityID := c.Param("entityID")

	var params dto.ListUnreconciledParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for GetUnreconciledPayments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.paymentService.GetUnreconciledPayments(c.Request.Context(), entityID, params)
	if err != nil {
		respondServiceError(c, logger, err, "list unreconciled payments")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// reconcilePayment godoc
// @Summary Reconcile a payment
// @Description Marks a payment cleared against the bank and optionally updates its memo
// @Tags payments
// @Accept json
// @Produce json
// @Param entityID path string true "Entity ID"
// @Param paymentID path string true "Payment ID"
// @Param reconcile body dto.ReconcilePaymentRequest false "Reconciliation details"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 409 {object} map[string]string "Payment already reconciled"
// @Security BearerAuth
// @Router /entities/{entityID}/payments/{paymentID}/reconcile [post]
func (h *paymentHandler) reconcilePayment(c *gin.Context) {
	logger, userID, ok := requestIdentity(c)
	if !ok {
		return
	}
	entityID := c.Param("entityID")
	paymentID := c.Param("paymentID")

	var req dto.ReconcilePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReconcilePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	payment, err := h.paymentService.ReconcilePayment(c.Request.Context(), entityID, paymentID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "reconcile payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// generateReceipt godoc
// @Summary Generate a payment receipt
// @Description Builds the receipt projection for a payment; nothing is persisted
// @Tags payments
// @Accept json
// @Produce json
// @Param entityID path string true "Entity ID"
// @Param paymentID path string true "Payment ID"
// @Param receipt body dto.GenerateReceiptRequest false "Receipt customization"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 404 {object} map[string]string "Payment not found"
// @Security BearerAuth
// @Router /entities/{entityID}/payments/{paymentID}/receipt [post]
func (h *paymentHandler) generateReceipt(c *gin.Context) {
	logger, _, ok := requestIdentity(c)
	if !ok {
		return
	}
	entityID := c.Param("entityID")
	paymentID := c.Param("paymentID")

	var req dto.GenerateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for GenerateReceipt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	receipt, err := h.paymentService.GenerateReceipt(c.Request.Context(), entityID, paymentID, req)
	if err != nil {
		respondServiceError(c, logger, err, "generate receipt")
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// getPaymentMethods godoc
// @Summary List payment methods
// @Description Returns the fixed payment-method vocabulary
// @Tags payments
// @Produce json
// @Success 200 {object} dto.PaymentMethodsResponse
// @Security BearerAuth
// @Router /entities/{entityID}/payments/methods [get]
func (h *paymentHandler) getPaymentMethods(c *gin.Context) {
	if _, _, ok := requestIdentity(c); !ok {
		return
	}
	c.JSON(http.StatusOK, dto.PaymentMethodsResponse{Methods: h.paymentService.GetPaymentMethods()})
}

// getRevenueAccounts godoc
// @Summary List revenue accounts
// @Description Returns the entity's active revenue accounts for payment categorization
// @Tags payments
// @Produce json
// @Param entityID path string true "Entity ID"
// @Success 200 {object} dto.RevenueAccountsResponse
// @Failure 404 {object} map[string]string "Entity not found"
// @Security BearerAuth
// @Router /entities/{entityID}/payments/revenue-accounts [get]
func (h *paymentHandler) getRevenueAccounts(c *gin.Context) {
	logger, _, ok := requestIdentity(c)
	if !ok {
		return
	}
	entityID := c.Param("entityID")

	accounts, err := h.paymentService.GetRevenueAccounts(c.Request.Context(), entityID)
	if err != nil {
		respondServiceError(c, logger, err, "list revenue accounts")
		return
	}
	c.JSON(http.StatusOK, dto.RevenueAccountsResponse{Accounts: dto.ToListChartAccountResponse(accounts)})
}
