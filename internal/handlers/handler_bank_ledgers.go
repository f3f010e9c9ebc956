package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/propledger/property_ledger_app/internal/core/ports/services"
	"github.com/propledger/property_ledger_app/internal/dto"
)

// bankLedgerHandler handles HTTP requests related to bank ledgers.
type bankLedgerHandler struct {
	bankLedgerService  portssvc.BankLedgerSvcFacade
	ledgerEntryService portssvc.LedgerEntrySvcFacade
}

func newBankLedgerHandler(bankSvc portssvc.BankLedgerSvcFacade, entrySvc portssvc.LedgerEntrySvcFacade) *bankLedgerHandler {
	return &bankLedgerHandler{
		bankLedgerService:  bankSvc,
		ledgerEntryService: entrySvc,
	}
}

// registerBankLedgerRoutes registers bank ledger routes on the entity-scoped group.
func registerBankLedgerRoutes(rg *gin.RouterGroup, bankSvc portssvc.BankLedgerSvcFacade, entrySvc portssvc.LedgerEntrySvcFacade) {
	h := newBankLedgerHandler(bankSvc, entrySvc)

	ledgers := rg.Group("/bank-ledgers")
	{
		ledgers.POST("", h.createBankLedger)
		ledgers.GET("", h.listBankLedgers)
		ledgers.GET("/:bankLedgerID", h.getBankLedger)
		ledgers.GET("/:bankLedgerID/balance", h.getBalance)
		ledgers.POST("/:bankLedgerID/chart-account", h.linkChartAccount)
		ledgers.GET("/:bankLedgerID/entries", h.listEntries)
	}
}

// createBankLedger godoc
// @Summary Register a bank account
// @Description Registers a real-world bank account; the account number is stored masked
// @Tags bank-ledgers
// @Accept json
// @Produce json
// @Param entityID path string true "Entity ID"
// @Param ledger body dto.CreateBankLedgerRequest true "Bank account details"
// @Success 201 {object} dto.BankLedgerResponse
// @Failure 400 {object} map[string]string "Invalid input or chart account not an asset"
// @Failure 404 {object} map[string]string "Entity or chart account not found"
// @Security BearerAuth
// @Router /entities/{entityID}/bank-ledgers [post]
func (h *bankLedgerHandler) createBankLedger(c *gin.Context) {
	logger, userID, ok := requestIdentity(c)
	if !ok {
		return
	}
	entityID := c.Param("entityID")

	var req dto.CreateBankLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBankLedger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	ledger, err := h.bankLedgerService.CreateBankLedger(c.Request.Context(), entityID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "create bank ledger")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBankLedgerResponse(ledger))
}

// listBankLedgers godoc
// @Summary List bank ledgers
// @Tags bank-ledgers
// @Produce json
// @Param entityID path string true "Entity ID"
// @Success 200 {object} dto.ListBankLedgersResponse
// @Security BearerAuth
// @Router /entities/{entityID}/bank-ledgers [get]
func (h *bankLedgerHandler) listBankLedgers(c *gin.Context) {
	logger, _, ok := requestIdentity(c)
	if !ok {
		return
	}
	entityID := c.Param("entityID")

	ledgers, err := h.bankLedgerService.ListBankLedgers(c.Request.Context(), entityID)
	if err != nil {
		respondServiceError(c, logger, err, "list bank ledgers")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBankLedgersResponse(ledgers))
}

// getBankLedger godoc
// @Summary Get a bank ledger
// @Tags bank-ledgers
// @Produce json
// @Param entityID path string true "Entity ID"
// @Param bankLedgerID path string true "Bank ledger ID"
// @Success 200 {object} dto.BankLedgerResponse
// @Failure 404 {object} map[string]string "Bank ledger not found"
// @Security BearerAuth
// @Router /entities/{entityID}/bank-ledgers/{bankLedgerID} [get]
func (h *bankLedgerHandler) getBankLedger(c *gin.Context) {
	logger, _, ok := requestIdentity(c)
	if !ok {
		return
	}
	entityID := c.Param("entityID")
	bankLedgerID := c.Param("bankLedgerID")

	ledger, err := h.bankLedgerService.GetBankLedger(c.Request.Context(), entityID, bankLedgerID)
	if err != nil {
		respondServiceError(c, logger, err, "get bank ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToBankLedgerResponse(ledger))
}

// getBalance godoc
// @Summary Get a bank ledger's cached balance
// @Tags bank-ledgers
// @Produce json
// @Param entityID path string true "Entity ID"
// @Param bankLedgerID path string true "Bank ledger ID"
// @Success 200 {object} dto.BankBalanceResponse
// @Failure 404 {object} map[string]string "Bank ledger not found"
// @Security BearerAuth
// @Router /entities/{entityID}/bank-ledgers/{bankLedgerID}/balance [get]
func (h *bankLedgerHandler) getBalance(c *gin.Context) {
	logger, _, ok := requestIdentity(c)
	if !ok {
		return
	}
	entityID := c.Param("entityID")
	bankLedgerID := c.Param("bankLedgerID")

	balance, err := h.bankLedgerService.GetBalance(c.Request.Context(), entityID, bankLedgerID)
	if err != nil {
		respondServiceError(c, logger, err, "get bank balance")
		return
	}
	c.JSON(http.StatusOK, dto.BankBalanceResponse{BankLedgerID: bankLedgerID, CurrentBalance: balance})
}

// linkChartAccount godoc
// @Summary Link a bank ledger to an asset chart account
// @Description Assigns the asset account that postings against this bank ledger land on
// @Tags bank-ledgers
// @Accept json
// @Produce json
// @Param entityID path string true "Entity ID"
// @Param bankLedgerID path string true "Bank ledger ID"
// @Param link body dto.LinkChartAccountRequest true "Chart account to link"
// @Success 200 {object} dto.BankLedgerResponse
// @Failure 400 {object} map[string]string "Target is inactive or not an asset account"
// @Failure 404 {object} map[string]string "Bank ledger or chart account not found"
// @Security BearerAuth
// @Router /entities/{entityID}/bank-ledgers/{bankLedgerID}/chart-account [post]
func (h *bankLedgerHandler) linkChartAccount(c *gin.Context) {
	logger, userID, ok := requestIdentity(c)
	if !ok {
		return
	}
	entityID := c.Param("entityID")
	bankLedgerID := c.Param("bankLedgerID")

	var req dto.LinkChartAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for LinkChartAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	ledger, err := h.bankLedgerService.LinkChartAccount(c.Request.Context(), entityID, bankLedgerID, req.ChartAccountID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "link chart account")
		return
	}
	c.JSON(http.StatusOK, dto.ToBankLedgerResponse(ledger))
}

// listEntries godoc
// @Summary List a bank ledger's entries
// @Description Returns ledger entries for the bank ledger, newest first
// @Tags bank-ledgers
// @Produce json
// @Param entityID path string true "Entity ID"
// @Param bankLedgerID path string true "Bank ledger ID"
// @Param limit query int false "Maximum number of entries" default(50)
// @Success 200 {object} dto.ListLedgerEntriesResponse
// @Failure 404 {object} map[string]string "Bank ledger not found"
// @Security BearerAuth
// @Router /entities/{entityID}/bank-ledgers/{bankLedgerID}/entries [get]
func (h *bankLedgerHandler) listEntries(c *gin.Context) {
	logger, _, ok := requestIdentity(c)
	if !ok {
		return
	}
	entityID := c.Param("entityID")
	bankLedgerID := c.Param("bankLedgerID")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.ledgerEntryService.ListEntriesByBankLedger(c.Request.Context(), entityID, bankLedgerID, limit)
	if err != nil {
		respondServiceError(c, logger, err, "list ledger entries")
		return
	}
	c.JSON(http.StatusOK, dto.ListLedgerEntriesResponse{Entries: dto.ToLedgerEntryResponses(entries)})
}
