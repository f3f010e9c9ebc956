package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/propledger/property_ledger_app/internal/core/domain"
	portssvc "github.com/propledger/property_ledger_app/internal/core/ports/services"
	"github.com/propledger/property_ledger_app/internal/dto"
)

// chartAccountHandler handles HTTP requests related to the chart of accounts.
type chartAccountHandler struct {
	chartAccountService portssvc.ChartAccountSvcFacade
}

func newChartAccountHandler(svc portssvc.ChartAccountSvcFacade) *chartAccountHandler {
	return &chartAccountHandler{chartAccountService: svc}
}

// registerChartAccountRoutes registers chart of accounts routes on the
// entity-scoped group.
func registerChartAccountRoutes(rg *gin.RouterGroup, svc portssvc.ChartAccountSvcFacade) {
	h := newChartAccountHandler(svc)

	accounts := rg.Group("/chart-accounts")
	{
		accounts.POST("", h.createChartAccount)
		accounts.GET("", h.listChartAccounts)
		accounts.POST("/bootstrap", h.bootstrapDefaultChart)
		accounts.GET("/type/:accountType", h.listChartAccountsByType)
		accounts.GET("/:accountID", h.getChartAccount)
		accounts.PUT("/:accountID", h.updateChartAccount)
		accounts.POST("/:accountID/deactivate", h.deactivateChartAccount)
	}
}

// createChartAccount godoc
// @Summary Create a chart account
// @Description Creates a new account in the entity's chart of accounts
// @Tags chart-accounts
// @Accept json
// @Produce json
// @Param entityID path string true "Entity ID"
// @Param account body dto.CreateChartAccountRequest true "Account details"
// @Success 201 {object} dto.ChartAccountResponse
// @Failure 400 {object} map[string]string "Invalid input or parent type mismatch"
// @Failure 404 {object} map[string]string "Entity or parent account not found"
// @Failure 409 {object} map[string]string "Account code already exists"
// @Security BearerAuth
// @Router /entities/{entityID}/chart-accounts [post]
func (h *chartAccountHandler) createChartAccount(c *gin.Context) {
	logger, userID, ok := requestIdentity(c)
	if !ok {
		return
	}
	entityID := c.Param("entityID")

	var req dto.CreateChartAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateChartAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.chartAccountService.CreateChartAccount(c.Request.Context(), entityID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "create chart account")
		return
	}
	c.JSON(http.StatusCreated, dto.ToChartAccountResponse(account))
}

// listChartAccounts godoc
// @Summary List the chart of accounts as a tree
// @Description Returns root accounts with nested children, ordered by account code
// @Tags chart-accounts
// @Produce json
// @Param entityID path string true "Entity ID"
// @Param includeInactive query bool false "Include deactivated accounts" default(false)
// @Success 200 {object} dto.ListChartAccountsResponse
// @Security BearerAuth
// @Router /entities/{entityID}/chart-accounts [get]
func (h *chartAccountHandler) listChartAccounts(c *gin.Context) {
	logger, _, ok := requestIdentity(c)
	if !ok {
		return
	}
	entityID := c.Param("entityID")

	var params dto.ListChartAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListChartAccounts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	tree, err := h.chartAccountService.ListChartAccounts(c.Request.Context(), entityID, params.IncludeInactive)
	if err != nil {
		respondServiceError(c, logger, err, "list chart accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ListChartAccountsResponse{Accounts: dto.ToChartAccountTree(tree)})
}

// getChartAccount godoc
// @Summary Get a chart account
// @Description Returns one account with parent, children, recent entries and entry count
// @Tags chart-accounts
// @Produce json
// @Param entityID path string true "Entity ID"
// @Param accountID path string true "Chart account ID"
// @Success 200 {object} dto.ChartAccountDetailResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /entities/{entityID}/chart-accounts/{accountID} [get]
func (h *chartAccountHandler) getChartAccount(c *gin.Context) {
	logger, _, ok := requestIdentity(c)
	if !ok {
		return
	}
	entityID := c.Param("entityID")
	accountID := c.Param("accountID")

	detail, err := h.chartAccountService.GetChartAccountByID(c.Request.Context(), entityID, accountID)
	if err != nil {
		respondServiceError(c, logger, err, "get chart account")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// updateChartAccount godoc
// @Summary Update a chart account
// @Description Changes an account's name, description or active flag
// @Tags chart-accounts
// @Accept json
// @Produce json
// @Param entityID path string true "Entity ID"
// @Param accountID path string true "Chart account ID"
// @Param account body dto.UpdateChartAccountRequest true "Fields to change"
// @Success 200 {object} dto.ChartAccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /entities/{entityID}/chart-accounts/{accountID} [put]
func (h *chartAccountHandler) updateChartAccount(c *gin.Context) {
	logger, userID, ok := requestIdentity(c)
	if !ok {
		return
	}
	entityID := c.Param("entityID")
	accountID := c.Param("accountID")

	var req dto.UpdateChartAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateChartAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.chartAccountService.UpdateChartAccount(c.Request.Context(), entityID, accountID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "update chart account")
		return
	}
	c.JSON(http.StatusOK, dto.ToChartAccountResponse(account))
}

// deactivateChartAccount godoc
// @Summary Deactivate a chart account
// @Description Soft-deactivates an account; fails while active children remain
// @Tags chart-accounts
// @Produce json
// @Param entityID path string true "Entity ID"
// @Param accountID path string true "Chart account ID"
// @Success 200 {object} dto.ChartAccountResponse
// @Failure 400 {object} map[string]string "Account still has active children"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /entities/{entityID}/chart-accounts/{accountID}/deactivate [post]
func (h *chartAccountHandler) deactivateChartAccount(c *gin.Context) {
	logger, userID, ok := requestIdentity(c)
	if !ok {
		return
	}
	entityID := c.Param("entityID")
	accountID := c.Param("accountID")

	account, err := h.chartAccountService.DeactivateChartAccount(c.Request.Context(), entityID, accountID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "deactivate chart account")
		return
	}
	c.JSON(http.StatusOK, dto.ToChartAccountResponse(account))
}

// listChartAccountsByType godoc
// @Summary List active accounts of one type
// @Description Returns the entity's active accounts of the given type, flat, by account code
// @Tags chart-accounts
// @Produce json
// @Param entityID path string true "Entity ID"
// @Param accountType path string true "Account type" Enums(ASSET, LIABILITY, EQUITY, REVENUE, EXPENSE)
// @Success 200 {array} dto.ChartAccountResponse
// @Failure 400 {object} map[string]string "Unknown account type"
// @Security BearerAuth
// @Router /entities/{entityID}/chart-accounts/type/{accountType} [get]
func (h *chartAccountHandler) listChartAccountsByType(c *gin.Context) {
	logger, _, ok := requestIdentity(c)
	if !ok {
		return
	}
	entityID := c.Param("entityID")
	accountType := domain.AccountType(c.Param("accountType"))

	accounts, err := h.chartAccountService.ListChartAccountsByType(c.Request.Context(), entityID, accountType)
	if err != nil {
		respondServiceError(c, logger, err, "list chart accounts by type")
		return
	}
	c.JSON(http.StatusOK, dto.ToListChartAccountResponse(accounts))
}

// bootstrapDefaultChart godoc
// @Summary Seed the default chart of accounts
// @Description Creates the standard property-management chart for a fresh entity
// @Tags chart-accounts
// @Produce json
// @Param entityID path string true "Entity ID"
// @Success 201 {array} dto.ChartAccountResponse
// @Failure 404 {object} map[string]string "Entity not found"
// @Failure 409 {object} map[string]string "Entity already has chart accounts"
// @Security BearerAuth
// @Router /entities/{entityID}/chart-accounts/bootstrap [post]
func (h *chartAccountHandler) bootstrapDefaultChart(c *gin.Context) {
	logger, userID, ok := requestIdentity(c)
	if !ok {
		return
	}
	entityID := c.Param("entityID")

	accounts, err := h.chartAccountService.BootstrapDefaultChart(c.Request.Context(), entityID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "bootstrap default chart")
		return
	}
	c.JSON(http.StatusCreated, dto.ToListChartAccountResponse(accounts))
}
