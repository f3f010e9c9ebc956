package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/propledger/property_ledger_app/internal/core/ports/services"
	"github.com/propledger/property_ledger_app/internal/dto"
)

// ledgerEntryHandler handles HTTP requests for direct ledger postings.
type ledgerEntryHandler struct {
	ledgerEntryService portssvc.LedgerEntrySvcFacade
}

func newLedgerEntryHandler(svc portssvc.LedgerEntrySvcFacade) *ledgerEntryHandler {
	return &ledgerEntryHandler{ledgerEntryService: svc}
}

// registerLedgerEntryRoutes registers posting routes on the entity-scoped group.
func registerLedgerEntryRoutes(rg *gin.RouterGroup, svc portssvc.LedgerEntrySvcFacade) {
	h := newLedgerEntryHandler(svc)

	entries := rg.Group("/ledger-entries")
	{
		entries.POST("", h.createEntries)
	}
}

// createEntries godoc
// @Summary Post a balanced ledger transaction
// @Description Persists two or more entries whose debits and credits must balance
// @Tags ledger-entries
// @Accept json
// @Produce json
// @Param entityID path string true "Entity ID"
// @Param entries body dto.CreateLedgerEntriesRequest true "Entry batch"
// @Success 201 {object} dto.CreateLedgerEntriesResponse
// @Failure 400 {object} map[string]string "Unbalanced batch or invalid entry"
// @Failure 404 {object} map[string]string "Referenced account or ledger not found"
// @Security BearerAuth
// @Router /entities/{entityID}/ledger-entries [post]
func (h *ledgerEntryHandler) createEntries(c *gin.Context) {
	logger, userID, ok := requestIdentity(c)
	if !ok {
		return
	}
	entityID := c.Param("entityID")

	var req dto.CreateLedgerEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entries, err := h.ledgerEntryService.CreateEntries(c.Request.Context(), entityID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "create ledger entries")
		return
	}
	c.JSON(http.StatusCreated, dto.CreateLedgerEntriesResponse{Entries: dto.ToLedgerEntryResponses(entries)})
}
