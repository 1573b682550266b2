package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"givestream/internal/pdf"
	"givestream/internal/repositories"
	"givestream/internal/services"
)

type DonationHandler struct {
	repo     repositories.DonationRepository
	sync     services.DonationSyncService // nil when stripe is not configured
	receipts pdf.Generator
}

func NewDonationHandler(repo repositories.DonationRepository, sync services.DonationSyncService, receipts pdf.Generator) *DonationHandler {
	return &DonationHandler{repo: repo, sync: sync, receipts: receipts}
}

// @Summary      Recent donations for overlay widgets
// @Tags         Donations
// @Produce      json
// @Param        limit  query     int  false  "max rows (default 20)"
// @Success      200    {array}   models.Donation
// @Router       /donations/recent [get]
func (h *DonationHandler) Recent(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	list, err := h.repo.ListRecent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load donations"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary      Total raised (completed donations)
// @Tags         Donations
// @Produce      json
// @Success      200  {object}  map[string]int64
// @Router       /donations/total [get]
func (h *DonationHandler) Total(c *gin.Context) {
	total, err := h.repo.TotalRaised()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load total"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

// @Summary      Donation receipt as PDF
// @Tags         Donations
// @Produce      application/pdf
// @Param        id  path  int  true  "donation id"
// @Success      200
// @Failure      404  {object}  map[string]string
// @Router       /donations/{id}/receipt.pdf [get]
func (h *DonationHandler) Receipt(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid donation id"})
		return
	}
	d, err := h.repo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load donation"})
		return
	}
	if d == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "donation not found"})
		return
	}

	data := pdf.ReceiptData{
		DonationID: d.ID,
		SessionID:  d.StripeSessionID,
		Amount:     d.Amount,
		Currency:   d.Currency,
		CreatedAt:  d.CreatedAt,
	}
	if d.DonorEmail != nil {
		data.DonorEmail = *d.DonorEmail
	}
	b, err := h.receipts.GenerateReceipt(data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render receipt"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="receipt_%d.pdf"`, d.ID))
	c.Data(http.StatusOK, "application/pdf", b)
}

// @Summary      Reconcile completed checkout sessions into the ledger
// @Description  Idempotent: safe to re-run over the same or overlapping windows
// @Tags         Donations
// @Produce      json
// @Param        limit  query     int     false  "max sessions (default 100)"
// @Param        since  query     string  false  "RFC3339 lower bound on provider event time"
// @Success      200    {object}  services.SyncSummary
// @Failure      503    {object}  map[string]string
// @Router       /admin/donations/sync [post]
func (h *DonationHandler) Sync(c *gin.Context) {
	if h.sync == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "payment provider is not configured"})
		return
	}

	limit := int64(100)
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			limit = n
		}
	}
	var since *time.Time
	if v := c.Query("since"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "since must be RFC3339"})
			return
		}
		since = &t
	}

	summary, err := h.sync.Run(limit, since)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}
