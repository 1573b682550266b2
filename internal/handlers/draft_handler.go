package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"givestream/internal/drafts"
)

type DraftHandler struct {
	store *drafts.Store
}

func NewDraftHandler(store *drafts.Store) *DraftHandler {
	return &DraftHandler{store: store}
}

// ownerFromRequest maps the request identity onto a draft owner: the JWT
// user when authenticated, otherwise the caller's device id.
func (h *DraftHandler) ownerFromRequest(c *gin.Context) (drafts.Owner, bool) {
	if uid, ok := getUserID(c); ok {
		return drafts.Authenticated(uid), true
	}
	deviceID := c.GetHeader("X-Device-ID")
	if deviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Device-ID header required for anonymous drafts"})
		return drafts.Owner{}, false
	}
	return drafts.Anonymous(deviceID), true
}

// @Summary      Load the caller's wizard draft
// @Tags         Drafts
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Success      204  "no draft"
// @Router       /drafts [get]
func (h *DraftHandler) Load(c *gin.Context) {
	owner, ok := h.ownerFromRequest(c)
	if !ok {
		return
	}
	payload, found := h.store.Load(c.Request.Context(), owner)
	if !found {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payload": payload})
}

// @Summary      Save the caller's wizard draft (full replace)
// @Tags         Drafts
// @Accept       json
// @Success      204  "saved (best effort)"
// @Router       /drafts [put]
func (h *DraftHandler) Save(c *gin.Context) {
	owner, ok := h.ownerFromRequest(c)
	if !ok {
		return
	}
	var req struct {
		Payload map[string]any `json:"payload" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// persistence failures are swallowed: the wizard must keep working
	h.store.Save(c.Request.Context(), owner, req.Payload)
	c.Status(http.StatusNoContent)
}

// @Summary      Discard the caller's wizard draft
// @Tags         Drafts
// @Success      204  "cleared"
// @Router       /drafts [delete]
func (h *DraftHandler) Clear(c *gin.Context) {
	owner, ok := h.ownerFromRequest(c)
	if !ok {
		return
	}
	h.store.Clear(c.Request.Context(), owner)
	c.Status(http.StatusNoContent)
}

// @Summary      Clear the caller's drafts (sign-out sweep)
// @Tags         Drafts
// @Success      204  "cleared"
// @Failure      401  {object}  map[string]string
// @Router       /drafts/all [delete]
func (h *DraftHandler) ClearAll(c *gin.Context) {
	// the sweep covers every identity the caller presented: the signed-in
	// account, and the device's anonymous draft when a device id is sent
	var owners []drafts.Owner
	if uid, ok := getUserID(c); ok {
		owners = append(owners, drafts.Authenticated(uid))
	}
	if deviceID := c.GetHeader("X-Device-ID"); deviceID != "" {
		owners = append(owners, drafts.Anonymous(deviceID))
	}
	if len(owners) == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no caller identity to clear"})
		return
	}
	h.store.ClearAll(c.Request.Context(), owners...)
	c.Status(http.StatusNoContent)
}

// @Summary      Adopt a device's anonymous draft into the signed-in account
// @Tags         Drafts
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Failure      401  {object}  map[string]string
// @Router       /drafts/transfer [post]
func (h *DraftHandler) Transfer(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	var req struct {
		DeviceID string `json:"device_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	moved := h.store.TransferAnonymousDraft(c.Request.Context(), req.DeviceID, uid)
	c.JSON(http.StatusOK, gin.H{"transferred": moved})
}
