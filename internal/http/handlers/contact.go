package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/contactbook-backend/internal/domain"
	"github.com/yungbote/contactbook-backend/internal/http/response"
	"github.com/yungbote/contactbook-backend/internal/platform/apierr"
	"github.com/yungbote/contactbook-backend/internal/platform/ctxutil"
	"github.com/yungbote/contactbook-backend/internal/services"
)

type ContactHandler struct {
	contactService services.ContactService
}

func NewContactHandler(contactService services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// POST /contact
func (h *ContactHandler) Create(c *gin.Context) {
	var req types.ContactInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apierr.Validation("invalid request body"))
		return
	}
	ctx := c.Request.Context()
	created, err := h.contactService.Create(ctx, ctxutil.CallerID(ctx), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, created)
}

// GET /mycontacts?page=&limit=&order=
func (h *ContactHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	page, err := h.contactService.List(ctx, ctxutil.CallerID(ctx), services.ListParams{
		Page:  queryInt(c, "page"),
		Limit: queryInt(c, "limit"),
		Order: types.SortOrder(strings.ToLower(strings.TrimSpace(c.Query("order")))),
	})
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, page)
}

type updateContactRequest struct {
	ID string `json:"id"`
	types.ContactPatch
}

// PUT /contact
// body: { "id": "...", "name"?: "...", "address"?: "...", "email"?: "...", "phone"?: "..." }
func (h *ContactHandler) Update(c *gin.Context) {
	var req updateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apierr.Validation("invalid request body"))
		return
	}
	ctx := c.Request.Context()
	updated, err := h.contactService.Update(ctx, ctxutil.CallerID(ctx), req.ID, req.ContactPatch)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, updated)
}

// DELETE /delete/:id
func (h *ContactHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	res, err := h.contactService.Delete(ctx, ctxutil.CallerID(ctx), c.Param("id"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// GET /contactById/:id
func (h *ContactHandler) FindByID(c *gin.Context) {
	ctx := c.Request.Context()
	found, err := h.contactService.FindByID(ctx, ctxutil.CallerID(ctx), c.Param("id"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, found)
}

// GET /contactByEmail/:emailID
func (h *ContactHandler) FindByEmail(c *gin.Context) {
	ctx := c.Request.Context()
	found, err := h.contactService.FindByEmail(ctx, ctxutil.CallerID(ctx), c.Param("emailID"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, found)
}

// queryInt returns 0 for a missing or non-numeric value so the service
// falls back to its default.
func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return 0
	}
	return n
}
