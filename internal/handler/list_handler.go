package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "pomodoroclock/backend/internal/errors"
	"pomodoroclock/backend/internal/middleware"
	"pomodoroclock/backend/internal/model"
	"pomodoroclock/backend/internal/service"
)

type ListHandler struct {
	listService *service.ListService
}

type createListRequest struct {
	Username  string     `json:"username" binding:"required,min=1,max=25"`
	Title     *string    `json:"title" binding:"omitempty,min=1,max=50"`
	ListType  *bool      `json:"listType"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

type updateListRequest struct {
	Title     *string    `json:"title" binding:"omitempty,min=1,max=50"`
	ListType  *bool      `json:"listType"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

func NewListHandler(listService *service.ListService) *ListHandler {
	return &ListHandler{listService: listService}
}

// Create adds a list for the username in the body, which must be the caller
// unless the caller is an admin.
func (h *ListHandler) Create(c *gin.Context) {
	var req createListRequest
	if !bindJSON(c, &req) {
		return
	}
	if !middleware.Claims(c).CanActAs(req.Username) {
		writeError(c, apperrors.Forbidden("must be the same user or an admin"))
		return
	}

	list, apiErr := h.listService.Add(c.Request.Context(), model.NewList{
		Username:  req.Username,
		Title:     req.Title,
		ListType:  req.ListType,
		ExpiresAt: req.ExpiresAt,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"list": list})
}

func (h *ListHandler) List(c *gin.Context) {
	lists, apiErr := h.listService.FindAll(c.Request.Context(), c.Query("nameLike"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"lists": lists})
}

func (h *ListHandler) Get(c *gin.Context) {
	id, ok := intParam(c, "listId")
	if !ok {
		return
	}

	list, apiErr := h.listService.Get(c.Request.Context(), id)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *ListHandler) Update(c *gin.Context) {
	id, ok := h.authorizeOwner(c)
	if !ok {
		return
	}

	var req updateListRequest
	if !bindJSON(c, &req) {
		return
	}

	list, apiErr := h.listService.Update(c.Request.Context(), id, model.ListPatch{
		Title:     req.Title,
		ListType:  req.ListType,
		ExpiresAt: req.ExpiresAt,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *ListHandler) Delete(c *gin.Context) {
	id, ok := h.authorizeOwner(c)
	if !ok {
		return
	}

	if apiErr := h.listService.Remove(c.Request.Context(), id); apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// authorizeOwner resolves :listId and checks the caller owns that list or
// is an admin.
func (h *ListHandler) authorizeOwner(c *gin.Context) (int, bool) {
	id, ok := intParam(c, "listId")
	if !ok {
		return 0, false
	}

	owner, apiErr := h.listService.Owner(c.Request.Context(), id)
	if apiErr != nil {
		writeError(c, apiErr)
		return 0, false
	}
	if !middleware.Claims(c).CanActAs(owner) {
		writeError(c, apperrors.Forbidden("must own the list or be an admin"))
		return 0, false
	}
	return id, true
}
