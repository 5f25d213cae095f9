package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pomodoroclock/backend/internal/model"
	"pomodoroclock/backend/internal/service"
)

type FriendHandler struct {
	friendService *service.FriendService
}

func NewFriendHandler(friendService *service.FriendService) *FriendHandler {
	return &FriendHandler{friendService: friendService}
}

// Request sends a pending request from :username to :other.
func (h *FriendHandler) Request(c *gin.Context) {
	request, apiErr := h.friendService.Request(
		c.Request.Context(),
		c.Param("username"),
		c.Param("other"),
		model.RequestPending,
	)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"friendRequest": request})
}

func (h *FriendHandler) Get(c *gin.Context) {
	request, apiErr := h.friendService.Get(c.Request.Context(), c.Param("username"), c.Param("other"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"friendRequest": request})
}

// Sent lists the pending requests :username has sent.
func (h *FriendHandler) Sent(c *gin.Context) {
	requests, apiErr := h.friendService.FindAllRequestBySender(c.Request.Context(), c.Param("username"), model.RequestPending)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"friendRequests": requests})
}

// Received lists the pending requests waiting on :username.
func (h *FriendHandler) Received(c *gin.Context) {
	requests, apiErr := h.friendService.FindAllRequestByReceiver(c.Request.Context(), c.Param("username"), model.RequestPending)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"friendRequests": requests})
}

func (h *FriendHandler) Friends(c *gin.Context) {
	friends, apiErr := h.friendService.FindAllFriends(c.Request.Context(), c.Param("username"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"friends": friends})
}

// Accept accepts the request :other sent to :username.
func (h *FriendHandler) Accept(c *gin.Context) {
	profile, apiErr := h.friendService.AcceptRequest(c.Request.Context(), c.Param("other"), c.Param("username"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"friendRequest": profile})
}

// Remove deletes the :other→:username edge, pending or accepted.
func (h *FriendHandler) Remove(c *gin.Context) {
	request, apiErr := h.friendService.Remove(c.Request.Context(), c.Param("other"), c.Param("username"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"friendRequest": request})
}
