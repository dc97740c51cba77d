package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/incampus/backend/internal/app/models/dto"
	"github.com/incampus/backend/internal/app/services"
	"github.com/incampus/backend/internal/middleware"
)

// FriendController handles the friendship graph endpoints
type FriendController struct {
	friendService     *services.FriendService
	suggestionService *services.SuggestionService
}

// NewFriendController creates a new FriendController
func NewFriendController(friendService *services.FriendService, suggestionService *services.SuggestionService) *FriendController {
	return &FriendController{
		friendService:     friendService,
		suggestionService: suggestionService,
	}
}

func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid id parameter"))
		return 0, false
	}
	return id, true
}

// SendRequest handles sending a friend request
// @Summary Send a friend request
// @Tags friends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendFriendRequestRequest true "Receiver"
// @Success 201 {object} dto.APIResponse{data=dto.FriendshipResponse} "Request sent"
// @Failure 400 {object} dto.APIResponse "Self request or pair already linked"
// @Failure 404 {object} dto.APIResponse "Receiver not found"
// @Router /friends/send-request [post]
func (c *FriendController) SendRequest(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.SendFriendRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("receiverId is required"))
		return
	}

	friendship, err := c.friendService.SendRequest(ctx, userID, req.ReceiverID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewFriendshipResponse(friendship)))
}

// AcceptRequest handles accepting a pending request
// @Summary Accept a friend request
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param id path int true "Friendship id"
// @Success 200 {object} dto.APIResponse{data=dto.FriendshipResponse} "Request accepted"
// @Failure 400 {object} dto.APIResponse "Request not pending"
// @Failure 403 {object} dto.APIResponse "Caller is not the recipient"
// @Failure 404 {object} dto.APIResponse "Request not found"
// @Router /friends/accept-request/{id} [patch]
func (c *FriendController) AcceptRequest(ctx *gin.Context) {
	c.respond(ctx, true)
}

// DeclineRequest handles rejecting a pending request
// @Summary Decline a friend request
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param id path int true "Friendship id"
// @Success 200 {object} dto.APIResponse{data=dto.FriendshipResponse} "Request declined"
// @Failure 400 {object} dto.APIResponse "Request not pending"
// @Failure 403 {object} dto.APIResponse "Caller is not the recipient"
// @Failure 404 {object} dto.APIResponse "Request not found"
// @Router /friends/decline-request/{id} [patch]
func (c *FriendController) DeclineRequest(ctx *gin.Context) {
	c.respond(ctx, false)
}

func (c *FriendController) respond(ctx *gin.Context, accept bool) {
	userID, _ := middleware.CurrentUserID(ctx)
	friendshipID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	friendship, err := c.friendService.Respond(ctx, friendshipID, userID, accept)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewFriendshipResponse(friendship)))
}

// CancelRequest handles withdrawing a sent request
// @Summary Cancel a sent friend request
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param id path int true "Friendship id"
// @Success 200 {object} dto.APIResponse "Request cancelled"
// @Failure 400 {object} dto.APIResponse "Request not pending"
// @Failure 403 {object} dto.APIResponse "Caller is not the sender"
// @Failure 404 {object} dto.APIResponse "Request not found"
// @Router /friends/cancel-request/{id} [delete]
func (c *FriendController) CancelRequest(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	friendshipID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.friendService.Cancel(ctx, friendshipID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Friend request cancelled"))
}

// Unfriend handles removing an accepted friend
// @Summary Unfriend a user
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param peerId path int true "Peer user id"
// @Success 200 {object} dto.APIResponse "Friend removed"
// @Failure 404 {object} dto.APIResponse "No accepted friendship with this user"
// @Router /friends/unfriend/{peerId} [delete]
func (c *FriendController) Unfriend(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	peerID, ok := pathID(ctx, "peerId")
	if !ok {
		return
	}

	if err := c.friendService.Unfriend(ctx, userID, peerID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Friend removed"))
}

// ListFriends handles listing accepted friends
// @Summary List friends
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.UserSummary} "Friends"
// @Router /friends/friends-list [get]
func (c *FriendController) ListFriends(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	friends, err := c.friendService.ListFriends(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"friends": friends}))
}

// ListPendingRequests handles listing incoming requests
// @Summary List incoming friend requests
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.FriendshipResponse} "Pending requests"
// @Router /friends/pending-requests [get]
func (c *FriendController) ListPendingRequests(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	requests, err := c.friendService.ListPendingRequests(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"pendingRequests": requests}))
}

// ListSentRequests handles listing outgoing requests
// @Summary List sent friend requests
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.FriendshipResponse} "Sent requests"
// @Router /friends/sent-requests [get]
func (c *FriendController) ListSentRequests(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	requests, err := c.friendService.ListSentRequests(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"sentRequests": requests}))
}

// Suggestions handles the ranked friend-suggestion list
// @Summary Get friend suggestions
// @Description Ranks non-connected users by shared course, batch and role
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum results" default(10)
// @Success 200 {object} dto.APIResponse{data=[]dto.FriendSuggestion} "Suggestions"
// @Router /friends/suggestions [get]
func (c *FriendController) Suggestions(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	limit := services.DefaultSuggestionLimit
	if raw := ctx.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	suggestions, err := c.suggestionService.Suggest(ctx, userID, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(suggestions))
}
