package controllers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/incampus/backend/internal/app/models"
	"github.com/incampus/backend/internal/app/models/dto"
	"github.com/incampus/backend/internal/app/services"
	"github.com/incampus/backend/internal/middleware"
	"github.com/incampus/backend/internal/pkg/filestorage"
)

const maxPostImages = 5

// PostController handles post, feed, like and comment endpoints
type PostController struct {
	postService *services.PostService
	fileStorage filestorage.FileStorage
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, fileStorage filestorage.FileStorage) *PostController {
	return &PostController{postService: postService, fileStorage: fileStorage}
}

// Create handles publishing a post with optional images
// @Summary Create a post
// @Tags posts
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param content formData string false "Post text (max 2000 chars)"
// @Param images formData file false "Up to 5 images"
// @Success 201 {object} dto.APIResponse{data=dto.PostResponse} "Post created"
// @Failure 400 {object} dto.APIResponse "Empty post or too many images"
// @Router /posts [post]
func (c *PostController) Create(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	content := ctx.PostForm("content")
	if len(content) > 2000 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Post cannot be more than 2000 characters"))
		return
	}

	var media []models.PostMedia
	if form, err := ctx.MultipartForm(); err == nil && form != nil {
		files := form.File["images"]
		if len(files) > maxPostImages {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("At most 5 images per post"))
			return
		}
		for _, file := range files {
			url, err := c.fileStorage.SaveFile(file, "posts")
			if err != nil {
				middleware.HandleAPIError(ctx, err)
				return
			}
			media = append(media, models.PostMedia{
				URL:  url,
				Type: mediaTypeFor(file.Filename),
			})
		}
	}

	post, err := c.postService.Create(ctx, userID, content, media)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(gin.H{"post": post}))
}

func mediaTypeFor(filename string) models.MediaType {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp4", ".mov", ".webm":
		return models.MediaVideo
	}
	return models.MediaImage
}

// Feed handles the personalized timeline
// @Summary Get the feed
// @Description Posts by the caller and their friends, plus posts friends liked
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.PostResponse} "Feed"
// @Router /posts/feed [get]
func (c *PostController) Feed(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	posts, err := c.postService.Feed(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"posts": posts}))
}

// UserPosts handles listing a single user's posts
// @Summary Get a user's posts
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User id"
// @Success 200 {object} dto.APIResponse{data=[]dto.PostResponse} "Posts"
// @Router /posts/user/{userId} [get]
func (c *PostController) UserPosts(ctx *gin.Context) {
	viewerID, _ := middleware.CurrentUserID(ctx)
	authorID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}

	posts, err := c.postService.ListByAuthor(ctx, viewerID, authorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"posts": posts}))
}

// ToggleLike handles liking or unliking a post
// @Summary Toggle a like
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param postId path int true "Post id"
// @Success 200 {object} dto.APIResponse{data=dto.LikeResponse} "New like state"
// @Failure 404 {object} dto.APIResponse "Post not found"
// @Router /posts/{postId}/like [patch]
func (c *PostController) ToggleLike(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	postID, ok := pathID(ctx, "postId")
	if !ok {
		return
	}

	result, err := c.postService.ToggleLike(ctx, userID, postID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// AddComment handles commenting on a post
// @Summary Add a comment
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postId path int true "Post id"
// @Param request body dto.AddCommentRequest true "Comment"
// @Success 201 {object} dto.APIResponse{data=dto.CommentResponse} "Comment added"
// @Failure 400 {object} dto.APIResponse "Missing or too long text"
// @Failure 404 {object} dto.APIResponse "Post not found"
// @Router /posts/{postId}/comments [post]
func (c *PostController) AddComment(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	postID, ok := pathID(ctx, "postId")
	if !ok {
		return
	}

	var req dto.AddCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Comment text is required (max 500 chars)"))
		return
	}

	comment, err := c.postService.AddComment(ctx, userID, postID, req.Text)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(gin.H{"comment": comment}))
}

// ListComments handles listing a post's comments
// @Summary Get a post's comments
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param postId path int true "Post id"
// @Success 200 {object} dto.APIResponse{data=[]dto.CommentResponse} "Comments"
// @Failure 404 {object} dto.APIResponse "Post not found"
// @Router /posts/{postId}/comments [get]
func (c *PostController) ListComments(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	postID, ok := pathID(ctx, "postId")
	if !ok {
		return
	}

	comments, err := c.postService.ListComments(ctx, userID, postID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"comments": comments}))
}

// Delete handles removing a post
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param postId path int true "Post id"
// @Success 200 {object} dto.APIResponse "Post deleted"
// @Failure 403 {object} dto.APIResponse "Caller is not the author"
// @Failure 404 {object} dto.APIResponse "Post not found"
// @Router /posts/{postId} [delete]
func (c *PostController) Delete(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	postID, ok := pathID(ctx, "postId")
	if !ok {
		return
	}

	if err := c.postService.Delete(ctx, userID, postID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Post deleted"))
}
