package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/incampus/backend/internal/app/controllers"
	"github.com/incampus/backend/internal/middleware"
	"github.com/incampus/backend/internal/pkg/realtime"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	friendController *controllers.FriendController,
	postController *controllers.PostController,
	notificationController *controllers.NotificationController,
	userController *controllers.UserController,
	wsHandler *realtime.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	// --- Public auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authController.Signup)
		auth.POST("/verify-otp", authController.VerifyOTP)
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	friends := authenticated.Group("/friends")
	{
		friends.POST("/send-request", friendController.SendRequest)
		friends.PATCH("/accept-request/:id", friendController.AcceptRequest)
		friends.PATCH("/decline-request/:id", friendController.DeclineRequest)
		friends.DELETE("/cancel-request/:id", friendController.CancelRequest)
		friends.DELETE("/unfriend/:peerId", friendController.Unfriend)
		friends.GET("/friends-list", friendController.ListFriends)
		friends.GET("/pending-requests", friendController.ListPendingRequests)
		friends.GET("/sent-requests", friendController.ListSentRequests)
		friends.GET("/suggestions", friendController.Suggestions)
	}

	posts := authenticated.Group("/posts")
	{
		posts.POST("", postController.Create)
		posts.GET("/feed", postController.Feed)
		posts.GET("/user/:userId", postController.UserPosts)
		posts.PATCH("/:postId/like", postController.ToggleLike)
		posts.POST("/:postId/comments", postController.AddComment)
		posts.GET("/:postId/comments", postController.ListComments)
		posts.DELETE("/:postId", postController.Delete)
	}

	notifications := authenticated.Group("/notifications")
	{
		notifications.GET("", notificationController.List)
		notifications.GET("/unread-count", notificationController.UnreadCount)
		notifications.PATCH("/mark-as-read", notificationController.MarkRead)
		notifications.PATCH("/mark-all-as-read", notificationController.MarkAllRead)
		notifications.DELETE("/:notificationId", notificationController.Delete)
	}

	users := authenticated.Group("/users")
	{
		users.GET("/me", userController.Me)
		users.PATCH("/me", userController.UpdateMe)
		users.GET("/search", userController.Search)

		// OTP-gated account security flows
		users.POST("/send-email-change-otp", userController.SendSecurityOTP)
		users.POST("/verify-email-change-otp", userController.ChangeEmail)
		users.POST("/send-password-change-otp", userController.SendSecurityOTP)
		users.POST("/verify-password-change-otp", userController.ChangePassword)
		users.POST("/send-delete-account-otp", userController.SendSecurityOTP)
		users.POST("/verify-delete-account-otp", userController.DeleteAccount)

		users.GET("/:userId", userController.Get)
	}

	profile := authenticated.Group("/profile")
	{
		profile.GET("/me", userController.Me)
		profile.PATCH("", userController.UpdateMe)
		profile.POST("/avatar", userController.UploadAvatar)
		profile.POST("/cover", userController.UploadCoverPhoto)
		profile.GET("/:userId", userController.Get)
	}

	// Realtime channel, authenticates via token query parameter
	router.GET("/ws", wsHandler.Serve)
}
