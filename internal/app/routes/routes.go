package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appauth "github.com/kaanyildiz/assignflow/internal/app/auth"
	"github.com/kaanyildiz/assignflow/internal/app/controllers"
	"github.com/kaanyildiz/assignflow/internal/app/models/dto"
	"github.com/kaanyildiz/assignflow/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	assignmentController *controllers.AssignmentController,
	reviewController *controllers.ReviewController,
	notificationController *controllers.NotificationController,
	departmentController *controllers.DepartmentController,
	userController *controllers.UserController,
	authMiddleware *middleware.AuthMiddleware,
	uploadDir string,
) {
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"status": "ok"}, "Healthy"))
	})

	// Uploaded assignment files
	router.Static("/uploads", uploadDir)

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
	}

	// Department listing is public so the registration form can offer choices.
	departments := v1.Group("/departments")
	{
		departments.GET("", departmentController.GetAllDepartments)
		departments.GET("/:id", departmentController.GetDepartmentByID)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.GetProfile)

		notifications := authenticated.Group("/notifications")
		notifications.Use(authMiddleware.RequirePermission(appauth.PermViewNotifications))
		{
			notifications.GET("", notificationController.ListNotifications)
			notifications.POST("/:id/read", notificationController.MarkRead)
			notifications.POST("/read-all", notificationController.MarkAllRead)
			notifications.GET("/unread-count", notificationController.GetUnreadCount)
		}

		student := authenticated.Group("/student/assignments")
		{
			studentRead := student.Group("")
			studentRead.Use(authMiddleware.RequirePermission(appauth.PermViewOwnAssignments))
			{
				studentRead.GET("", assignmentController.GetMyAssignments)
				studentRead.GET("/:id", assignmentController.GetAssignment)
				studentRead.GET("/:id/history", assignmentController.GetHistory)
			}

			studentWrite := student.Group("")
			studentWrite.Use(authMiddleware.RequirePermission(appauth.PermSubmitAssignments))
			{
				studentWrite.POST("", assignmentController.CreateAssignment)
				studentWrite.PUT("/:id", assignmentController.UpdateDraft)
				studentWrite.DELETE("/:id", assignmentController.DeleteDraft)
				studentWrite.POST("/:id/submit", assignmentController.SubmitAssignment)
				studentWrite.POST("/:id/resubmit", assignmentController.ResubmitAssignment)
			}
		}

		professor := authenticated.Group("/professor")
		professor.Use(authMiddleware.RequirePermission(appauth.PermReviewAssignments))
		{
			professor.GET("/dashboard", reviewController.GetDashboard)
			professor.GET("/assignments/:id", reviewController.GetAssignment)
			professor.GET("/assignments/:id/history", reviewController.GetHistory)
			professor.POST("/assignments/:id/approve/request-otp", reviewController.RequestApprovalOTP)
			professor.POST("/assignments/:id/approve/verify", reviewController.VerifyApprovalOTP)
			professor.POST("/assignments/:id/reject", reviewController.RejectAssignment)

			forwarding := professor.Group("")
			forwarding.Use(authMiddleware.RequirePermission(appauth.PermForwardAssignments))
			{
				forwarding.GET("/forward-recipients", reviewController.GetForwardRecipients)
				forwarding.POST("/assignments/:id/forward", reviewController.ForwardAssignment)
			}
		}

		admin := authenticated.Group("")
		{
			adminUsers := admin.Group("/admin/users")
			adminUsers.Use(authMiddleware.RequirePermission(appauth.PermManageUsers))
			{
				adminUsers.POST("", userController.CreateUser)
				adminUsers.GET("", userController.ListUsers)
				adminUsers.GET("/:id", userController.GetUserByID)
				adminUsers.PATCH("/:id/deactivate", userController.DeactivateUser)
				adminUsers.PATCH("/:id/activate", userController.ActivateUser)
			}

			adminDepartments := admin.Group("/departments")
			adminDepartments.Use(authMiddleware.RequirePermission(appauth.PermManageDepartments))
			{
				adminDepartments.POST("", departmentController.CreateDepartment)
				adminDepartments.PUT("/:id", departmentController.UpdateDepartment)
				adminDepartments.DELETE("/:id", departmentController.DeleteDepartment)
			}
		}
	}
}
