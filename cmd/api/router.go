package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"library-backend/internal/shared/middleware"
	"library-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

// maxMultipartMemory caps form parsing; covers are limited far below this.
const maxMultipartMemory = 8 << 20

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = maxMultipartMemory

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	auth := middleware.AuthMiddleware(c.JWTManager)
	staff := []gin.HandlerFunc{auth, middleware.StaffMiddleware()}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c, auth)
		setupBookRoutes(v1, c, staff)
		setupAuthorRoutes(v1, c, staff)
		setupGenreRoutes(v1, c, staff)
		setupReservationRoutes(v1, c, auth, staff)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/forgot-password", c.UserHandler.ForgotPassword)
		auth.POST("/reset-password", c.UserHandler.ResetPassword)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	users := v1.Group("/users")
	users.Use(auth)
	{
		users.GET("/me", c.UserHandler.Me)
		users.GET("/readers/count", middleware.StaffMiddleware(), c.UserHandler.ReadersCount)
		users.PUT("/:id/role", middleware.AdminMiddleware(), c.UserHandler.AssignRole)
	}
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container, staff []gin.HandlerFunc) {
	books := v1.Group("/books")
	{
		// Public
		books.GET("", c.BookHandler.List)
		books.GET("/all", c.BookHandler.GetAll)
		books.GET("/search", c.BookHandler.Search)
		books.GET("/recent", c.BookHandler.Recent)
		books.GET("/count", c.BookHandler.Count)
		books.GET("/:id", c.BookHandler.GetByID)

		// Librarian / Admin
		managed := books.Group("")
		managed.Use(staff...)
		{
			managed.GET("/export", c.BookHandler.Export)
			managed.GET("/:id/quantity-check", c.BookHandler.QuantityCheck)
			managed.POST("", c.BookHandler.Create)
			managed.PUT("/:id", c.BookHandler.Update)
			managed.DELETE("/:id", c.BookHandler.Delete)
		}
	}
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container, staff []gin.HandlerFunc) {
	authors := v1.Group("/authors")
	{
		authors.GET("", c.AuthorHandler.List)
		authors.GET("/all", c.AuthorHandler.GetAll)
		authors.GET("/search", c.AuthorHandler.Search)
		authors.GET("/:id", c.AuthorHandler.GetByID)
		authors.GET("/:id/books/count", c.AuthorHandler.BooksCount)

		managed := authors.Group("")
		managed.Use(staff...)
		{
			managed.POST("", c.AuthorHandler.Create)
			managed.PUT("/:id", c.AuthorHandler.Update)
			managed.DELETE("/:id", c.AuthorHandler.Delete)
		}
	}
}

// ========================================
// GENRE ROUTES
// ========================================
func setupGenreRoutes(v1 *gin.RouterGroup, c *container.Container, staff []gin.HandlerFunc) {
	genres := v1.Group("/genres")
	{
		genres.GET("", c.GenreHandler.List)
		genres.GET("/all", c.GenreHandler.GetAll)
		genres.GET("/search", c.GenreHandler.Search)
		genres.GET("/count", c.GenreHandler.Count)
		genres.GET("/:id", c.GenreHandler.GetByID)
		genres.GET("/:id/books/count", c.GenreHandler.BooksCount)

		managed := genres.Group("")
		managed.Use(staff...)
		{
			managed.POST("", c.GenreHandler.Create)
			managed.PUT("/:id", c.GenreHandler.Update)
			managed.DELETE("/:id", c.GenreHandler.Delete)
		}
	}
}

// ========================================
// RESERVATION ROUTES
// ========================================
func setupReservationRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc, staff []gin.HandlerFunc) {
	reservations := v1.Group("/reservations")
	{
		reservations.POST("", auth, c.ReservationHandler.Create)

		review := reservations.Group("")
		review.Use(staff...)
		{
			review.GET("/pending", c.ReservationHandler.Pending)
			review.GET("/:id", c.ReservationHandler.GetByID)
			review.POST("/:id/approve", c.ReservationHandler.Approve)
			review.POST("/:id/reject", c.ReservationHandler.Reject)
		}
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "ok"
		if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = fmt.Sprintf("error: %v", err)
			health["status"] = "degraded"
		}

		redisStatus := "ok"
		if err := appCtx.Cache.Ping(ctx); err != nil {
			redisStatus = fmt.Sprintf("error: %v", err)
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
