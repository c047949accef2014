package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopmono/storefront/api"
	"github.com/shopmono/storefront/internal/auth"
	"github.com/shopmono/storefront/internal/handler"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Deps struct {
	JWTSecret string

	Auth         *handler.AuthHandler
	Chat         *handler.ChatHandler
	Contact      *handler.ContactHandler
	Notification *handler.NotificationHandler
	Product      *handler.ProductHandler
	Order        *handler.OrderHandler
	Admin        *handler.AdminHandler
}

func New(d Deps) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/health", handler.Health)
	r.GET("/ready", handler.Ready)
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(http.StatusFound, "/swagger/") })
	r.GET("/swagger/*any", func(c *gin.Context) {
		if strings.TrimPrefix(c.Param("any"), "/") == "openapi.json" {
			c.Data(http.StatusOK, "application/json", api.OpenAPISpec)
			return
		}
		if strings.TrimPrefix(c.Param("any"), "/") == "" {
			c.Request.URL.Path = "/swagger/index.html"
			c.Request.RequestURI = "/swagger/index.html"
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/openapi.json"))(c)
	})

	authed := auth.Middleware(d.JWTSecret)
	adminOnly := auth.RequireAdmin()

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/register", d.Auth.Register)
		v1.POST("/auth/login", d.Auth.Login)

		v1.POST("/chats", d.Chat.Create)
		v1.POST("/chats/:id/messages", d.Chat.SendMessage)
		v1.GET("/chats/:id/messages", d.Chat.Messages)
		v1.PUT("/chats/:id/status", authed, adminOnly, d.Chat.UpdateStatus)

		v1.POST("/ratings", d.Chat.SubmitRating)
		v1.GET("/ratings", authed, adminOnly, d.Chat.Ratings)

		v1.POST("/contacts", d.Contact.Submit)
		v1.GET("/contacts", authed, adminOnly, d.Contact.List)
		v1.POST("/contacts/:id/replies", authed, adminOnly, d.Contact.Reply)
		v1.PUT("/contacts/:id/status", authed, adminOnly, d.Contact.UpdateStatus)

		v1.GET("/products", d.Product.List)
		v1.GET("/products/:id", d.Product.Get)
		v1.POST("/products", authed, adminOnly, d.Product.Create)
		v1.PUT("/products/:id", authed, adminOnly, d.Product.Update)
		v1.PUT("/products/:id/stock", authed, adminOnly, d.Product.UpdateStock)

		v1.POST("/orders", authed, d.Order.Create)
		v1.GET("/orders", authed, d.Order.ListMine)

		admin := v1.Group("/admin", authed, adminOnly)
		{
			admin.GET("/chats", d.Chat.AdminList)
			admin.GET("/notifications", d.Notification.List)
			admin.POST("/notifications", d.Notification.Dispatch)
			admin.PUT("/notifications/read-all", d.Notification.MarkAllRead)
			admin.PUT("/notifications/:id/read", d.Notification.MarkRead)
			admin.GET("/settings", d.Admin.GetSettings)
			admin.PUT("/settings", d.Admin.UpdateSettings)
			admin.GET("/directory", d.Admin.Directory)
			admin.GET("/directory/:email", d.Admin.DirectoryEntry)
			admin.GET("/users", d.Admin.Accounts)
		}
	}

	return r
}
