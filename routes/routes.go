package routes

import (
	"storefront-api/controllers"
	"storefront-api/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the API route groups. Catalog reads are public;
// catalog writes require an admin account and reviews require a session.
func RegisterRoutes(
	r *gin.Engine,
	auth *middleware.Auth,
	pc *controllers.ProductController,
	cc *controllers.CategoryController,
	rc *controllers.ReviewController,
	ac *controllers.AuthController,
) {
	api := r.Group("/api")

	products := api.Group("/products")
	{
		products.GET("", pc.GetProducts)
		products.GET("/slug/:slug", pc.GetProductBySlug)
		products.GET("/:id", pc.GetProduct)
		products.GET("/:id/reviews", rc.GetProductReviews)

		products.POST("", auth.Protect(), auth.Admin(), pc.CreateProduct)
		products.PUT("/:id", auth.Protect(), auth.Admin(), pc.UpdateProduct)
		products.DELETE("/:id", auth.Protect(), auth.Admin(), pc.DeleteProduct)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", cc.GetCategories)
		categories.GET("/slug/:slug", cc.GetCategoryBySlug)
		categories.GET("/:id", cc.GetCategory)

		categories.POST("", auth.Protect(), auth.Admin(), cc.CreateCategory)
		categories.PUT("/:id", auth.Protect(), auth.Admin(), cc.UpdateCategory)
		categories.DELETE("/:id", auth.Protect(), auth.Admin(), cc.DeleteCategory)
	}

	reviews := api.Group("/reviews")
	{
		reviews.POST("", auth.Protect(), rc.CreateReview)
		reviews.DELETE("/:id", auth.Protect(), rc.DeleteReview)
	}

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", ac.Register)
		authGroup.POST("/login", ac.Login)
		authGroup.GET("/me", auth.Protect(), ac.Me)
		authGroup.GET("/logout", auth.Protect(), ac.Logout)
	}
}
