package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"quickcart/internal/cart"
	"quickcart/internal/catalog"
	"quickcart/internal/checkout"
	"quickcart/internal/config"
	"quickcart/internal/database"
	"quickcart/internal/handlers"
	"quickcart/internal/middleware"
	"quickcart/internal/order"
	"quickcart/internal/store"
	"quickcart/internal/wishlist"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logger.Sync()

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		logger.Fatal("mongo connect failed", zap.Error(err))
	}
	db := client.Database(cfg.DBName)
	logger.Info("mongo connected", zap.String("database", db.Name()))

	if err := database.EnsureProductIndexes(db); err != nil {
		logger.Warn("product index warning", zap.Error(err))
	}
	if err := database.EnsureCollectionIndexes(db); err != nil {
		logger.Warn("collection index warning", zap.Error(err))
	}

	var st store.Store = store.NewMongoStore(db)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		st = store.NewCachedStore(st, store.NewRedisCache(rdb), logger)
		logger.Info("redis cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	carts := cart.NewManager(st, logger)
	orders := order.NewManager(st, logger)
	wishlists := wishlist.NewManager(st, logger)
	products := catalog.NewMongoCatalog(db)
	checkoutSvc := checkout.NewService(carts, orders, logger)

	r := gin.Default()

	r.GET("/products", handlers.GetProducts(products, logger))
	r.GET("/products/:id", handlers.GetProduct(products, logger))
	r.GET("/categories", handlers.GetCategories(products, logger))

	session := r.Group("/")
	session.Use(middleware.Session(cfg.JWTSecret, logger))
	{
		session.GET("/cart", handlers.GetCart(carts, logger))
		session.POST("/cart/items", handlers.AddCartItem(carts, products, logger))
		session.PUT("/cart/items/:productId", handlers.UpdateCartItem(carts, logger))
		session.DELETE("/cart/items/:productId", handlers.RemoveCartItem(carts, logger))
		session.DELETE("/cart", handlers.ClearCart(carts, logger))
		session.GET("/cart/summary", handlers.CartSummary(carts, logger))

		session.POST("/checkout", handlers.PlaceOrder(checkoutSvc, logger))
		session.GET("/orders", handlers.GetOrders(orders, logger))
		session.GET("/orders/:id", handlers.GetOrder(orders, logger))

		session.GET("/wishlist", handlers.GetWishlist(wishlists, logger))
		session.POST("/wishlist/toggle", handlers.ToggleWishlistItem(wishlists, logger))
		session.POST("/wishlist/:productId", handlers.AddWishlistItem(wishlists, logger))
		session.DELETE("/wishlist/:productId", handlers.RemoveWishlistItem(wishlists, logger))
	}

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(cfg.JWTSecret))
	{
		admin.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true})
		})

		admin.POST("/products", handlers.CreateProduct(products, logger))
		admin.PUT("/products/:id", handlers.UpdateProduct(products, logger))
		admin.DELETE("/products/:id", handlers.DeleteProduct(products, logger))

		admin.GET("/orders", handlers.GetAllOrders(orders, logger))
		admin.PUT("/orders/:id/status", handlers.UpdateOrderStatus(orders, logger))
		admin.DELETE("/orders/:id", handlers.DeleteOrder(orders, logger))
	}

	logger.Info("listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
