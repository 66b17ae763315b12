package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quickcart/internal/catalog"
)

// GetProducts lists the catalog, optionally narrowed to one category
// via the ?category query parameter.
func GetProducts(products catalog.Provider, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products"
		defer handlePanic(c, logger, route)

		var err error
		var result interface{}

		if category := strings.TrimSpace(c.Query("category")); category != "" {
			result, err = products.GetByCategory(c.Request.Context(), category)
		} else {
			result, err = products.GetAll(c.Request.Context())
		}
		if err != nil {
			respondWithError(c, logger, http.StatusInternalServerError, route, "could not load products")
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func GetProduct(products catalog.Provider, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products/:id"
		defer handlePanic(c, logger, route)

		product, err := products.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			var notFound catalog.ProductNotFoundError
			if errors.As(err, &notFound) {
				respondWithError(c, logger, http.StatusNotFound, route, "product not found")
				return
			}
			respondWithError(c, logger, http.StatusInternalServerError, route, "could not load product")
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

func GetCategories(cat *catalog.MongoCatalog, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /categories"
		defer handlePanic(c, logger, route)

		categories, err := cat.Categories(c.Request.Context())
		if err != nil {
			respondWithError(c, logger, http.StatusInternalServerError, route, "could not load categories")
			return
		}

		c.JSON(http.StatusOK, categories)
	}
}
