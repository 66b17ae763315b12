package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quickcart/internal/catalog"
)

/* =======================
   REQUEST DTOs
======================= */

type createProductRequest struct {
	Name           string            `json:"name" binding:"required"`
	Price          float64           `json:"price" binding:"required"`
	Category       string            `json:"category" binding:"required"`
	Description    string            `json:"description"`
	ImageURL       string            `json:"imageUrl"`
	Stock          int               `json:"stock"`
	Specifications map[string]string `json:"specifications"`
}

type updateProductRequest struct {
	Name           *string            `json:"name"`
	Price          *float64           `json:"price"`
	Category       *string            `json:"category"`
	Description    *string            `json:"description"`
	ImageURL       *string            `json:"imageUrl"`
	Stock          *int               `json:"stock"`
	Specifications *map[string]string `json:"specifications"`
}

/* =======================
   ADMIN PRODUCT CRUD
======================= */

func CreateProduct(products catalog.Writer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/products"
		defer handlePanic(c, logger, route)

		var req createProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, logger, http.StatusBadRequest, route, "invalid request body")
			return
		}

		product, err := products.Create(c.Request.Context(), catalog.CreateInput{
			Name:           req.Name,
			Price:          req.Price,
			Category:       req.Category,
			Description:    req.Description,
			ImageURL:       req.ImageURL,
			Stock:          req.Stock,
			Specifications: req.Specifications,
		})
		if err != nil {
			respondWithError(c, logger, http.StatusBadRequest, route, err.Error())
			return
		}

		logger.Info("product created", zap.String("productId", product.ID.Hex()))
		c.JSON(http.StatusCreated, product)
	}
}

func UpdateProduct(products catalog.Writer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/products/:id"
		defer handlePanic(c, logger, route)

		var req updateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, logger, http.StatusBadRequest, route, "invalid request body")
			return
		}

		product, err := products.Update(c.Request.Context(), c.Param("id"), catalog.UpdateInput{
			Name:           req.Name,
			Price:          req.Price,
			Category:       req.Category,
			Description:    req.Description,
			ImageURL:       req.ImageURL,
			Stock:          req.Stock,
			Specifications: req.Specifications,
		})
		if err != nil {
			var notFound catalog.ProductNotFoundError
			if errors.As(err, &notFound) {
				respondWithError(c, logger, http.StatusNotFound, route, "product not found")
				return
			}
			respondWithError(c, logger, http.StatusBadRequest, route, err.Error())
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

func DeleteProduct(products catalog.Writer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/products/:id"
		defer handlePanic(c, logger, route)

		found, err := products.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondWithError(c, logger, http.StatusInternalServerError, route, "could not delete product")
			return
		}
		if !found {
			respondWithError(c, logger, http.StatusNotFound, route, "product not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}
