package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shop-pos/internal/application/service"
	"github.com/sangkips/shop-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/shop-pos/internal/presentation/http/dto/response"
)

// ProductHandler handles catalog HTTP requests
type ProductHandler struct {
	catalogService *service.CatalogService
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalogService *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.catalogService.ListProducts(c.Request.Context(), service.ProductFilter{
		Search:     filter.Search,
		Category:   filter.Category,
		Pagination: paginationParams(filter.Page, filter.PerPage),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Products retrieved successfully", result)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Get handles getting a product by ID
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.catalogService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Update handles replacing the editable fields of a product
func (h *ProductHandler) Update(c *gin.Context) {
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.catalogService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product deleted successfully", nil)
}

// Categories lists the distinct product categories
func (h *ProductHandler) Categories(c *gin.Context) {
	categories, err := h.catalogService.Categories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categories retrieved successfully", categories)
}

// GetLowStock handles getting products at or below their alert level
func (h *ProductHandler) GetLowStock(c *gin.Context) {
	products, err := h.catalogService.LowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock products retrieved successfully", products)
}

// AdjustStock handles a manual stock correction
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	var req request.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.catalogService.AdjustStock(c.Request.Context(), c.Param("id"), req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock adjusted successfully", product)
}

// ExportProducts downloads the catalog as an xlsx workbook
func (h *ProductHandler) ExportProducts(c *gin.Context) {
	data, err := h.catalogService.ExportProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, "products.xlsx", xlsxContentType, data)
}

// ImportProducts handles an xlsx upload in the "file" form field
func (h *ProductHandler) ImportProducts(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	result, err := h.catalogService.ImportProducts(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Products imported", result)
}
