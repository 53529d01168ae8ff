package controllers

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"perfume-store/config"
	"perfume-store/libs"
	"perfume-store/models"
	"perfume-store/services"
	"perfume-store/upstream"
)

type AdminController struct {
	API      *upstream.Client
	Sessions *services.SessionService
	Notifier *services.NotificationCenter
}

// @Summary Create product
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateProductRequest true "Product"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/products [post]
func (ctrl *AdminController) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request"})
		return
	}

	product, err := ctrl.API.CreateProduct(c.Request.Context(), sessionToken(c), req)
	if err != nil {
		handleUpstreamError(c, ctrl.Sessions, ctrl.Notifier, err)
		return
	}

	invalidateProductCache()
	c.JSON(http.StatusCreated, models.Response{Success: true, Message: "Product created", Data: product})
}

// @Summary Update product
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body models.UpdateProductRequest true "Fields to update"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/products/{id} [patch]
func (ctrl *AdminController) UpdateProduct(c *gin.Context) {
	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request"})
		return
	}

	product, err := ctrl.API.UpdateProduct(c.Request.Context(), sessionToken(c), c.Param("id"), req)
	if err != nil {
		handleUpstreamError(c, ctrl.Sessions, ctrl.Notifier, err)
		return
	}

	invalidateProductCache()
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Product updated", Data: product})
}

// @Summary Delete product
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Router /admin/products/{id} [delete]
func (ctrl *AdminController) DeleteProduct(c *gin.Context) {
	// Snapshot the record first so hosted images can be cleaned up after the
	// delete. Cleanup is best effort; a failed lookup never blocks the delete.
	product, lookupErr := ctrl.API.GetProduct(c.Request.Context(), c.Param("id"))
	if lookupErr != nil {
		product = nil
	}

	if err := ctrl.API.DeleteProduct(c.Request.Context(), sessionToken(c), c.Param("id")); err != nil {
		handleUpstreamError(c, ctrl.Sessions, ctrl.Notifier, err)
		return
	}

	invalidateProductCache()
	if product != nil {
		go cleanupProductImages(*product)
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Product deleted"})
}

// cleanupProductImages removes a deleted product's hosted variant images.
// Failures are logged only; the upstream record is already gone.
func cleanupProductImages(product models.Product) {
	for _, v := range product.Variants {
		publicID := libs.ExtractPublicID(v.Image)
		if publicID == "" {
			continue
		}
		if err := libs.DeleteFromCloudinary(publicID); err != nil {
			log.Printf("failed to delete image %s for product %s: %v", publicID, product.ID, err)
		}
	}
}

// @Summary Restock product
// @Description Add stock units (ml) to a product's remaining total
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body models.RestockRequest true "Amount to add"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/products/{id}/restock [post]
func (ctrl *AdminController) RestockProduct(c *gin.Context) {
	var req models.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request"})
		return
	}

	product, err := ctrl.API.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleUpstreamError(c, ctrl.Sessions, ctrl.Notifier, err)
		return
	}

	newTotal := product.TotalStockMl + req.AmountMl
	updated, err := ctrl.API.UpdateProduct(c.Request.Context(), sessionToken(c), product.ID, models.UpdateProductRequest{
		TotalStockMl: &newTotal,
	})
	if err != nil {
		handleUpstreamError(c, ctrl.Sessions, ctrl.Notifier, err)
		return
	}

	invalidateProductCache()
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Product restocked", Data: updated})
}

// @Summary Upload product image
// @Description Upload an image and get back its hosted URL for use in variant records
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image file"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/products/image [post]
func (ctrl *AdminController) UploadProductImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Image file required"})
		return
	}

	localPath, err := saveTempUpload(c, file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: err.Error()})
		return
	}

	url, err := libs.UploadToCloudinary(localPath)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Message: "Image upload failed"})
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Image uploaded", Data: gin.H{"url": url}})
}

// @Summary All orders
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Router /admin/orders [get]
func (ctrl *AdminController) ListAllOrders(c *gin.Context) {
	orders, err := ctrl.API.ListAllOrders(c.Request.Context(), sessionToken(c))
	if err != nil {
		handleUpstreamError(c, ctrl.Sessions, ctrl.Notifier, err)
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Orders retrieved", Data: orders})
}

// @Summary Update order status
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body models.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/orders/{id}/status [patch]
func (ctrl *AdminController) UpdateOrderStatus(c *gin.Context) {
	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request"})
		return
	}

	order, err := ctrl.API.UpdateOrderStatus(c.Request.Context(), sessionToken(c), c.Param("id"), req.Status)
	if err != nil {
		handleUpstreamError(c, ctrl.Sessions, ctrl.Notifier, err)
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Order status updated", Data: order})
}

// @Summary Sales dashboard
// @Description Revenue totals, revenue by day and top products from order records
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Router /admin/dashboard [get]
func (ctrl *AdminController) GetDashboard(c *gin.Context) {
	orders, err := ctrl.API.ListAllOrders(c.Request.Context(), sessionToken(c))
	if err != nil {
		handleUpstreamError(c, ctrl.Sessions, ctrl.Notifier, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Dashboard computed",
		Data:    services.BuildDashboard(orders),
	})
}

var allowedImageExts = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// saveTempUpload stages the multipart file on local disk for the Cloudinary
// uploader, which removes it after the transfer.
func saveTempUpload(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > 5*1024*1024 {
		return "", errors.New("file too large (max 5MB)")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := false
	for _, e := range allowedImageExts {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", errors.New("invalid file type")
	}

	uploadDir := config.AppConfig.UploadDir
	os.MkdirAll(uploadDir, os.ModePerm)

	filename := fmt.Sprintf("%d_%s", time.Now().Unix(), strings.ReplaceAll(file.Filename, " ", "_"))
	fullPath := filepath.Join(uploadDir, filename)

	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		return "", err
	}
	return fullPath, nil
}
