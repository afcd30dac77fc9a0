package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"kittystore/internal/models"
	"kittystore/internal/service"
	"kittystore/internal/store"
	"kittystore/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

// Handler contains the HTTP handlers for the admin API.
type Handler struct {
	dashboard *service.DashboardService
	orders    *service.OrderAdminService
	catalog   *service.CatalogService
}

// NewHandler creates a new HTTP handler
func NewHandler(dashboard *service.DashboardService, orders *service.OrderAdminService, catalog *service.CatalogService) *Handler {
	return &Handler{
		dashboard: dashboard,
		orders:    orders,
		catalog:   catalog,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Payment provider callback; authenticated upstream at the gateway.
	router.POST("/api/v1/payments/:orderID/paid", h.markOrderPaid)

	admin := router.Group("/api/v1/admin", adminOnly())
	{
		admin.GET("/dashboard", h.getDashboard)

		admin.GET("/orders", h.listOrders)
		admin.GET("/orders/:id", h.getOrder)
		admin.PATCH("/orders/:id/status", h.updateOrderStatus)

		admin.GET("/products", h.listProducts)
		admin.GET("/products/low-stock", h.listLowStockProducts)
		admin.GET("/products/:id", h.getProduct)
		admin.POST("/products", h.createProduct)
		admin.PUT("/products/:id", h.updateProduct)
		admin.DELETE("/products/:id", h.deleteProduct)
	}
}

// adminOnly trusts the role header injected by the auth gateway in front of
// this service. Session and OAuth mechanics terminate there, not here.
func adminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if models.Role(c.GetHeader("X-User-Role")) != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "admin access required",
			})
			return
		}
		c.Next()
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// getDashboard serves the aggregated dashboard snapshot
func (h *Handler) getDashboard(c *gin.Context) {
	snapshot, err := h.dashboard.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Dashboard unavailable",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// listOrders lists orders, optionally filtered by ?status=
func (h *Handler) listOrders(c *gin.Context) {
	status := models.OrderStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	orders, err := h.orders.ListOrders(c.Request.Context(), status, limit)
	if err != nil {
		c.JSON(statusFor(err), gin.H{
			"error":   "Failed to list orders",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// getOrder fetches one order with its items
func (h *Handler) getOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	order, items, err := h.orders.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{
			"error":   "Failed to get order",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
		"items": items,
	})
}

// updateOrderStatus changes an order's fulfillment status
func (h *Handler) updateOrderStatus(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}
	if !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown order status"})
		return
	}

	if err := h.orders.UpdateStatus(c.Request.Context(), orderID, req.Status); err != nil {
		c.JSON(statusFor(err), gin.H{
			"error":   "Failed to update order status",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order_id": orderID, "status": req.Status})
}

// markOrderPaid records a successful payment callback
func (h *Handler) markOrderPaid(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("orderID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	if err := h.orders.MarkPaid(c.Request.Context(), orderID); err != nil {
		c.JSON(statusFor(err), gin.H{
			"error":   "Failed to mark order paid",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order_id": orderID, "payment_status": models.PaymentStatusPaid})
}

// listProducts lists the catalog
func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list products",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// listLowStockProducts lists products at or below the re-stock threshold
func (h *Handler) listLowStockProducts(c *gin.Context) {
	products, err := h.catalog.LowStockProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list low-stock products",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// getProduct fetches one product
func (h *Handler) getProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFor(err), gin.H{
			"error":   "Failed to get product",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, product)
}

type productRequest struct {
	Name     string `json:"name" binding:"required"`
	ImageURL string `json:"image_url"`
	Price    string `json:"price" binding:"required"`
	Stock    int    `json:"stock"`
}

func parsePrice(s string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q", s)
	}
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("price cannot be negative")
	}
	return price, nil
}

func (r *productRequest) toModel() (*models.Product, error) {
	price, err := parsePrice(r.Price)
	if err != nil {
		return nil, err
	}
	return &models.Product{
		Name:     r.Name,
		ImageURL: r.ImageURL,
		Price:    price,
		Stock:    r.Stock,
	}, nil
}

// createProduct adds a new product
func (h *Handler) createProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	product, err := req.toModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.catalog.CreateProduct(c.Request.Context(), product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create product",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// updateProduct replaces a product's fields
func (h *Handler) updateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	product, err := req.toModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	product.ID = id

	if err := h.catalog.UpdateProduct(c.Request.Context(), product); err != nil {
		c.JSON(statusFor(err), gin.H{
			"error":   "Failed to update product",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, product)
}

// deleteProduct removes a product
func (h *Handler) deleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		c.JSON(statusFor(err), gin.H{
			"error":   "Failed to delete product",
			"details": err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
