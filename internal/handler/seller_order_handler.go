package handler

import (
	"net/http"

	"github.com/blues/bookstore/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SellerOrderHandler 卖家订单接口
type SellerOrderHandler struct {
	sellerOrderLogic *logic.SellerOrderLogic
}

func NewSellerOrderHandler(db *gorm.DB) *SellerOrderHandler {
	return &SellerOrderHandler{
		sellerOrderLogic: logic.NewSellerOrderLogic(db),
	}
}

// List 本卖家订单明细列表（按明细展开）
func (h *SellerOrderHandler) List(c *gin.Context) {
	page, pageSize := parsePage(c)

	rows, total, err := h.sellerOrderLogic.List(currentSellerID(c), page, pageSize)
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "查询成功", gin.H{
		"items":     rows,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// Detail 本卖家视角的订单详情
func (h *SellerOrderHandler) Detail(c *gin.Context) {
	orderID, ok := parseID(c, "orderId")
	if !ok {
		return
	}

	detail, err := h.sellerOrderLogic.Detail(currentSellerID(c), orderID)
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "查询成功", detail)
}

// Ship 发货
func (h *SellerOrderHandler) Ship(c *gin.Context) {
	orderID, ok := parseID(c, "orderId")
	if !ok {
		return
	}

	status, err := h.sellerOrderLogic.Ship(currentSellerID(c), orderID)
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "发货成功", gin.H{
		"order_id": orderID,
		"status":   status,
	})
}
