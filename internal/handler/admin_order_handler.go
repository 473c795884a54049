package handler

import (
	"net/http"

	"github.com/blues/bookstore/internal/logic"
	"github.com/blues/bookstore/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminOrderHandler 管理员订单接口
type AdminOrderHandler struct {
	orderLogic *logic.OrderLogic
}

func NewAdminOrderHandler(db *gorm.DB) *AdminOrderHandler {
	inventory := logic.NewInventoryLogic(db)
	cart := logic.NewCartLogic(db, inventory)
	return &AdminOrderHandler{
		orderLogic: logic.NewOrderLogic(db, inventory, cart),
	}
}

// List 全量订单列表
func (h *AdminOrderHandler) List(c *gin.Context) {
	page, pageSize := parsePage(c)

	orders, total, err := h.orderLogic.AdminList(page, pageSize)
	if err != nil {
		FailWithError(c, err)
		return
	}

	summaries := make([]orderSummary, 0, len(orders))
	for i := range orders {
		summaries = append(summaries, toOrderSummary(&orders[i]))
	}

	SuccessResponse(c, http.StatusOK, "查询成功", gin.H{
		"items":     summaries,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

type patchStatusRequest struct {
	Status model.OrderStatus `json:"status" binding:"required"`
}

// PatchStatus 覆写订单状态（管理员逃生通道，不做状态机检查）
func (h *AdminOrderHandler) PatchStatus(c *gin.Context) {
	orderID, ok := parseID(c, "orderId")
	if !ok {
		return
	}

	var req patchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	prev, order, err := h.orderLogic.AdminSetStatus(orderID, req.Status)
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "状态已更新", gin.H{
		"order_id":        order.ID,
		"previous_status": prev,
		"new_status":      order.Status,
		"updated_at":      order.UpdatedAt,
	})
}
