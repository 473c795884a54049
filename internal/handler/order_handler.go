package handler

import (
	"net/http"

	"github.com/blues/bookstore/internal/logic"
	"github.com/blues/bookstore/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// OrderHandler 买家订单接口
type OrderHandler struct {
	orderLogic *logic.OrderLogic
}

func NewOrderHandler(db *gorm.DB) *OrderHandler {
	inventory := logic.NewInventoryLogic(db)
	cart := logic.NewCartLogic(db, inventory)
	return &OrderHandler{
		orderLogic: logic.NewOrderLogic(db, inventory, cart),
	}
}

type createOrderItem struct {
	BookID   int64 `json:"book_id"`
	Quantity int   `json:"quantity"`
}

// 条目内容不在绑定层校验，交给业务层统一产出VALIDATION_FAILED
type createOrderRequest struct {
	Items []createOrderItem `json:"items"`
}

type createOrderResponse struct {
	OrderID   int64  `json:"order_id"`
	CreatedAt string `json:"created_at"`
}

type orderSummary struct {
	ID               int64             `json:"id"`
	Status           model.OrderStatus `json:"status"`
	TotalAmountCents int64             `json:"total_amount_cents"`
	CreatedAt        string            `json:"created_at"`
}

func toOrderSummary(o *model.Order) orderSummary {
	return orderSummary{
		ID:               o.ID,
		Status:           o.Status,
		TotalAmountCents: o.TotalAmountCents,
		CreatedAt:        o.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// Create 按明细列表下单
func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	items := make([]logic.CreateItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, logic.CreateItem{BookID: it.BookID, Quantity: it.Quantity})
	}

	user := CurrentUser(c)
	order, err := h.orderLogic.Create(user.ID, items)
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "下单成功", createOrderResponse{
		OrderID:   order.ID,
		CreatedAt: order.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
}

// CreateFromCart 按购物车下单
func (h *OrderHandler) CreateFromCart(c *gin.Context) {
	user := CurrentUser(c)
	order, err := h.orderLogic.CreateFromCart(user.ID)
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "下单成功", createOrderResponse{
		OrderID:   order.ID,
		CreatedAt: order.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
}

// List 买家订单列表
func (h *OrderHandler) List(c *gin.Context) {
	user := CurrentUser(c)
	page, pageSize := parsePage(c)

	orders, total, err := h.orderLogic.ListMy(user.ID, page, pageSize)
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

// Detail 买家订单详情
func (h *OrderHandler) Detail(c *gin.Context) {
	orderID, ok := parseID(c, "orderId")
	if !ok {
		return
	}

	user := CurrentUser(c)
	order, items, err := h.orderLogic.DetailMy(user.ID, orderID)
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "查询成功", gin.H{
		"order": toOrderSummary(order),
		"items": items,
	})
}

// Pay 买家支付订单
func (h *OrderHandler) Pay(c *gin.Context) {
	orderID, ok := parseID(c, "orderId")
	if !ok {
		return
	}

	user := CurrentUser(c)
	order, err := h.orderLogic.PayMy(user.ID, orderID)
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "支付成功", toOrderSummary(order))
}
