package handler

import (
	"net/http"

	"github.com/blues/bookstore/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CartHandler 购物车接口
type CartHandler struct {
	cartLogic *logic.CartLogic
}

func NewCartHandler(db *gorm.DB) *CartHandler {
	return &CartHandler{
		cartLogic: logic.NewCartLogic(db, logic.NewInventoryLogic(db)),
	}
}

// Get 查看购物车
func (h *CartHandler) Get(c *gin.Context) {
	view, err := h.cartLogic.GetView(CurrentUser(c).ID)
	if err != nil {
		FailWithError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "查询成功", view)
}

type addCartItemRequest struct {
	BookID   int64 `json:"book_id" binding:"required"`
	Quantity int   `json:"quantity" binding:"required"`
}

// AddItem 加入购物车
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	view, err := h.cartLogic.AddItem(CurrentUser(c).ID, req.BookID, req.Quantity)
	if err != nil {
		FailWithError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "已加入购物车", view)
}

type patchCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// PatchItem 修改购物车条目数量
func (h *CartHandler) PatchItem(c *gin.Context) {
	itemID, ok := parseID(c, "itemId")
	if !ok {
		return
	}

	var req patchCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	view, err := h.cartLogic.PatchItemQty(CurrentUser(c).ID, itemID, req.Quantity)
	if err != nil {
		FailWithError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "已更新", view)
}

// DeleteItem 删除购物车条目
func (h *CartHandler) DeleteItem(c *gin.Context) {
	itemID, ok := parseID(c, "itemId")
	if !ok {
		return
	}

	if err := h.cartLogic.DeleteItem(CurrentUser(c).ID, itemID); err != nil {
		FailWithError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "已删除", nil)
}

// Clear 清空购物车
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cartLogic.Clear(nil, CurrentUser(c).ID); err != nil {
		FailWithError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "已清空", nil)
}
