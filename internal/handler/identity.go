package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/blues/bookstore/internal/apperr"
	"github.com/blues/bookstore/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const currentUserKey = "currentUser"

// Identity 身份中间件：从上游网关注入的X-User-Id解析当前用户
// 身份签发与校验由外部完成，这里只负责加载用户并挂到请求上下文
func Identity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-Id")
		if raw == "" {
			ErrorResponse(c, http.StatusUnauthorized, string(apperr.CodeUnauthorized), "需要登录")
			c.Abort()
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID < 1 {
			ErrorResponse(c, http.StatusUnauthorized, string(apperr.CodeUnauthorized), "无效的用户身份")
			c.Abort()
			return
		}

		var user model.User
		if err := db.Take(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ErrorResponse(c, http.StatusUnauthorized, string(apperr.CodeUnauthorized), "无效的用户身份")
			} else {
				FailWithError(c, err)
			}
			c.Abort()
			return
		}

		c.Set(currentUserKey, &user)
		c.Next()
	}
}

// RequireRole 角色中间件：限定路由组的访问角色
func RequireRole(role model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.Role != role {
			ErrorResponse(c, http.StatusForbidden, string(apperr.CodeForbidden), "无权访问")
			c.Abort()
			return
		}
		if role == model.RoleSeller && user.SellerID == nil {
			ErrorResponse(c, http.StatusForbidden, string(apperr.CodeForbidden), "卖家账号未关联卖家")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser 取出中间件挂载的当前用户
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}

// currentSellerID 当前用户的卖家ID（RequireRole(seller)已保证非空）
func currentSellerID(c *gin.Context) int64 {
	user := CurrentUser(c)
	if user == nil || user.SellerID == nil {
		return 0
	}
	return *user.SellerID
}
