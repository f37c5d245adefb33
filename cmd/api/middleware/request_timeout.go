package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestTimeout 은 요청 컨텍스트에 deadline 을 건다. 핸들러는 같은 컨텍스트로
// Mongo 를 조회하므로 시간이 초과되면 조회가 중단되고 504 로 응답한다.
// d 가 0 이하면 아무것도 하지 않는다.
func RequestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
