package middleware

import "github.com/gin-gonic/gin"

// InjectActor кладёт в контекст идентификатор действующего лица из
// заголовка X-Actor. Аутентификацию делает внешний gateway; сюда
// приходит уже проверенный идентификатор.
func InjectActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.GetHeader("X-Actor")
		if actor == "" {
			actor = "system"
		}
		c.Set("Actor", actor)

		c.Next()
	}
}
