package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS returns the browser cross-origin policy middleware. Allowed origins,
// methods, and headers come straight from the cors configuration section;
// callers sending X-API-Key from a browser need it in the headers list.
func CORS(origins, methods, headers []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: methods,
		AllowHeaders: headers,
	})
}
