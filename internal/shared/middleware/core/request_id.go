package core

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

// RequestIDHandler type spécifique pour Fx
type RequestIDHandler gin.HandlerFunc

// RequestIDMiddleware réutilise l'identifiant fourni par le client ou en génère un
func RequestIDMiddleware() RequestIDHandler {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" || len(requestID) > 64 {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		c.Header(HeaderRequestID, requestID)
		c.Next()
	}
}
