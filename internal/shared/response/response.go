package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qualite-pro-core/internal/shared/apperrors"
)

func Success(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func OK(ctx *gin.Context, data interface{}) {
	Success(ctx, http.StatusOK, data)
}

func Created(ctx *gin.Context, data interface{}) {
	Success(ctx, http.StatusCreated, data)
}

func Message(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{
		"success": true,
		"message": message,
	})
}

// Error écrit {"error": ..., "details": {"code": ...}} ; une erreur non typée devient 500
func Error(ctx *gin.Context, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		_ = ctx.Error(err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "Une erreur inattendue s'est produite",
			"details": map[string]interface{}{
				"code":       "INTERNAL_ERROR",
				"request_id": ctx.GetString("request_id"),
			},
		})
		return
	}

	if appErr.Err != nil {
		_ = ctx.Error(appErr)
	}

	details := map[string]interface{}{"code": appErr.Code}
	for k, v := range appErr.Details {
		details[k] = v
	}
	if len(appErr.Champs) > 0 {
		details["champs"] = appErr.Champs
	}
	if appErr.Status >= http.StatusInternalServerError {
		details["request_id"] = ctx.GetString("request_id")
	}

	ctx.JSON(appErr.Status, gin.H{
		"error":   appErr.Message,
		"details": details,
	})
}

// Abort variante pour les middlewares
func Abort(ctx *gin.Context, err error) {
	Error(ctx, err)
	ctx.Abort()
}

// BadRequestBody corps JSON illisible
func BadRequestBody(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, gin.H{
		"error": "Données invalides",
		"details": map[string]interface{}{
			"code":    "VALIDATION_ERROR",
			"message": err.Error(),
		},
	})
}
