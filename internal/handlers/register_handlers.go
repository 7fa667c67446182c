package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	portssvc "github.com/divya9658/financial-ledger-api/internal/core/ports/services"
)

// RegisterRoutes sets up all the API routes on the engine.
func RegisterRoutes(r *gin.Engine, svc *portssvc.ServiceContainer) {
	r.GET("/health", healthCheck)

	apiV1 := r.Group("/api/v1")
	registerAccountRoutes(apiV1, svc.Account, svc.Ledger)
	registerTransactionRoutes(apiV1, svc.Ledger)
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bindErrorMessage turns a gin binding failure into a client-friendly message.
// Validator failures list the offending fields and tags; anything else (bad
// JSON, wrong types) is reported as a malformed body.
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, len(verrs))
		for i, fe := range verrs {
			parts[i] = fmt.Sprintf("field %q failed validation on %q", fe.Field(), fe.Tag())
		}
		return strings.Join(parts, "; ")
	}
	return "Invalid request body"
}
