package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-restaurante/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-restaurante/pkg/apperror"
)

// statusFor traduz a classificação do erro para o status HTTP
func statusFor(err error) int {
	switch apperror.KindOf(err) {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindInvalidTransition, apperror.KindConflict:
		return http.StatusConflict
	case apperror.KindPrecondition:
		return http.StatusUnprocessableEntity
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindUnauthorized:
		return http.StatusUnauthorized
	case apperror.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError escreve o erro no formato padrão da API
func respondError(ctx *gin.Context, message string, err error) {
	status := statusFor(err)
	if apperror.IsRetriable(err) {
		ctx.Header("Retry-After", "1")
	}
	ctx.JSON(status, dto.NewErrorResponse(status, message, err.Error()))
}

func badRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
}

// bindOptionalJSON lê o corpo JSON quando existir. Corpo vazio, inclusive
// em requisições chunked sem Content-Length, mantém os valores padrão.
func bindOptionalJSON(ctx *gin.Context, obj interface{}) error {
	if ctx.Request.Body == nil || ctx.Request.Body == http.NoBody {
		return nil
	}
	if err := ctx.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
