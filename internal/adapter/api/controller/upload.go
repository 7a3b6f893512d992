package controller

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-restaurante/internal/adapter/api/dto"
)

// photoFromForm lê o campo "foto" do formulário. Em caso de erro a resposta já foi escrita.
func photoFromForm(ctx *gin.Context) (string, multipart.File, bool) {
	header, err := ctx.FormFile("foto")
	if err != nil {
		badRequest(ctx, err)
		return "", nil, false
	}
	if header.Size > maxPhotoSize {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Arquivo muito grande",
			fmt.Sprintf("tamanho máximo de %d MB", maxPhotoSize>>20)))
		return "", nil, false
	}
	file, err := header.Open()
	if err != nil {
		badRequest(ctx, err)
		return "", nil, false
	}
	return header.Filename, file, true
}
