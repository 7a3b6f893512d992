package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-restaurante/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/user"
	"github.com/hugohenrick/pdv-restaurante/pkg/auth"
)

// UserController gerencia as requisições relacionadas a usuários
type UserController struct {
	userRepository user.Repository
}

// NewUserController cria uma nova instância de UserController
func NewUserController(userRepository user.Repository) *UserController {
	return &UserController{
		userRepository: userRepository,
	}
}

// Create cria um novo usuário
// @Summary Cria um novo usuário
// @Description Cria um novo usuário no sistema
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param user body dto.UserRequest true "Dados do usuário"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /users [post]
func (c *UserController) Create(ctx *gin.Context) {
	var request dto.UserRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	// Verificar se a senha foi fornecida (obrigatória para novos usuários)
	if request.Password == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Senha requerida", "A senha é obrigatória para novos usuários"))
		return
	}

	p, err := user.NewProfile(request.Email, request.Name, user.Role(request.Role), request.Password)
	if err != nil {
		respondError(ctx, "Erro ao criar usuário", err)
		return
	}

	if err := c.userRepository.Create(ctx, p); err != nil {
		respondError(ctx, "Erro ao criar usuário", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToUserResponse(p))
}

// List lista os usuários
// @Summary Lista usuários
// @Tags users
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.UserResponse
// @Router /users [get]
func (c *UserController) List(ctx *gin.Context) {
	profiles, err := c.userRepository.List(ctx)
	if err != nil {
		respondError(ctx, "Erro ao listar usuários", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToUserListResponse(profiles))
}

// Get busca um usuário pelo ID
// @Summary Busca um usuário
// @Tags users
// @Produce json
// @Security Bearer
// @Param id path string true "ID do usuário"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{id} [get]
func (c *UserController) Get(ctx *gin.Context) {
	p, err := c.userRepository.FindByID(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "Erro ao buscar usuário", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToUserResponse(p))
}

// Update atualiza um usuário. A senha só é trocada quando informada.
// @Summary Atualiza um usuário
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID do usuário"
// @Param user body dto.UserRequest true "Dados do usuário"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /users/{id} [put]
func (c *UserController) Update(ctx *gin.Context) {
	var request dto.UserRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	p, err := c.userRepository.FindByID(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "Erro ao buscar usuário", err)
		return
	}

	if err := p.Update(request.Email, request.Name, user.Role(request.Role)); err != nil {
		respondError(ctx, "Erro ao atualizar usuário", err)
		return
	}
	if request.Password != "" {
		if err := p.SetPassword(request.Password); err != nil {
			respondError(ctx, "Erro ao atualizar usuário", err)
			return
		}
	}

	if err := c.userRepository.Update(ctx, p); err != nil {
		respondError(ctx, "Erro ao atualizar usuário", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToUserResponse(p))
}

// SetStatus ativa ou desativa um usuário
// @Summary Ativa ou desativa um usuário
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID do usuário"
// @Param status body dto.UserStatusRequest true "Situação"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /users/{id}/status [patch]
func (c *UserController) SetStatus(ctx *gin.Context) {
	var request dto.UserStatusRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	id := ctx.Param("id")
	if !*request.Active && id == auth.GetCurrentUserID(ctx) {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Operação não permitida", "Não é possível desativar o próprio usuário"))
		return
	}

	p, err := c.userRepository.FindByID(ctx, id)
	if err != nil {
		respondError(ctx, "Erro ao buscar usuário", err)
		return
	}

	p.SetActive(*request.Active)
	if err := c.userRepository.Update(ctx, p); err != nil {
		respondError(ctx, "Erro ao atualizar usuário", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToUserResponse(p))
}
