package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/library/internal/application/user"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
)

// UserHandler 用户HTTP处理器
type UserHandler struct {
	listUsers  *appuser.ListUsersUseCase
	createUser *appuser.CreateUserUseCase
}

// NewUserHandler 创建用户处理器
func NewUserHandler(listUsers *appuser.ListUsersUseCase, createUser *appuser.CreateUserUseCase) *UserHandler {
	return &UserHandler{
		listUsers:  listUsers,
		createUser: createUser,
	}
}

// ListUsers 用户列表
// @Summary      用户列表
// @Tags         用户
// @Produce      json
// @Success      200 {array} dto.UserResponse
// @Router       /api/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.listUsers.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewUserList(users))
}

// CreateUser 新增用户
// @Summary      新增用户
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateUserRequest true "用户信息"
// @Success      201 {object} dto.UserResponse
// @Failure      400 {object} response.ErrorBody "参数错误或邮箱重复"
// @Router       /api/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.createUser.Execute(c.Request.Context(), appuser.CreateUserRequest{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.NewUserResponse(u))
}
