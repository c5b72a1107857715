package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/quickretail/qpos/internal/api/middleware"
	"github.com/quickretail/qpos/internal/models"
	service "github.com/quickretail/qpos/internal/services"
	"github.com/quickretail/qpos/internal/utils/response"
)

type UserHandler struct {
	userService *service.UserService
	validator   *validator.Validate
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
	}
}

func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.LoginRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		resp, err := h.userService.Login(r.Context(), &req)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Login failed",
				slog.String("username", req.Username))
			response.Error(w, err)
			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Cashier logged in",
			slog.String("username", req.Username))
		response.Success(w, http.StatusOK, resp)

	}
}
