package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in service.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	res, err := h.svc.Register(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return jsonOK(c, fiber.StatusCreated, res)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	res, err := h.svc.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}
	return jsonOK(c, fiber.StatusOK, res)
}
