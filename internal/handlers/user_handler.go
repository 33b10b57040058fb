package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/apperrors"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/models"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/presence"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/service"
)

type UserHandler struct {
	svc      *service.UserService
	presence *presence.Store
}

func NewUserHandler(svc *service.UserService, pres *presence.Store) *UserHandler {
	return &UserHandler{svc: svc, presence: pres}
}

func callerID(c *fiber.Ctx) (primitive.ObjectID, error) {
	id, _ := c.Locals("user_id").(string)
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.ErrUnauthorized
	}
	return oid, nil
}

func callerRole(c *fiber.Ctx) models.Role {
	role, _ := c.Locals("role").(models.Role)
	return role
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	id, err := callerID(c)
	if err != nil {
		return fail(c, err)
	}
	u, err := h.svc.Profile(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return jsonOK(c, fiber.StatusOK, u)
}

func (h *UserHandler) ByID(c *fiber.Ctx) error {
	oid, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return fail(c, apperrors.ErrNotFound)
	}
	u, err := h.svc.Profile(c.Context(), oid)
	if err != nil {
		return fail(c, err)
	}
	online := false
	if st, err := h.presence.Get(c.Context(), oid.Hex()); err == nil {
		online = st.Online
	}
	return jsonOK(c, fiber.StatusOK, fiber.Map{"user": u, "online": online})
}

func (h *UserHandler) Doctors(c *fiber.Ctx) error {
	doctors, err := h.svc.AvailableDoctors(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return jsonOK(c, fiber.StatusOK, doctors)
}

type availabilityReq struct {
	IsAvailable bool `json:"isAvailable"`
}

func (h *UserHandler) SetAvailability(c *fiber.Ctx) error {
	id, err := callerID(c)
	if err != nil {
		return fail(c, err)
	}
	var req availabilityReq
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	u, err := h.svc.SetAvailability(c.Context(), id, callerRole(c), req.IsAvailable)
	if err != nil {
		return fail(c, err)
	}
	return jsonOK(c, fiber.StatusOK, u)
}

type languageReq struct {
	Language string `json:"language"`
}

func (h *UserHandler) SetLanguage(c *fiber.Ctx) error {
	id, err := callerID(c)
	if err != nil {
		return fail(c, err)
	}
	var req languageReq
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	u, err := h.svc.SetLanguage(c.Context(), id, req.Language)
	if err != nil {
		return fail(c, err)
	}
	return jsonOK(c, fiber.StatusOK, u)
}
