package travelapi

import (
	"github.com/Abraxas-365/traveldocs/pkg/travel"
	"github.com/Abraxas-365/traveldocs/pkg/travel/travelsrv"
	"github.com/gofiber/fiber/v2"
)

// TravelHandlers exposes the travel documentation service over HTTP
type TravelHandlers struct {
	service *travelsrv.TravelService
}

func NewTravelHandlers(service *travelsrv.TravelService) *TravelHandlers {
	return &TravelHandlers{
		service: service,
	}
}

// RegisterRoutes mounts the travel routes. Non-strict routing makes
// /travel-info and /travel-info/ equivalent.
func (h *TravelHandlers) RegisterRoutes(router fiber.Router) {
	router.Post("/travel-info", h.GetTravelInfo)
}

// GetTravelInfo answers one traveler query within a conversation
func (h *TravelHandlers) GetTravelInfo(c *fiber.Ctx) error {
	var req travel.TravelInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return travel.ErrValidation().WithDetail("reason", err.Error())
	}

	resp, err := h.service.GetTravelInfo(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}
