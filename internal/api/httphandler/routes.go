package httphandler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/v1")

	r.Get("/encode/:value", h.GetEncode)
	r.Post("/encode", h.Encode)
	r.Post("/decode", h.Decode)
	r.Post("/decode/batch", h.DecodeBatch)
	return nil
}
