package middleware

import "github.com/gofiber/fiber/v2"

// Success writes a 200 response with success:true merged into the payload.
func Success(c *fiber.Ctx, payload fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(body)
}

// Error writes a non-2xx response with the API's error body shape.
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{"error": message})
}
