package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/payfast"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

var errInvalidBody = errors.New("invalid request body")

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

// validationError answers 400 for ErrValidation and reports whether it did.
func validationError(c *fiber.Ctx, err error) (bool, error) {
	if errors.Is(err, services.ErrValidation) {
		return true, errorJSON(c, fiber.StatusBadRequest, services.ValidationMessage(err))
	}
	return false, nil
}

// payloadFrom collects a gateway callback from the query string, a form
// body or a JSON body. Body values override query values.
func payloadFrom(c *fiber.Ctx) (payfast.Payload, error) {
	p := payfast.Payload{}
	c.Request().URI().QueryArgs().VisitAll(func(k, v []byte) {
		p[string(k)] = string(v)
	})

	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return p, nil
	}

	ct := strings.ToLower(c.Get(fiber.HeaderContentType))
	switch {
	case strings.HasPrefix(ct, fiber.MIMEApplicationJSON), body[0] == '{':
		var fields map[string]any
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		if err := dec.Decode(&fields); err != nil {
			return nil, errInvalidBody
		}
		for k, v := range fields {
			p[k] = v
		}
	case strings.HasPrefix(ct, fiber.MIMEApplicationForm):
		c.Request().PostArgs().VisitAll(func(k, v []byte) {
			p[string(k)] = string(v)
		})
	case strings.HasPrefix(ct, fiber.MIMEMultipartForm):
		form, err := c.MultipartForm()
		if err != nil {
			return nil, errInvalidBody
		}
		for k, vs := range form.Value {
			if len(vs) > 0 {
				p[k] = vs[0]
			}
		}
	}
	return p, nil
}

// param reads name from the route, the query string, then a JSON or form body.
func param(c *fiber.Ctx, name string) string {
	if v := strings.TrimSpace(c.Params(name)); v != "" {
		return v
	}
	if v := strings.TrimSpace(c.Query(name)); v != "" {
		return v
	}
	if v := strings.TrimSpace(c.FormValue(name)); v != "" {
		return v
	}
	if len(c.Body()) > 0 && strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEApplicationJSON) {
		var fields map[string]any
		if err := json.Unmarshal(c.Body(), &fields); err == nil {
			if s, ok := fields[name].(string); ok {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}
