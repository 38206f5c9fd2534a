package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/terraincognita07/selene/internal/logger"
	"github.com/terraincognita07/selene/internal/security"
)

const contextUserIDKey = "current_user_id"

func currentUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals(contextUserIDKey).(uint)
	return userID, ok && userID != 0
}

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	rawToken, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	claims, err := security.ParseToken(handler.secretKey, rawToken, handler.now())
	if err != nil {
		if errors.Is(err, security.ErrTokenExpired) {
			return apiError(c, fiber.StatusUnauthorized, "token expired")
		}
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextUserIDKey, claims.UserID)
	return c.Next()
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func RequestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
	} else if err != nil {
		status = fiber.StatusInternalServerError
	}

	entry := logger.Log.WithFields(logrus.Fields{
		"method":     c.Method(),
		"path":       c.Path(),
		"status":     status,
		"latency_ms": time.Since(start).Milliseconds(),
		"ip":         c.IP(),
	})
	switch {
	case status >= fiber.StatusInternalServerError:
		entry.Error("request")
	case status >= fiber.StatusBadRequest:
		entry.Warn("request")
	default:
		entry.Info("request")
	}
	return err
}

func CORS(allowedOrigins []string) fiber.Handler {
	policy := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{fiber.HeaderAuthorization, fiber.HeaderContentType},
		MaxAge:         600,
	})
	return adaptor.HTTPMiddleware(policy.Handler)
}
