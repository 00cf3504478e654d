package auth

import (
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/FACorreiaa/go-user-directory/internal/api"
	"github.com/FACorreiaa/go-user-directory/internal/types"
)

type HandlerImpl struct {
	authService AuthService
	logger      *slog.Logger
}

func NewAuthHandlerImpl(authService AuthService, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		authService: authService,
		logger:      logger,
	}
}

// Login godoc
// @Summary      Log in
// @Description  Exchanges login and password for a bearer access token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials body LoginRequest true "User credentials"
// @Success      200 {object} types.LoginResponse
// @Failure      400 {object} api.Response "Invalid request body"
// @Failure      401 {object} api.Response "Invalid credentials"
// @Failure      429 {object} api.Response "Too many failed attempts"
// @Router       /auth/login [post]
func (h *HandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Login"))

	var req LoginRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := api.ValidateStruct(req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.authService.Login(ctx, req.Login, req.Password, clientIP(r))
	if err != nil {
		if errors.Is(err, types.ErrUnauthenticated) {
			// do not reveal which part of the credentials was wrong
			api.ErrorResponse(w, r, http.StatusUnauthorized, "invalid login or password")
			return
		}
		api.WriteServiceError(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// clientIP strips the port from RemoteAddr. middleware.RealIP may already have
// replaced it with a bare address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
