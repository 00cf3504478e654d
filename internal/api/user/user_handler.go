package user

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/FACorreiaa/go-user-directory/internal/api"
	"github.com/FACorreiaa/go-user-directory/internal/api/auth"
	"github.com/FACorreiaa/go-user-directory/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	CreateUser(w http.ResponseWriter, r *http.Request)
	UpdateName(w http.ResponseWriter, r *http.Request)
	UpdateGender(w http.ResponseWriter, r *http.Request)
	UpdateBirthday(w http.ResponseWriter, r *http.Request)
	UpdatePassword(w http.ResponseWriter, r *http.Request)
	UpdateLogin(w http.ResponseWriter, r *http.Request)
	ListActive(w http.ResponseWriter, r *http.Request)
	GetUser(w http.ResponseWriter, r *http.Request)
	GetOwnUser(w http.ResponseWriter, r *http.Request)
	ListOlderThan(w http.ResponseWriter, r *http.Request)
	Revoke(w http.ResponseWriter, r *http.Request)
	HardDelete(w http.ResponseWriter, r *http.Request)
	Restore(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	userService UserService
	logger      *slog.Logger
}

// NewHandlerImpl creates a new user HandlerImpl instance.
func NewHandlerImpl(userService UserService, logger *slog.Logger) *HandlerImpl {
	if logger == nil {
		panic("user.NewHandlerImpl: nil logger")
	}
	return &HandlerImpl{
		userService: userService,
		logger:      logger,
	}
}

// actor returns the authenticated caller or writes a 401.
func (h *HandlerImpl) actor(w http.ResponseWriter, r *http.Request) (types.Actor, bool) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok || actor.Login == "" {
		h.logger.ErrorContext(r.Context(), "Actor not found in context")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return types.Actor{}, false
	}
	return actor, true
}

// decode reads and validates a JSON body into dst or writes a 400.
func (h *HandlerImpl) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := api.DecodeJSONBody(w, r, dst); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return false
	}
	if err := api.ValidateStruct(dst); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func writeOK(w http.ResponseWriter, r *http.Request, msg string) {
	api.WriteJSONResponse(w, r, http.StatusOK, api.Response{Success: true, Message: msg})
}

// CreateUser godoc
// @Summary      Create user
// @Description  Creates a new user. Admin only.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        user body CreateUserRequest true "New user"
// @Success      201 {object} types.User
// @Failure      400 {object} api.Response "Invalid input"
// @Failure      401 {object} api.Response "Unauthorized"
// @Failure      403 {object} api.Response "Access denied"
// @Failure      409 {object} api.Response "Login already taken"
// @Security     BearerAuth
// @Router       /users [post]
func (h *HandlerImpl) CreateUser(w http.ResponseWriter, r *http.Request) {
	actor, authed := h.actor(w, r)
	if !authed {
		return
	}
	var req CreateUserRequest
	if !h.decode(w, r, &req) {
		return
	}
	params, err := req.Params()
	if err != nil {
		api.WriteServiceError(w, r, err)
		return
	}

	u, err := h.userService.CreateUser(r.Context(), actor, params)
	if err != nil {
		api.WriteServiceError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, u)
}

// UpdateName godoc
// @Summary      Change name
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        login path string true "Login"
// @Param        body body UpdateNameRequest true "New name"
// @Success      200 {object} api.Response
// @Failure      400 {object} api.Response
// @Failure      403 {object} api.Response
// @Failure      404 {object} api.Response
// @Security     BearerAuth
// @Router       /users/{login}/name [put]
func (h *HandlerImpl) UpdateName(w http.ResponseWriter, r *http.Request) {
	actor, authed := h.actor(w, r)
	if !authed {
		return
	}
	var req UpdateNameRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.userService.UpdateName(r.Context(), actor, chi.URLParam(r, "login"), req.Name); err != nil {
		api.WriteServiceError(w, r, err)
		return
	}
	writeOK(w, r, "Name updated")
}

// UpdateGender godoc
// @Summary      Change gender
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        login path string true "Login"
// @Param        body body UpdateGenderRequest true "New gender (0, 1 or 2)"
// @Success      200 {object} api.Response
// @Failure      400 {object} api.Response
// @Failure      403 {object} api.Response
// @Failure      404 {object} api.Response
// @Security     BearerAuth
// @Router       /users/{login}/gender [put]
func (h *HandlerImpl) UpdateGender(w http.ResponseWriter, r *http.Request) {
	actor, authed := h.actor(w, r)
	if !authed {
		return
	}
	var req UpdateGenderRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.userService.UpdateGender(r.Context(), actor, chi.URLParam(r, "login"), types.Gender(*req.Gender)); err != nil {
		api.WriteServiceError(w, r, err)
		return
	}
	writeOK(w, r, "Gender updated")
}

// UpdateBirthday godoc
// @Summary      Change birthday
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        login path string true "Login"
// @Param        body body UpdateBirthdayRequest true "New birthday"
// @Success      200 {object} api.Response
// @Failure      400 {object} api.Response
// @Failure      403 {object} api.Response
// @Failure      404 {object} api.Response
// @Security     BearerAuth
// @Router       /users/{login}/birthday [put]
func (h *HandlerImpl) UpdateBirthday(w http.ResponseWriter, r *http.Request) {
	actor, authed := h.actor(w, r)
	if !authed {
		return
	}
	var req UpdateBirthdayRequest
	if !h.decode(w, r, &req) {
		return
	}
	birthday, err := parseBirthday(req.Birthday)
	if err != nil {
		api.WriteServiceError(w, r, err)
		return
	}
	if err := h.userService.UpdateBirthday(r.Context(), actor, chi.URLParam(r, "login"), birthday); err != nil {
		api.WriteServiceError(w, r, err)
		return
	}
	writeOK(w, r, "Birthday updated")
}

// UpdatePassword godoc
// @Summary      Change password
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        login path string true "Login"
// @Param        body body UpdatePasswordRequest true "New password"
// @Success      200 {object} api.Response
// @Failure      400 {object} api.Response
// @Failure      403 {object} api.Response
// @Failure      404 {object} api.Response
// @Security     BearerAuth
// @Router       /users/{login}/password [put]
func (h *HandlerImpl) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	actor, authed := h.actor(w, r)
	if !authed {
		return
	}
	var req UpdatePasswordRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.userService.UpdatePassword(r.Context(), actor, chi.URLParam(r, "login"), req.Password); err != nil {
		api.WriteServiceError(w, r, err)
		return
	}
	writeOK(w, r, "Password updated")
}

// UpdateLogin godoc
// @Summary      Change login
// @Description  Renames a user. Tokens issued for the old login stop working.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        login path string true "Current login"
// @Param        body body UpdateLoginRequest true "New login"
// @Success      200 {object} api.Response
// @Failure      400 {object} api.Response
// @Failure      403 {object} api.Response
// @Failure      404 {object} api.Response
// @Failure      409 {object} api.Response
// @Security     BearerAuth
// @Router       /users/{login}/login [put]
func (h *HandlerImpl) UpdateLogin(w http.ResponseWriter, r *http.Request) {
	actor, authed := h.actor(w, r)
	if !authed {
		return
	}
	var req UpdateLoginRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.userService.UpdateLogin(r.Context(), actor, chi.URLParam(r, "login"), req.Login); err != nil {
		api.WriteServiceError(w, r, err)
		return
	}
	writeOK(w, r, "Login updated")
}

// ListActive godoc
// @Summary      List active users
// @Description  Returns active users ordered by creation time. Admin only.
// @Tags         Users
// @Produce      json
// @Success      200 {array} types.User
// @Failure      401 {object} api.Response
// @Failure      403 {object} api.Response
// @Security     BearerAuth
// @Router       /users [get]
func (h *HandlerImpl) ListActive(w http.ResponseWriter, r *http.Request) {
	actor, authed := h.actor(w, r)
	if !authed {
		return
	}
	users, err := h.userService.ListActive(r.Context(), actor)
	if err != nil {
		api.WriteServiceError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, users)
}

// GetUser godoc
// @Summary      Get user by login
// @Description  Returns any user, active or revoked. Admin only.
// @Tags         Users
// @Produce      json
// @Param        login path string true "Login"
// @Success      200 {object} types.User
// @Failure      403 {object} api.Response
// @Failure      404 {object} api.Response
// @Security     BearerAuth
// @Router       /users/{login} [get]
func (h *HandlerImpl) GetUser(w http.ResponseWriter, r *http.Request) {
	actor, authed := h.actor(w, r)
	if !authed {
		return
	}
	u, err := h.userService.GetUser(r.Context(), actor, chi.URLParam(r, "login"))
	if err != nil {
		api.WriteServiceError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, u)
}

// GetOwnUser godoc
// @Summary      Get own record
// @Description  Returns the caller's record after re-checking login and password.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        credentials body OwnUserRequest true "Own credentials"
// @Success      200 {object} types.User
// @Failure      401 {object} api.Response
// @Failure      403 {object} api.Response
// @Security     BearerAuth
// @Router       /users/me [post]
func (h *HandlerImpl) GetOwnUser(w http.ResponseWriter, r *http.Request) {
	actor, authed := h.actor(w, r)
	if !authed {
		return
	}
	var req OwnUserRequest
	if !h.decode(w, r, &req) {
		return
	}
	u, err := h.userService.GetOwnUser(r.Context(), actor, req.Login, req.Password)
	if err != nil {
		api.WriteServiceError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, u)
}

// ListOlderThan godoc
// @Summary      List users older than age
// @Description  Returns active users born more than age years ago. Admin only.
// @Tags         Users
// @Produce      json
// @Param        age path int true "Age in whole years"
// @Success      200 {array} types.User
// @Failure      400 {object} api.Response
// @Failure      403 {object} api.Response
// @Security     BearerAuth
// @Router       /users/older-than/{age} [get]
func (h *HandlerImpl) ListOlderThan(w http.ResponseWriter, r *http.Request) {
	actor, authed := h.actor(w, r)
	if !authed {
		return
	}
	age, err := strconv.Atoi(chi.URLParam(r, "age"))
	if err != nil || age < 0 || age > MaxAgeYears {
		api.ErrorResponse(w, r, http.StatusBadRequest, fmt.Sprintf("age must be an integer between 0 and %d", MaxAgeYears))
		return
	}
	users, err := h.userService.ListOlderThan(r.Context(), actor, age)
	if err != nil {
		api.WriteServiceError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, users)
}

// Revoke godoc
// @Summary      Revoke user
// @Description  Soft-deletes a user. The record is kept and can be restored. Admin only.
// @Tags         Users
// @Produce      json
// @Param        login path string true "Login"
// @Success      200 {object} api.Response
// @Failure      403 {object} api.Response
// @Failure      404 {object} api.Response
// @Security     BearerAuth
// @Router       /users/{login} [delete]
func (h *HandlerImpl) Revoke(w http.ResponseWriter, r *http.Request) {
	actor, authed := h.actor(w, r)
	if !authed {
		return
	}
	if err := h.userService.Revoke(r.Context(), actor, chi.URLParam(r, "login")); err != nil {
		api.WriteServiceError(w, r, err)
		return
	}
	writeOK(w, r, "User revoked")
}

// HardDelete godoc
// @Summary      Delete user permanently
// @Tags         Users
// @Produce      json
// @Param        login path string true "Login"
// @Success      204
// @Failure      403 {object} api.Response
// @Failure      404 {object} api.Response
// @Security     BearerAuth
// @Router       /users/{login}/hard [delete]
func (h *HandlerImpl) HardDelete(w http.ResponseWriter, r *http.Request) {
	actor, authed := h.actor(w, r)
	if !authed {
		return
	}
	if err := h.userService.HardDelete(r.Context(), actor, chi.URLParam(r, "login")); err != nil {
		api.WriteServiceError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}

// Restore godoc
// @Summary      Restore revoked user
// @Tags         Users
// @Produce      json
// @Param        login path string true "Login"
// @Success      200 {object} api.Response
// @Failure      403 {object} api.Response
// @Failure      404 {object} api.Response
// @Security     BearerAuth
// @Router       /users/{login}/restore [post]
func (h *HandlerImpl) Restore(w http.ResponseWriter, r *http.Request) {
	actor, authed := h.actor(w, r)
	if !authed {
		return
	}
	if err := h.userService.Restore(r.Context(), actor, chi.URLParam(r, "login")); err != nil {
		api.WriteServiceError(w, r, err)
		return
	}
	writeOK(w, r, "User restored")
}
