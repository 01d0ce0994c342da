package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/landsuite/plot-erp/internal/config"
	"github.com/landsuite/plot-erp/internal/domain"
	"github.com/landsuite/plot-erp/internal/repository"
	"github.com/landsuite/plot-erp/internal/utils"
)

// AuthHandler implements registration, login and token rotation.
type AuthHandler struct {
	Store  *repository.Store
	Tokens *repository.TokenRepo
	Cfg    config.Config
}

func NewAuthHandler(store *repository.Store, tokens *repository.TokenRepo, cfg config.Config) *AuthHandler {
	return &AuthHandler{Store: store, Tokens: tokens, Cfg: cfg}
}

var validRoles = map[domain.Role]bool{
	domain.RoleOwner: true, domain.RoleAdmin: true, domain.RoleDirector: true,
	domain.RolePM: true, domain.RoleSales: true, domain.RoleCRM: true,
	domain.RoleFinance: true, domain.RoleLegal: true, domain.RoleAuditor: true,
}

// Register handles POST /v1/auth/register.
func (h *AuthHandler) Register(c echo.Context) error {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Email = strings.ToLower(strings.TrimSpace(body.Email))
	if body.Name == "" || body.Email == "" || len(body.Password) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, email and a password of at least 8 characters are required"})
	}
	role := domain.Role(body.Role)
	if !validRoles[role] {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
	}

	hash, err := utils.HashPassword(body.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to hash password"})
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           utils.NewID("user"),
		Name:         body.Name,
		Email:        body.Email,
		Phone:        body.Phone,
		Role:         role,
		Active:       true,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := h.Store.CreateUser(c.Request().Context(), user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create user"})
	}
	return c.JSON(http.StatusCreated, user)
}

// Login handles POST /v1/auth/login. It verifies credentials and issues
// an access/refresh token pair. Only the refresh token's hash is stored.
func (h *AuthHandler) Login(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	user, err := h.Store.GetUserByEmail(ctx, body.Email)
	if err != nil || !user.Active || !utils.VerifyPassword(user.PasswordHash, body.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, user.ID, string(user.Role), h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to sign token"})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create refresh token"})
	}
	if err := h.Tokens.StoreRefresh(ctx, user.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to store refresh token"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"access_token":  access.Token,
		"expires_at":    access.Exp.Format(time.RFC3339),
		"refresh_token": refresh.Raw,
	})
}

// Refresh handles POST /v1/auth/refresh. The presented refresh token is
// rotated: the old hash is revoked and a new pair is issued.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&body); err != nil || body.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token is required"})
	}

	ctx := c.Request().Context()
	oldHash := utils.HashRefreshRaw(body.RefreshToken)
	userID, err := h.Tokens.ValidateRefresh(ctx, oldHash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}
	user, err := h.Store.GetUser(ctx, userID)
	if err != nil || !user.Active {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}

	if err := h.Tokens.RevokeByHash(ctx, oldHash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to rotate token"})
	}
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, user.ID, string(user.Role), h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to sign token"})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create refresh token"})
	}
	if err := h.Tokens.StoreRefresh(ctx, user.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to store refresh token"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"access_token":  access.Token,
		"expires_at":    access.Exp.Format(time.RFC3339),
		"refresh_token": refresh.Raw,
	})
}

// Logout handles POST /v1/auth/logout. It revokes every refresh token of
// the authenticated user.
func (h *AuthHandler) Logout(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if err := h.Tokens.RevokeAllForUser(c.Request().Context(), userID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to revoke tokens"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me handles GET /v1/auth/me.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	user, err := h.Store.GetUser(c.Request().Context(), userID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
