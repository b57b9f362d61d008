package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/seojin/team-task-service/internal/domain"
	"github.com/seojin/team-task-service/internal/middleware"
	"github.com/seojin/team-task-service/internal/service"
)

// AuthHandler обрабатывает эндпоинты регистрации и аутентификации
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler создает новый AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// SignupRequest представляет тело запроса на регистрацию
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Team     string `json:"team"`
}

// Signup обрабатывает POST /accounts
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	user, err := h.authService.Signup(r.Context(), req.Username, req.Password, req.Team)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, user)
}

// LoginRequest представляет тело запроса на логин
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse представляет тело ответа на логин
type LoginResponse struct {
	UserData UserData           `json:"user_data"`
	Token    *service.TokenPair `json:"token"`
}

// UserData содержит публичные данные пользователя в ответе на логин
type UserData struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Login обрабатывает POST /login.
// Токены возвращаются в теле ответа и дублируются в httponly-куках.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "username and password are required")
		return
	}

	user, pair, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	setTokenCookie(w, middleware.AccessTokenCookie, pair.AccessToken)
	setTokenCookie(w, middleware.RefreshTokenCookie, pair.RefreshToken)

	RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		UserData: UserData{
			UserID:   user.ID.String(),
			Username: user.Username,
		},
		Token: pair,
	})
}

// Logout обрабатывает DELETE /logout.
// Токены stateless, сервер ничего не отзывает: только сбрасываются куки.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	clearTokenCookie(w, middleware.AccessTokenCookie)
	clearTokenCookie(w, middleware.RefreshTokenCookie)

	RespondWithJSON(w, r, http.StatusAccepted, map[string]string{"message": "logged out"})
}

// RefreshRequest представляет тело запроса на обновление access-токена
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshResponse представляет ответ с новым access-токеном
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

// Refresh обрабатывает POST /token/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	// Refresh-токен берется из тела либо из куки
	token := req.RefreshToken
	if token == "" {
		cookie, err := r.Cookie(middleware.RefreshTokenCookie)
		if err != nil {
			HandleError(w, r, domain.ErrUnauthorized)
			return
		}
		token = cookie.Value
	}

	access, err := h.authService.Refresh(token)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	setTokenCookie(w, middleware.AccessTokenCookie, access)

	RespondWithJSON(w, r, http.StatusOK, RefreshResponse{AccessToken: access})
}

func setTokenCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearTokenCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}
