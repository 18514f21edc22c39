package auth

import (
	"context"
	"drawbattle/domain"
	"errors"
	"net/http"
	"runtime"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

var (
	ErrMissingTokenStr          = "missing-token"
	ErrExpiredTokenStr          = "expired-token"
	ErrBadTokenStr              = "bad-token"
	ErrServerTimeoutStr         = "server-timeout"
	ErrInvalidRequestFormatStr  = "bad-request-format"
	ErrInvalidCredentialsStr    = "invalid-credentials"
	ErrUnknownStr               = "unknown-error"
	ErrUsernameAlreadyExistsStr = "username-already-exists"
	ErrWeakPasswordStr          = "weak-password"
	ErrPasswordTooLongStr       = "password-too-long"
	ErrInvalidUsernameFormatStr = "invalid-username-format"
	ErrAccountCreatedButNoToken = "account-created-but-no-token"
)

const tokenCookie = "token"

type authHandler struct {
	authService  AuthService
	cookieMaxAge time.Duration
	logger       zerolog.Logger
}

func NewAuthHandler(service AuthService, cookieMaxAge time.Duration, logger zerolog.Logger) *authHandler {
	return &authHandler{authService: service, cookieMaxAge: cookieMaxAge, logger: logger}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// redactToken keeps the header, the claims and the first characters of the
// signature.
func redactToken(token string) string {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return token
	}
	r := []rune(parts[2])
	if len(r) >= 10 {
		parts[2] = string(r[:10]) + strings.Repeat("*", len(r)-10)
	}
	return strings.Join(parts, ".")
}

func (ah *authHandler) requestLog(ctx *gin.Context, ev *zerolog.Event) *zerolog.Event {
	return ev.Str("ip", ctx.ClientIP()).Str("user_agent", ctx.Request.UserAgent())
}

func withMemStats(ev *zerolog.Event) *zerolog.Event {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	return ev.Uint64("mem_alloc_mb", mem.Alloc/1024/1024).Uint64("mem_sys_mb", mem.Sys/1024/1024)
}

func (ah *authHandler) setToken(ctx *gin.Context, token string) {
	ctx.SetSameSite(http.SameSiteNoneMode)
	ctx.SetCookie(tokenCookie, token, int(ah.cookieMaxAge.Seconds()), "/", "", true, true)
}

// RequireAuthMiddleware stores the caller's user id under "id". Forged tokens
// are answered after trollTime.
func (ah *authHandler) RequireAuthMiddleware(trollTime time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(tokenCookie)
		if err != nil {
			ctx.String(http.StatusUnauthorized, ErrMissingTokenStr)
			ctx.Abort()
			return
		}

		id, err := ah.authService.VerifyToken(token)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidSigningAlg),
				errors.Is(err, domain.ErrInvalidTokenSignature),
				errors.Is(err, domain.ErrCorruptedToken):
				ah.requestLog(ctx, ah.logger.Warn()).Err(err).
					Str("token", redactToken(token)).
					Msg("suspicious token attempt")
				time.Sleep(trollTime)
				ctx.Status(http.StatusInternalServerError)

			case errors.Is(err, domain.ErrExpiredToken):
				ah.logger.Info().Str("ip", ctx.ClientIP()).Str("token", redactToken(token)).Msg("token expired")
				ctx.String(http.StatusUnauthorized, ErrExpiredTokenStr)

			default:
				ah.requestLog(ctx, ah.logger.Error()).Err(err).
					Str("token", redactToken(token)).
					Msg("internal auth error")
				ctx.String(http.StatusUnauthorized, ErrUnknownStr)
			}
			ctx.Abort()
			return
		}
		ctx.Set("id", id)
		ctx.Next()
	}
}

func (ah *authHandler) LoginHandler(ctx *gin.Context) {
	var creds credentials
	if err := ctx.ShouldBindJSON(&creds); err != nil {
		ctx.String(http.StatusBadRequest, ErrInvalidRequestFormatStr)
		ctx.Abort()
		return
	}

	token, err := ah.authService.Login(ctx.Request.Context(), creds.Username, creds.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrIncorrectPassword), errors.Is(err, domain.ErrUserNotFound):
			ctx.String(http.StatusUnauthorized, ErrInvalidCredentialsStr)
		case errors.Is(err, context.DeadlineExceeded):
			ctx.String(http.StatusGatewayTimeout, ErrServerTimeoutStr)
		case errors.Is(err, context.Canceled):
			ctx.Status(499)

		case errors.Is(err, domain.UnexpectedDatabaseError):
			ah.requestLog(ctx, ah.logger.Error()).Err(err).
				Str("username", creds.Username).
				Msg("login: database returned an unexpected error")
			ctx.String(http.StatusInternalServerError, ErrUnknownStr)

		case errors.Is(err, domain.UnexpectedPasswordHashComparisonError):
			withMemStats(ah.requestLog(ctx, ah.logger.Error())).Err(err).
				Str("username", creds.Username).
				Int("password_len", utf8.RuneCountInString(creds.Password)).
				Msg("login: hash comparison error")
			ctx.String(http.StatusInternalServerError, ErrUnknownStr)

		case errors.Is(err, domain.UnexpectedTokenGenerationError):
			ah.requestLog(ctx, ah.logger.Error()).Err(err).
				Str("username", creds.Username).
				Msg("login: token generation error")
			ctx.String(http.StatusInternalServerError, ErrUnknownStr)

		default:
			withMemStats(ah.requestLog(ctx, ah.logger.Error())).Err(err).
				Str("username", creds.Username).
				Int("password_len", utf8.RuneCountInString(creds.Password)).
				Msg("login: unknown error")
			ctx.String(http.StatusInternalServerError, ErrUnknownStr)
		}
		ctx.Abort()
		return
	}

	ah.setToken(ctx, token)
	ctx.Status(http.StatusOK)
}

func (ah *authHandler) SignupHandler(ctx *gin.Context) {
	var creds credentials
	if err := ctx.ShouldBindJSON(&creds); err != nil {
		ctx.String(http.StatusBadRequest, ErrInvalidRequestFormatStr)
		ctx.Abort()
		return
	}

	token, err := ah.authService.Signup(ctx.Request.Context(), creds.Username, creds.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateUsername):
			ctx.String(http.StatusConflict, ErrUsernameAlreadyExistsStr)
		case errors.Is(err, ErrWeakPassword):
			ctx.String(http.StatusBadRequest, ErrWeakPasswordStr)
		case errors.Is(err, ErrPasswordTooLong):
			ctx.String(http.StatusBadRequest, ErrPasswordTooLongStr)
		case errors.Is(err, ErrInvalidUsernameFormat):
			ctx.String(http.StatusBadRequest, ErrInvalidUsernameFormatStr)
		case errors.Is(err, context.DeadlineExceeded):
			ctx.String(http.StatusGatewayTimeout, ErrServerTimeoutStr)
		case errors.Is(err, context.Canceled):
			ctx.Status(499)

		case errors.Is(err, domain.UnexpectedDatabaseError):
			ah.requestLog(ctx, ah.logger.Error()).Err(err).
				Str("username", creds.Username).
				Msg("signup: database returned an unexpected error")
			ctx.String(http.StatusInternalServerError, ErrUnknownStr)

		case errors.Is(err, domain.UnexpectedPasswordHashingError):
			withMemStats(ah.requestLog(ctx, ah.logger.Error())).Err(err).
				Str("username", creds.Username).
				Int("password_len", utf8.RuneCountInString(creds.Password)).
				Msg("signup: password hashing error")
			ctx.String(http.StatusInternalServerError, ErrUnknownStr)

		case errors.Is(err, domain.UnexpectedTokenGenerationError):
			ah.requestLog(ctx, ah.logger.Error()).Err(err).
				Str("username", creds.Username).
				Msg("signup: token generation error")
			ctx.String(http.StatusInternalServerError, ErrAccountCreatedButNoToken)

		default:
			withMemStats(ah.requestLog(ctx, ah.logger.Error())).Err(err).
				Str("username", creds.Username).
				Int("password_len", utf8.RuneCountInString(creds.Password)).
				Msg("signup: unknown error")
			ctx.String(http.StatusInternalServerError, ErrUnknownStr)
		}
		ctx.Abort()
		return
	}

	ah.setToken(ctx, token)
	ctx.Status(http.StatusCreated)
}

func (ah *authHandler) RefreshSessionHandler(ctx *gin.Context) {
	token, err := ctx.Cookie(tokenCookie)
	if err != nil {
		ctx.String(http.StatusUnauthorized, ErrMissingTokenStr)
		return
	}

	id, err := ah.authService.VerifyToken(token)
	if err != nil {
		ah.requestLog(ctx, ah.logger.Warn()).Err(err).
			Str("token", redactToken(token)).
			Msg("refresh: invalid token provided")
		ctx.String(http.StatusUnauthorized, ErrBadTokenStr)
		return
	}

	newToken, err := ah.authService.GenerateToken(id)
	if err != nil {
		ah.requestLog(ctx, ah.logger.Error()).Err(err).
			Str("user_id", id).
			Msg("refresh: failed to generate new token")
		ctx.Status(http.StatusInternalServerError)
		return
	}

	ah.setToken(ctx, newToken)
	ctx.Status(http.StatusOK)
}

func (ah *authHandler) LogoutHandler(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteNoneMode)
	ctx.SetCookie(tokenCookie, "", -1, "/", "", true, true)
	ctx.Status(http.StatusOK)
}

// RegisterRoutes mounts signup, login, refresh and logout on g.
func (ah *authHandler) RegisterRoutes(g *gin.RouterGroup) {
	g.POST("/signup", ah.SignupHandler)
	g.POST("/login", ah.LoginHandler)
	g.GET("/refresh", ah.RefreshSessionHandler)
	g.POST("/logout", ah.LogoutHandler)
}
