package handler

import (
	"cmp"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"shortlink/internal/domain"
	"shortlink/internal/link"
	"shortlink/internal/validation"
)

const passwordHeader = "X-Link-Password"

var (
	errInvalidBody       = map[string]string{"error": "invalid request body"}
	errURLRequired       = map[string]string{"error": "url is required"}
	errURLsRequired      = map[string]string{"error": "urls is required"}
	errCodeRequired      = map[string]string{"error": "code is required"}
	errLinkNotFound      = map[string]string{"error": "link not found"}
	errPasswordRequired  = map[string]string{"error": "password required"}
	errPasswordMismatch  = map[string]string{"error": "invalid password"}
	errCreateFailed      = map[string]string{"error": "failed to create short url"}
	errCreateBatchFailed = map[string]string{"error": "failed to create short urls"}
	errGetFailed         = map[string]string{"error": "failed to get url"}
	errUpdateFailed      = map[string]string{"error": "failed to update link"}
	errInvalidURL        = map[string]string{"error": "invalid url format"}
	errUnsafeURL         = map[string]string{"error": "url protocol not allowed"}
	errURLTooLong        = map[string]string{"error": "url exceeds maximum length"}
	errPrivateIP         = map[string]string{"error": "private ip addresses not allowed"}
	errSelfReference     = map[string]string{"error": "url points to this service"}
	errCredentials       = map[string]string{"error": "url must not contain credentials"}
	errBatchTooLarge     = map[string]string{"error": "batch size exceeds maximum"}
	errInvalidAlias      = map[string]string{"error": "custom alias must be 3-32 characters of letters, digits, '-' or '_'"}
	errAliasTaken        = map[string]string{"error": "custom alias already in use"}
	errInvalidExpiry     = map[string]string{"error": "expiresAt must be in the future"}
	errInvalidClickLimit = map[string]string{"error": "clickLimit must not be negative"}
	respHealthOK         = map[string]string{"status": "ok"}
	respHealthDown       = map[string]string{"status": "unavailable"}
)

type Handler struct {
	linkService  LinkService
	urlValidator URLValidator
	logger       *slog.Logger
	pinger       Pinger
}

// New builds the HTTP handlers. pinger may be nil when the store has no
// health probe.
func New(
	linkService LinkService,
	urlValidator URLValidator,
	logger *slog.Logger,
	pinger Pinger,
) *Handler {
	return &Handler{
		linkService:  linkService,
		urlValidator: urlValidator,
		logger:       logger,
		pinger:       pinger,
	}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/health", h.Liveness)
	e.POST("/shorten", h.Shorten)

	api := e.Group("/api/v1")
	api.GET("/health", h.Health)
	api.POST("/urls", h.CreateURL)
	api.POST("/urls/batch", h.CreateURLBatch)

	e.GET("/:code", h.Redirect)
}

// RegisterAdmin mounts link management under g. Callers guard g.
func (h *Handler) RegisterAdmin(g *echo.Group) {
	g.GET("/:code", h.GetLink)
	g.DELETE("/:code", h.DeleteLink)
	g.POST("/:code/deactivate", h.DeactivateLink)
}

func (h *Handler) Liveness(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) Health(c echo.Context) error {
	if h.pinger != nil {
		if err := h.pinger.Ping(c.Request().Context()); err != nil {
			h.logger.Warn("store health check failed", slog.String("error", err.Error()))
			return c.JSON(http.StatusServiceUnavailable, respHealthDown)
		}
	}
	return c.JSON(http.StatusOK, respHealthOK)
}

func (h *Handler) Shorten(c echo.Context) error {
	var req domain.ShortenRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Error("failed to bind request", slog.String("error", err.Error()))
		return c.JSON(http.StatusBadRequest, errInvalidBody)
	}

	target := cmp.Or(req.URL, req.OriginalURL)
	if err := h.urlValidator.ValidateURL(target); err != nil {
		return h.handleValidationError(c, err)
	}

	l, err := h.linkService.Shorten(c.Request().Context(), target, link.Options{
		CustomAlias: req.CustomAlias,
		ExpiresAt:   req.ExpiresAt,
		Password:    req.Password,
		ClickLimit:  req.ClickLimit,
	})
	if err != nil {
		return h.handleShortenError(c, err)
	}

	return c.JSON(http.StatusOK, domain.ShortenResponse{
		ShortURL:  h.linkService.ShortURL(l.Code),
		ExpiresAt: l.ExpiresAt,
	})
}

func (h *Handler) CreateURL(c echo.Context) error {
	var req domain.CreateURLRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Error("failed to bind request", slog.String("error", err.Error()))
		return c.JSON(http.StatusBadRequest, errInvalidBody)
	}

	if err := h.urlValidator.ValidateURL(req.URL); err != nil {
		return h.handleValidationError(c, err)
	}

	l, err := h.linkService.Shorten(c.Request().Context(), req.URL, link.Options{})
	if err != nil {
		return h.handleShortenError(c, err)
	}

	return c.JSON(http.StatusCreated, h.toCreateResponse(l))
}

func (h *Handler) CreateURLBatch(c echo.Context) error {
	var req domain.CreateURLBatchRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Error("failed to bind request", slog.String("error", err.Error()))
		return c.JSON(http.StatusBadRequest, errInvalidBody)
	}

	if err := h.urlValidator.ValidateBatch(req.URLs); err != nil {
		return h.handleValidationError(c, err)
	}

	links, err := h.linkService.ShortenBatch(c.Request().Context(), req.URLs)
	if err != nil {
		h.logger.Error("failed to create short urls", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, errCreateBatchFailed)
	}

	responses := make([]domain.CreateURLResponse, len(links))
	for i, l := range links {
		responses[i] = h.toCreateResponse(l)
	}
	return c.JSON(http.StatusCreated, domain.CreateURLBatchResponse{URLs: responses})
}

func (h *Handler) Redirect(c echo.Context) error {
	code := c.Param("code")
	if code == "" {
		return c.JSON(http.StatusBadRequest, errCodeRequired)
	}

	password := cmp.Or(c.Request().Header.Get(passwordHeader), c.QueryParam("password"))

	res, err := h.linkService.Resolve(c.Request().Context(), code, password)
	if err != nil {
		h.logger.Error("failed to resolve link", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, errGetFailed)
	}

	if res.Verdict == link.VerdictFound {
		// Policies are checked on every visit, so browsers must not cache.
		c.Response().Header().Set("Cache-Control", "private, no-store")
		return c.Redirect(http.StatusMovedPermanently, res.TargetURL)
	}

	status, body := verdictResponse(res.Verdict)
	if status == http.StatusNotFound {
		h.logger.Debug("link not resolvable",
			slog.String("code", code),
			slog.String("verdict", res.Verdict.String()),
			slog.String("referrer", refererHost(c.Request().Referer())))
	}
	return c.JSON(status, body)
}

// verdictResponse maps a refusal to its HTTP answer. Expired, inactive and
// spent links are indistinguishable from unknown codes.
func verdictResponse(v link.Verdict) (int, map[string]string) {
	switch v {
	case link.VerdictPasswordRequired:
		return http.StatusUnauthorized, errPasswordRequired
	case link.VerdictPasswordMismatch:
		return http.StatusForbidden, errPasswordMismatch
	default:
		return http.StatusNotFound, errLinkNotFound
	}
}

func (h *Handler) GetLink(c echo.Context) error {
	l, err := h.linkService.Inspect(c.Request().Context(), c.Param("code"))
	if err != nil {
		return h.handleAdminError(c, err, errGetFailed)
	}
	return c.JSON(http.StatusOK, h.toLinkResponse(l))
}

func (h *Handler) DeleteLink(c echo.Context) error {
	if err := h.linkService.Delete(c.Request().Context(), c.Param("code")); err != nil {
		return h.handleAdminError(c, err, errUpdateFailed)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeactivateLink(c echo.Context) error {
	l, err := h.linkService.Deactivate(c.Request().Context(), c.Param("code"))
	if err != nil {
		return h.handleAdminError(c, err, errUpdateFailed)
	}
	return c.JSON(http.StatusOK, h.toLinkResponse(l))
}

func (h *Handler) toCreateResponse(l *link.ShortLink) domain.CreateURLResponse {
	return domain.CreateURLResponse{
		ShortCode:   l.Code,
		ShortURL:    h.linkService.ShortURL(l.Code),
		OriginalURL: l.TargetURL,
	}
}

func (h *Handler) toLinkResponse(l *link.ShortLink) domain.LinkResponse {
	return domain.LinkResponse{
		ShortCode:   l.Code,
		ShortURL:    h.linkService.ShortURL(l.Code),
		OriginalURL: l.TargetURL,
		CreatedAt:   l.CreatedAt,
		ExpiresAt:   l.ExpiresAt,
		ClickLimit:  l.ClickLimit,
		IsActive:    l.IsActive,
		Protected:   l.Protected(),
	}
}

func refererHost(referer string) string {
	if referer == "" {
		return "direct"
	}
	if u, err := url.Parse(referer); err == nil && u.Host != "" {
		return u.Host
	}
	return "unknown"
}

func (h *Handler) handleShortenError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, link.ErrInvalidURL):
		return c.JSON(http.StatusBadRequest, errInvalidURL)
	case errors.Is(err, link.ErrInvalidAlias):
		return c.JSON(http.StatusBadRequest, errInvalidAlias)
	case errors.Is(err, link.ErrAliasTaken):
		return c.JSON(http.StatusBadRequest, errAliasTaken)
	case errors.Is(err, link.ErrInvalidExpiry):
		return c.JSON(http.StatusBadRequest, errInvalidExpiry)
	case errors.Is(err, link.ErrInvalidClickLimit):
		return c.JSON(http.StatusBadRequest, errInvalidClickLimit)
	default:
		h.logger.Error("failed to create short url", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, errCreateFailed)
	}
}

func (h *Handler) handleAdminError(c echo.Context, err error, fallback map[string]string) error {
	if errors.Is(err, link.ErrNotFound) {
		return c.JSON(http.StatusNotFound, errLinkNotFound)
	}
	h.logger.Error("admin operation failed",
		slog.String("code", c.Param("code")),
		slog.String("error", err.Error()))
	return c.JSON(http.StatusInternalServerError, fallback)
}

func (h *Handler) handleValidationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, validation.ErrEmptyURL):
		return c.JSON(http.StatusBadRequest, errURLRequired)
	case errors.Is(err, validation.ErrInvalidURLFormat):
		return c.JSON(http.StatusBadRequest, errInvalidURL)
	case errors.Is(err, validation.ErrUnsafeProtocol):
		return c.JSON(http.StatusBadRequest, errUnsafeURL)
	case errors.Is(err, validation.ErrURLTooLong):
		return c.JSON(http.StatusBadRequest, errURLTooLong)
	case errors.Is(err, validation.ErrPrivateIPNotAllowed):
		return c.JSON(http.StatusBadRequest, errPrivateIP)
	case errors.Is(err, validation.ErrSelfReference):
		return c.JSON(http.StatusBadRequest, errSelfReference)
	case errors.Is(err, validation.ErrCredentialsInURL):
		return c.JSON(http.StatusBadRequest, errCredentials)
	case errors.Is(err, validation.ErrBatchTooLarge):
		return c.JSON(http.StatusBadRequest, errBatchTooLarge)
	case errors.Is(err, validation.ErrEmptyBatch):
		return c.JSON(http.StatusBadRequest, errURLsRequired)
	default:
		var batchErr *validation.BatchValidationError
		if errors.As(err, &batchErr) {
			return c.JSON(http.StatusBadRequest, h.formatBatchErrors(batchErr))
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "validation failed"})
	}
}

func (h *Handler) formatBatchErrors(err *validation.BatchValidationError) map[string]any {
	errs := make([]map[string]any, len(err.Errors))
	for i, e := range err.Errors {
		errs[i] = map[string]any{
			"index": e.Index,
			"error": e.Err.Error(),
		}
	}
	return map[string]any{"errors": errs}
}
