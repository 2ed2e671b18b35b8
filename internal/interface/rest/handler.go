package rest

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/totegamma/gravatar"
	"github.com/totegamma/gravatar/internal/domain"
	"github.com/totegamma/gravatar/internal/usecase"
)

type Handler struct {
	avatar *usecase.AvatarUsecase
}

func NewHandler(avatar *usecase.AvatarUsecase) *Handler {
	return &Handler{
		avatar: avatar,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/avatar/:email", h.handleAvatar)
	e.GET("/avatar/:email/html", h.handleAvatarHTML)
	e.GET("/avatar/:email/exists", h.handleAvatarExists)
	e.GET("/presets/:name", h.handleGetPreset)
	e.PUT("/presets/:name", h.handlePutPreset)
	e.DELETE("/presets/:name", h.handleDeletePreset)
}

// overrideParams maps query parameters to profile configuration keys.
var overrideParams = map[string]string{
	"d":   "default",
	"s":   "size",
	"r":   "rating",
	"b":   "border",
	"ext": "fileExtension",
}

func renderInput(c echo.Context) (usecase.RenderInput, error) {
	email, err := url.PathUnescape(c.Param("email"))
	if err != nil {
		return usecase.RenderInput{}, domain.ErrInvalidEmail
	}

	overrides := map[string]any{}
	query := c.QueryParams()
	for param, key := range overrideParams {
		if _, ok := query[param]; ok {
			overrides[key] = query.Get(param)
		}
	}

	return usecase.RenderInput{
		Email:     email,
		Preset:    c.QueryParam("preset"),
		Overrides: overrides,
	}, nil
}

func (h *Handler) handleAvatar(c echo.Context) error {
	ctx := c.Request().Context()

	input, err := renderInput(c)
	if err != nil {
		return errorResponse(c, err)
	}

	avatar, err := h.avatar.Render(ctx, input)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, avatar)
}

func (h *Handler) handleAvatarHTML(c echo.Context) error {
	ctx := c.Request().Context()

	input, err := renderInput(c)
	if err != nil {
		return errorResponse(c, err)
	}

	avatar, err := h.avatar.Render(ctx, input)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.HTML(http.StatusOK, avatar.HTML)
}

func (h *Handler) handleAvatarExists(c echo.Context) error {
	ctx := c.Request().Context()

	email, err := url.PathUnescape(c.Param("email"))
	if err != nil {
		return errorResponse(c, domain.ErrInvalidEmail)
	}

	exists, err := h.avatar.Exists(ctx, email)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"email": email, "exists": exists})
}

func (h *Handler) handleGetPreset(c echo.Context) error {
	ctx := c.Request().Context()

	preset, err := h.avatar.GetPreset(ctx, c.Param("name"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, preset)
}

type presetRequest struct {
	Options map[string]any `json:"options"`
}

func (h *Handler) handlePutPreset(c echo.Context) error {
	ctx := c.Request().Context()

	var req presetRequest
	err := c.Bind(&req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	err = h.avatar.SavePreset(ctx, domain.Preset{
		Name:    c.Param("name"),
		Options: req.Options,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (h *Handler) handleDeletePreset(c echo.Context) error {
	ctx := c.Request().Context()

	err := h.avatar.DeletePreset(ctx, c.Param("name"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func errorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, gravatar.ErrConfiguration),
		errors.Is(err, usecase.ErrEmptyPresetName):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
}
