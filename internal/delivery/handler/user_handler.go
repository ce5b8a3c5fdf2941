package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"notes-service/internal/application/command"
)

func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.userService.Register(c.Request().Context(), &command.RegisterUserCommand{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result.Result)
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.userService.Login(c.Request().Context(), &command.LoginUserCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) Logout(c echo.Context) error {
	result, err := h.userService.Logout(c.Request().Context(), &command.LogoutUserCommand{
		Token: bearerToken(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) GetProfile(c echo.Context) error {
	result, err := h.userService.GetProfile(c.Request().Context(), callerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.userService.UpdateProfile(c.Request().Context(), &command.UpdateProfileCommand{
		UserId:         callerID(c),
		FullName:       req.FullName,
		ProfilePicture: req.ProfilePicture,
		Bio:            req.Bio,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
