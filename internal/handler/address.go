package handler

import (
	"net/http"

	"storefront-api/internal/dto"
	"storefront-api/internal/middleware"
	"storefront-api/internal/service"

	"github.com/labstack/echo/v4"
)

type AddressHandler struct {
	addressService service.AddressService
}

func NewAddressHandler(addressService service.AddressService) *AddressHandler {
	return &AddressHandler{
		addressService: addressService,
	}
}

func (h *AddressHandler) ListAddresses(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	addresses, err := h.addressService.ListAddresses(ctx, userID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"addresses": addresses})
}

func (h *AddressHandler) CreateAddress(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	var req dto.AddressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	address, err := h.addressService.CreateAddress(ctx, userID, &req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "address added successfully",
		"address": address,
	})
}

func (h *AddressHandler) UpdateAddress(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	var req dto.AddressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	address, err := h.addressService.UpdateAddress(ctx, userID, c.Param("id"), &req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "address updated successfully",
		"address": address,
	})
}

func (h *AddressHandler) DeleteAddress(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	if err := h.addressService.DeleteAddress(ctx, userID, c.Param("id")); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "address deleted successfully"})
}
