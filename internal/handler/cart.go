package handler

import (
	"net/http"

	"storefront-api/internal/dto"
	"storefront-api/internal/middleware"
	"storefront-api/internal/service"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	items, err := h.cartService.GetCart(ctx, userID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "cart fetched successfully",
		"cart":    items,
	})
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	var req dto.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	item, err := h.cartService.AddToCart(ctx, userID, &req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "product added to cart",
		"cartItem": item,
	})
}

func (h *CartHandler) UpdateCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	var req dto.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.cartService.UpdateQuantity(ctx, userID, c.Param("id"), req.Quantity); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "cart item updated"})
}

func (h *CartHandler) RemoveCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	if err := h.cartService.RemoveFromCart(ctx, userID, c.Param("id")); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "cart item removed"})
}
