package handler

import (
	"net/http"

	"storefront-api/internal/dto"
	"storefront-api/internal/middleware"
	"storefront-api/internal/service"

	"github.com/labstack/echo/v4"
)

type WishlistHandler struct {
	wishlistService service.WishlistService
}

func NewWishlistHandler(wishlistService service.WishlistService) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
	}
}

func (h *WishlistHandler) GetWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	items, err := h.wishlistService.GetWishlist(ctx, userID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"wishlist": items})
}

func (h *WishlistHandler) AddToWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	var req dto.AddToWishlistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.wishlistService.AddToWishlist(ctx, userID, req.ProductID); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, map[string]string{"message": "product added to wishlist"})
}

func (h *WishlistHandler) RemoveFromWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	if err := h.wishlistService.RemoveFromWishlist(ctx, userID, c.Param("productId")); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "product removed from wishlist"})
}
