package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"storefront-api/internal/apperror"

	"github.com/labstack/echo/v4"
)

// toHTTPError maps domain errors onto transport codes. Unexpected errors are
// logged in full server-side and surfaced as a generic message.
func toHTTPError(err error) error {
	var (
		validation   *apperror.ValidationError
		notFound     *apperror.NotFoundError
		conflict     *apperror.ConflictError
		unavailable  *apperror.ProductUnavailableError
		variantReq   *apperror.VariantRequiredError
		badVariant   *apperror.InvalidVariantError
		insufficient *apperror.InsufficientStockError
		signature    *apperror.SignatureMismatchError
		cannotCancel *apperror.CannotCancelError
	)

	switch {
	case errors.As(err, &validation):
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"message": validation.Msg})
	case errors.As(err, &notFound):
		return echo.NewHTTPError(http.StatusNotFound, map[string]string{"message": notFound.Error()})
	case errors.As(err, &conflict):
		return echo.NewHTTPError(http.StatusConflict, map[string]string{"message": conflict.Msg})
	case errors.As(err, &unavailable):
		return echo.NewHTTPError(http.StatusBadRequest, map[string]interface{}{
			"message":             "some products in the order are not available",
			"unavailableProducts": unavailable.MissingIDs,
		})
	case errors.As(err, &variantReq):
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{
			"message":   "select a variant for product",
			"productId": variantReq.ProductID,
		})
	case errors.As(err, &badVariant):
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{
			"message":   "variant does not belong to this product",
			"productId": badVariant.ProductID,
			"variantId": badVariant.VariantID,
		})
	case errors.As(err, &insufficient):
		body := map[string]interface{}{
			"message":   insufficient.Error(),
			"productId": insufficient.ProductID,
			"available": insufficient.Available,
			"requested": insufficient.Requested,
		}
		if insufficient.VariantID != "" {
			body["variantId"] = insufficient.VariantID
		}
		return echo.NewHTTPError(http.StatusBadRequest, body)
	case errors.As(err, &signature):
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"message": "invalid payment signature"})
	case errors.As(err, &cannotCancel):
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"message": cannotCancel.Error()})
	default:
		slog.Error("internal error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"message": "internal server error"})
	}
}
