package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gxmovies/backend/internal/apperr"
	"github.com/gxmovies/backend/internal/service"
)

type PurchaseHandler struct {
	Purchases *service.PurchaseService
}

func (h *PurchaseHandler) Create(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	var req struct {
		MovieIDs      []int  `json:"movieIds"`
		PaymentMethod string `json:"paymentMethod"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.InvalidArgument("Invalid request body.")
	}
	purchase, err := h.Purchases.CreatePurchase(c.Request().Context(), userID, req.MovieIDs, req.PaymentMethod)
	if err != nil {
		return err
	}
	return Created(c, "Purchase successful.", purchase)
}

func (h *PurchaseHandler) History(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	purchases, err := h.Purchases.GetPurchasesByUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return OK(c, "Purchases fetched successfully.", purchases)
}

func (h *PurchaseHandler) Movies(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	movies, err := h.Purchases.GetPurchasedMoviesByUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return OK(c, "Purchased movies fetched successfully.", movies)
}

func (h *PurchaseHandler) IsPurchased(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	movieID, err := pathInt(c, "movieId")
	if err != nil {
		return err
	}
	ok, err := h.Purchases.IsMoviePurchased(c.Request().Context(), userID, movieID)
	if err != nil {
		return err
	}
	return OK(c, "Purchase checked successfully.", ok)
}

func (h *PurchaseHandler) Details(c echo.Context) error {
	purchaseID, err := pathInt(c, "id")
	if err != nil {
		return err
	}
	details, err := h.Purchases.DetailsByPurchase(c.Request().Context(), purchaseID)
	if err != nil {
		return err
	}
	return OK(c, "Purchase details fetched successfully.", details)
}

// Invoice streams the PDF with a download filename derived from the
// transaction id.
func (h *PurchaseHandler) Invoice(c echo.Context) error {
	purchaseID, err := pathInt(c, "id")
	if err != nil {
		return err
	}
	pdf, txn, err := h.Purchases.InvoicePDF(c.Request().Context(), purchaseID)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="invoice_%s.pdf"`, txn))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}
