package handler

import (
	"net/http"

	"ordersystem/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ImportResponse struct {
	Inserted int `json:"inserted"`
}

// multipartのfileフィールドで受け取る一括取り込み
type ImportHandler struct {
	uc *usecase.ImportUsecase
}

func NewImportHandler(uc *usecase.ImportUsecase) *ImportHandler {
	return &ImportHandler{uc: uc}
}

func (h *ImportHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/import/customers", h.customers)
	g.POST("/import/products", h.products)
}

func (h *ImportHandler) customers(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "expected multipart/form-data with file"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cannot open file"})
	}
	defer f.Close()

	n, err := h.uc.ImportCustomersCSV(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ImportResponse{Inserted: n})
}

func (h *ImportHandler) products(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "expected multipart/form-data with file"})
	}

	//拡張子がなければJSON扱い
	format, ok := usecase.ProductFileFormatFromName(fh.Filename)
	if !ok {
		format = usecase.ProductFileJSON
	}

	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cannot open file"})
	}
	defer f.Close()

	n, err := h.uc.ImportProducts(c.Request().Context(), f, format)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ImportResponse{Inserted: n})
}
