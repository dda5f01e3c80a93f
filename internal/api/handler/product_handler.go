package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/storekit/catalog-api/internal/api/metrics"
	"github.com/storekit/catalog-api/internal/core/domain"
	"github.com/storekit/catalog-api/internal/core/ports"
)

// ProductHandler handles the JSON product CRUD surface.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// Index lists every product ordered by name.
//
// @Summary      Get all products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listProductsResponse
// @Failure      500  {object}  statusEnvelope
// @Router       /products [get]
func (h *ProductHandler) Index(c echo.Context) error {
	products, err := h.service.List(c.Request().Context(), "")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, statusEnvelope{
			Status:  false,
			Message: "Failed get Product: " + err.Error(),
		})
	}

	return c.JSON(http.StatusOK, listProductsResponse{
		Status:  true,
		Total:   len(products),
		Message: "Successfully get products",
		Data:    products,
	})
}

// Store creates a product from a multipart form with an optional image part.
//
// @Summary      Create a new product
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name         formData  string  true   "Product name"
// @Param        description  formData  string  true   "Product description"
// @Param        price        formData  number  true   "Product price"
// @Param        image        formData  file    false  "Product image"
// @Success      200  {object}  productResponse
// @Failure      400  {object}  validationFailResponse
// @Failure      500  {object}  statusEnvelope
// @Router       /products [post]
func (h *ProductHandler) Store(c echo.Context) error {
	var form createProductForm
	if err := c.Bind(&form); err != nil {
		return createFail(c, "invalid payload")
	}
	if err := c.Validate(&form); err != nil {
		return createFail(c, err.Error())
	}

	price, err := strconv.ParseFloat(form.Price, 64)
	if err != nil {
		return createFail(c, "price must be a number")
	}

	image, err := readImagePart(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, statusEnvelope{
			Status:  false,
			Message: "Failed to create Product: " + err.Error(),
		})
	}

	product, err := h.service.Create(c.Request().Context(), ports.CreateProductInput{
		Name:        form.Name,
		Description: form.Description,
		Price:       price,
		Image:       image,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrInvalidAsset) {
			return createFail(c, err.Error())
		}
		return c.JSON(http.StatusInternalServerError, statusEnvelope{
			Status:  false,
			Message: "Failed to create Product: " + err.Error(),
		})
	}

	metrics.ProductsMutatedTotal.WithLabelValues("create").Inc()
	if image != nil {
		metrics.AssetsStoredTotal.Inc()
	}
	return c.JSON(http.StatusOK, productResponse{
		Status:  true,
		Message: "Successfully create Product",
		Data:    product,
	})
}

// Show returns one product. A missing id surfaces as a 500 with the cause in
// the message: the contract of the original endpoint.
//
// @Summary      Get a product by ID
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  productResponse
// @Failure      500  {object}  statusEnvelope
// @Router       /products/{id} [get]
func (h *ProductHandler) Show(c echo.Context) error {
	product, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, statusEnvelope{
			Status:  false,
			Message: "Failed to get detail Product: " + err.Error(),
		})
	}

	return c.JSON(http.StatusOK, productResponse{
		Status:  true,
		Message: "Successfully get detail product",
		Data:    product,
	})
}

// Update overwrites a product from a multipart form. Omitted fields still
// overwrite the stored values; a new image replaces and deletes the old asset.
//
// @Summary      Update a product
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id           path      string  true   "Product ID"
// @Param        name         formData  string  false  "Product name"
// @Param        description  formData  string  false  "Product description"
// @Param        price        formData  number  false  "Product price"
// @Param        image        formData  file    false  "Product image"
// @Success      200  {object}  productResponse
// @Failure      400  {object}  validationFailResponse
// @Failure      500  {object}  statusEnvelope
// @Router       /products/{id} [patch]
func (h *ProductHandler) Update(c echo.Context) error {
	var form updateProductForm
	if err := c.Bind(&form); err != nil {
		return updateFail(c, "invalid payload")
	}

	price := 0.0
	if form.Price != "" {
		parsed, err := strconv.ParseFloat(form.Price, 64)
		if err != nil {
			return updateFail(c, "price must be a number")
		}
		price = parsed
	}

	image, err := readImagePart(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, statusEnvelope{
			Status:  false,
			Message: "Failed to update Product: " + err.Error(),
		})
	}

	// The service resolves the product before validating, so an unknown id
	// reports not-found (a 500 here) even when the payload is also invalid.
	product, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateProductInput{
		Name:        form.Name,
		Description: form.Description,
		Price:       price,
		Image:       image,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrInvalidAsset) {
			return updateFail(c, err.Error())
		}
		return c.JSON(http.StatusInternalServerError, statusEnvelope{
			Status:  false,
			Message: "Failed to update Product: " + err.Error(),
		})
	}

	metrics.ProductsMutatedTotal.WithLabelValues("update").Inc()
	if image != nil {
		metrics.AssetsStoredTotal.Inc()
	}
	return c.JSON(http.StatusOK, productResponse{
		Status:  true,
		Message: "Successfully updated Product",
		Data:    product,
	})
}

// Destroy deletes a product and its stored image.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  statusEnvelope
// @Failure      500  {object}  statusEnvelope
// @Router       /products/{id} [delete]
func (h *ProductHandler) Destroy(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return c.JSON(http.StatusInternalServerError, statusEnvelope{
			Status:  false,
			Message: "Failed to delete Product: " + err.Error(),
		})
	}

	metrics.ProductsMutatedTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, statusEnvelope{
		Status:  true,
		Message: "Successfully delete product",
	})
}

// readImagePart reads the optional "image" multipart part. A request without
// one (or without a multipart body at all) yields nil, nil.
func readImagePart(c echo.Context) (*ports.ImageUpload, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &ports.ImageUpload{Filename: fh.Filename, Data: data}, nil
}

func createFail(c echo.Context, detail string) error {
	return c.JSON(http.StatusBadRequest, validationFailResponse{
		Status:  false,
		Message: "Fail Create Data Product",
		Errors:  detail,
	})
}

func updateFail(c echo.Context, detail string) error {
	return c.JSON(http.StatusBadRequest, validationFailResponse{
		Status:  false,
		Message: "Fail Update Data Product",
		Errors:  detail,
	})
}
