package web

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

// ProductHandler drives the resourceful product UI: a searchable, paginated
// listing plus the create/edit/delete forms. Mutation controls are hidden from
// non-admins in the listing, matching the original views.
type ProductHandler struct {
	service ports.ProductService
	roles   ports.RoleRepository
	assets  ports.AssetStore
}

func NewProductHandler(service ports.ProductService, roles ports.RoleRepository, assets ports.AssetStore) *ProductHandler {
	return &ProductHandler{service: service, roles: roles, assets: assets}
}

type productRow struct {
	ID          string
	Name        string
	Description string
	Price       float64
	ImageURL    string
}

func (h *ProductHandler) row(p *domain.Product) productRow {
	row := productRow{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
	}
	if p.Image != "" {
		row.ImageURL = h.assets.URLFor(p.Image)
	}
	return row
}

func (h *ProductHandler) Index(c echo.Context) error {
	ctx := c.Request().Context()
	search := c.QueryParam("search")
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}

	products, total, err := h.service.Page(ctx, search, page)
	if err != nil {
		return err
	}

	roles, err := h.roles.RoleNamesForUser(ctx, currentUserID(c))
	if err != nil {
		return err
	}
	isAdmin := false
	for _, r := range roles {
		if r == domain.RoleAdmin {
			isAdmin = true
		}
	}

	rows := make([]productRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, h.row(p))
	}

	totalPages := int((total + ports.UIPageSize - 1) / ports.UIPageSize)
	return c.Render(http.StatusOK, "product_index.html", map[string]any{
		"CSRF":       csrfToken(c),
		"Products":   rows,
		"Search":     search,
		"Page":       page,
		"TotalPages": totalPages,
		"PrevPage":   page - 1,
		"NextPage":   page + 1,
		"IsAdmin":    isAdmin,
	})
}

func (h *ProductHandler) New(c echo.Context) error {
	return c.Render(http.StatusOK, "product_form.html", map[string]any{
		"CSRF":   csrfToken(c),
		"Action": "/dashboard/products",
		"Title":  "New product",
	})
}

func (h *ProductHandler) Create(c echo.Context) error {
	input, formErr, err := h.readForm(c)
	if err != nil {
		return err
	}
	if formErr == "" {
		_, err = h.service.Create(c.Request().Context(), ports.CreateProductInput(input))
		switch {
		case err == nil:
			metrics.ProductsMutatedTotal.WithLabelValues("create").Inc()
			return c.Redirect(http.StatusFound, "/dashboard/products")
		case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidAsset):
			formErr = err.Error()
		default:
			return err
		}
	}

	return c.Render(http.StatusUnprocessableEntity, "product_form.html", map[string]any{
		"CSRF":    csrfToken(c),
		"Action":  "/dashboard/products",
		"Title":   "New product",
		"Error":   formErr,
		"Product": productRow{Name: input.Name, Description: input.Description, Price: input.Price},
	})
}

func (h *ProductHandler) Show(c echo.Context) error {
	product, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.Redirect(http.StatusFound, "/dashboard/products")
		}
		return err
	}
	return c.Render(http.StatusOK, "product_show.html", map[string]any{
		"Product": h.row(product),
	})
}

func (h *ProductHandler) Edit(c echo.Context) error {
	product, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.Redirect(http.StatusFound, "/dashboard/products")
		}
		return err
	}
	return c.Render(http.StatusOK, "product_form.html", map[string]any{
		"CSRF":    csrfToken(c),
		"Action":  "/dashboard/products/" + product.ID,
		"Title":   "Edit product",
		"Product": h.row(product),
	})
}

func (h *ProductHandler) Update(c echo.Context) error {
	id := c.Param("id")
	input, formErr, err := h.readForm(c)
	if err != nil {
		return err
	}
	if formErr == "" {
		_, err = h.service.Update(c.Request().Context(), id, ports.UpdateProductInput(input))
		switch {
		case err == nil:
			metrics.ProductsMutatedTotal.WithLabelValues("update").Inc()
			return c.Redirect(http.StatusFound, "/dashboard/products")
		case errors.Is(err, domain.ErrProductNotFound):
			return c.Redirect(http.StatusFound, "/dashboard/products")
		case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidAsset):
			formErr = err.Error()
		default:
			return err
		}
	}

	return c.Render(http.StatusUnprocessableEntity, "product_form.html", map[string]any{
		"CSRF":    csrfToken(c),
		"Action":  "/dashboard/products/" + id,
		"Title":   "Edit product",
		"Error":   formErr,
		"Product": productRow{ID: id, Name: input.Name, Description: input.Description, Price: input.Price},
	})
}

func (h *ProductHandler) Destroy(c echo.Context) error {
	err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil && !errors.Is(err, domain.ErrProductNotFound) {
		return err
	}
	if err == nil {
		metrics.ProductsMutatedTotal.WithLabelValues("delete").Inc()
	}
	return c.Redirect(http.StatusFound, "/dashboard/products")
}

// readForm parses the shared create/edit form. The second return value is a
// user-facing validation message; the third is an internal failure.
func (h *ProductHandler) readForm(c echo.Context) (ports.CreateProductInput, string, error) {
	input := ports.CreateProductInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
	}

	if raw := c.FormValue("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return input, "price must be a number", nil
		}
		input.Price = price
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return input, "", nil
	}
	f, err := fh.Open()
	if err != nil {
		return input, "", err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return input, "", err
	}
	input.Image = &ports.ImageUpload{Filename: fh.Filename, Data: data}
	return input, "", nil
}
