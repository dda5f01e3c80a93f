package handler

import "github.com/storekit/catalog-api/internal/core/domain"

// statusEnvelope is the minimal success/failure body shared by all endpoints.
type statusEnvelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required,max=255"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerData struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type registerResponse struct {
	Status  bool         `json:"status"`
	Message string       `json:"message"`
	Data    registerData `json:"data"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

// loginFailResponse carries the validation detail the login endpoint returns
// alongside its 401.
type loginFailResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

// --- Products ---

// The "total data" key (with the space) is part of the stable list contract.
type listProductsResponse struct {
	Status  bool              `json:"status"`
	Total   int               `json:"total data"`
	Message string            `json:"message"`
	Data    []*domain.Product `json:"data"`
}

type productResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    *domain.Product `json:"data"`
}

// createProductForm is the multipart field set for POST /products. The image
// part is read separately and is optional.
type createProductForm struct {
	Name        string `form:"name"        validate:"required,max=255"`
	Description string `form:"description" validate:"required"`
	Price       string `form:"price"       validate:"required,numeric"`
}

// updateProductForm allows omission, but omitted fields still overwrite the
// stored values with zero values on the write path (see ProductService.Update).
type updateProductForm struct {
	Name        string `form:"name"        validate:"omitempty,max=255"`
	Description string `form:"description"`
	Price       string `form:"price"       validate:"omitempty,numeric"`
}

type validationFailResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Errors  string `json:"errors"`
}
