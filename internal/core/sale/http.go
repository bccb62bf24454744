// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sale

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/platform/middleware"
	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/platform/validate"
)

// maxBatchItems bounds a single batch submission.
const maxBatchItems = 1000

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listSales)
	router.Get("/{id}", handler.getSale)

	router.Group(func(editorRoute chi.Router) {
		editorRoute.Use(middleware.RequireRole(sec.RoleEditor))

		editorRoute.Post("/", handler.createSale)
		editorRoute.Post("/batch", handler.submitBatch)
		editorRoute.Put("/{id}", handler.updateSale)
		editorRoute.Put("/{id}/paid", handler.setPaid)

		editorRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteSale)
	})
}

func (handler *Handler) listSales(writer http.ResponseWriter, request *http.Request) {
	q, err := QueryFromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.List(request.Context(), q)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, page.Items, page.Meta())
}

// ListBookSales serves GET /books/{id}/sales.
func (handler *Handler) ListBookSales(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	q, err := QueryFromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.ListForBook(request.Context(), bookID, q)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, page.Items, page.Meta())
}

func (handler *Handler) getSale(writer http.ResponseWriter, request *http.Request) {
	saleID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.GetSale(request.Context(), saleID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

func (handler *Handler) createSale(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.CreateSale(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, view)
}

func (handler *Handler) updateSale(writer http.ResponseWriter, request *http.Request) {
	saleID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.UpdateSale(request.Context(), saleID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

type paidRequest struct {
	Paid *bool `json:"paid"`
}

func (handler *Handler) setPaid(writer http.ResponseWriter, request *http.Request) {
	saleID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body paidRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if body.Paid == nil {
		respond.Error(writer, request, validate.RequiredError("paid", "This field is required"))
		return
	}

	view, err := handler.service.SetPaid(request.Context(), saleID, *body.Paid)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

func (handler *Handler) deleteSale(writer http.ResponseWriter, request *http.Request) {
	saleID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteSale(request.Context(), saleID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

type batchRequest struct {
	Items []Input `json:"items"`
}

func (handler *Handler) submitBatch(writer http.ResponseWriter, request *http.Request) {
	var body batchRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Custom(FieldItems, len(body.Items) == 0, "At least one item is required")
	validator.Custom(FieldItems, len(body.Items) > maxBatchItems, "Too many items in one batch")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, handler.service.SubmitBatch(request.Context(), body.Items))
}
