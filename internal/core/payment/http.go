// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package payment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/platform/middleware"
	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/groups", handler.listGroups)
	router.Get("/history", handler.listHistory)

	router.With(middleware.RequireRole(sec.RoleEditor)).Post("/groups/pay", handler.payGroup)
}

func (handler *Handler) listGroups(writer http.ResponseWriter, request *http.Request) {
	groups, err := handler.service.Groups(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, groups)
}

type payRequest struct {
	AuthorIDs []int `json:"author_ids"`
}

func (handler *Handler) payGroup(writer http.ResponseWriter, request *http.Request) {
	var body payRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.MarkGroupPaid(request.Context(), body.AuthorIDs)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) listHistory(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	limit := paginationParams.Limit
	if paginationParams.All {
		limit = pagination.MaxLimit
	}

	batches, total, err := handler.service.History(request.Context(), limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, batches, pagination.NewMeta(paginationParams.Page, limit, total))
}
