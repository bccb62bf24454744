// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package importer

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/platform/middleware"
	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/platform/validate"
)

const (
	// maxPreviewBytes bounds the pasted text.
	maxPreviewBytes = 512 << 10
	maxSubmitItems  = 1000
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(editorRoute chi.Router) {
		editorRoute.Use(middleware.RequireRole(sec.RoleEditor))

		editorRoute.Post("/preview", handler.preview)
		editorRoute.Post("/submit", handler.submit)
	})
}

type previewRequest struct {
	Text string `json:"text"`
}

func (handler *Handler) preview(writer http.ResponseWriter, request *http.Request) {
	var body previewRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("text", body.Text)
	validator.Custom("text", len(body.Text) > maxPreviewBytes, "Pasted text is too large")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	preview, err := handler.service.Preview(request.Context(), body.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, preview)
}

type submitRequest struct {
	Items []PendingItem `json:"items"`
}

func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	var body submitRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Custom("items", len(body.Items) == 0, "At least one item is required")
	validator.Custom("items", len(body.Items) > maxSubmitItems, "Too many items in one batch")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, handler.service.Submit(request.Context(), body.Items))
}
