package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JibinB02/pehlahath/internal/api/middleware"
	"github.com/JibinB02/pehlahath/internal/entity"
	"github.com/JibinB02/pehlahath/internal/usecase"
)

type ResourceHandler struct {
	resourceService *usecase.ResourceService
}

func NewResourceHandler(resourceService *usecase.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

func (h *ResourceHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req entity.CreateResourceRequest
	if !decodeValid(w, r, &req) {
		return
	}

	resource, err := h.resourceService.CreateRequest(r.Context(), &req, caller)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create resource request")
		return
	}

	writeJSON(w, http.StatusCreated, resource)
}

func (h *ResourceHandler) ListResources(w http.ResponseWriter, r *http.Request) {
	resources, err := h.resourceService.ListResources(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch resources")
		return
	}
	writeJSON(w, http.StatusOK, resources)
}

func (h *ResourceHandler) ListMyRequests(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	resources, err := h.resourceService.ListUserRequests(r.Context(), caller.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch resource requests")
		return
	}
	writeJSON(w, http.StatusOK, resources)
}

func (h *ResourceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid resource id")
		return
	}

	var req entity.UpdateResourceStatusRequest
	if !decodeValid(w, r, &req) {
		return
	}

	resource, err := h.resourceService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, entity.ErrResourceNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update resource")
		return
	}

	writeJSON(w, http.StatusOK, resource)
}

func (h *ResourceHandler) Allocate(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid resource id")
		return
	}

	resource, err := h.resourceService.Allocate(r.Context(), id, caller)
	if err != nil {
		if errors.Is(err, entity.ErrResourceNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to allocate resource")
		return
	}

	writeJSON(w, http.StatusOK, resource)
}

func (h *ResourceHandler) DeleteAllocated(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid resource id")
		return
	}

	if err := h.resourceService.DeleteAllocated(r.Context(), id, caller); err != nil {
		if errors.Is(err, entity.ErrResourceNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete resource")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
