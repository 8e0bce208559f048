package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"motofibra/catalog/internal/common"
	"motofibra/catalog/internal/constants"
	"motofibra/catalog/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}

// ListPartsHandler handles GET /api/v1/parts?name=&brand=&category=&client=
func (h *Handlers) ListPartsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := common.PartFilterFromQuery(r.URL.Query())

		parts, err := h.deps.Services.Catalog.FilterParts(r.Context(), filter)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &parts)
	}
}

// CreatePartHandler handles POST /api/v1/parts
func (h *Handlers) CreatePartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.CreatePartReq
		if !decodeJSON(w, r, &req) {
			return
		}

		part, err := h.deps.Services.Catalog.CreatePart(r.Context(), req)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusCreated, part)
	}
}

// GetPartHandler handles GET /api/v1/parts/{id}. The response carries the
// part and its details, which are null when none exist.
func (h *Handlers) GetPartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		view, err := h.deps.Services.Catalog.GetPartWithDetails(r.Context(), id)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, view)
	}
}

// UpdatePartHandler handles PUT /api/v1/parts/{id}
func (h *Handlers) UpdatePartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req dtos.UpdatePartReq
		if !decodeJSON(w, r, &req) {
			return
		}

		part, err := h.deps.Services.Catalog.UpdatePart(r.Context(), id, req)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, part)
	}
}

// PutDetailsHandler handles PUT /api/v1/parts/{id}/details. A part_id in the
// body is optional but must match the path.
func (h *Handlers) PutDetailsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req dtos.DetailsReq
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.PartID != 0 && req.PartID != id {
			respondWithFields(w, http.StatusUnprocessableEntity, constants.MsgValidationFailed,
				map[string]string{"part_id": "does not match the part in the path"})
			return
		}
		h.saveDetails(w, r, id, req)
	}
}

// CreateDetailsHandler handles POST /api/v1/part-details with part_id in the
// body. Existing details are merged, not replaced.
func (h *Handlers) CreateDetailsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.DetailsReq
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.PartID == 0 {
			respondWithFields(w, http.StatusUnprocessableEntity, constants.MsgValidationFailed,
				map[string]string{"part_id": "is required"})
			return
		}
		h.saveDetails(w, r, req.PartID, req)
	}
}

func (h *Handlers) saveDetails(w http.ResponseWriter, r *http.Request, id uint, req dtos.DetailsReq) {
	details, err := h.deps.Services.Catalog.CreateOrMergeDetails(r.Context(), id, req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithSuccess(w, http.StatusOK, details)
}

// ComparePartsHandler handles GET /api/v1/parts/compare?id1=&id2=
func (h *Handlers) ComparePartsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("id1") == "" || q.Get("id2") == "" {
			respondWithError(w, http.StatusBadRequest, constants.MsgCompareIDsMissing)
			return
		}
		id1, err1 := common.ParseID(q.Get("id1"))
		id2, err2 := common.ParseID(q.Get("id2"))
		if err := errors.Join(err1, err2); err != nil {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidPartID)
			return
		}

		cmp, err := h.deps.Services.Catalog.Compare(r.Context(), id1, id2)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, cmp)
	}
}

// CategoryReportHandler handles GET /api/v1/reports/categories?client=
func (h *Handlers) CategoryReportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client := r.URL.Query().Get("client")
		if client != "" && !constants.IsClient(client) {
			respondWithFields(w, http.StatusUnprocessableEntity, constants.MsgValidationFailed,
				map[string]string{"client": "unknown client"})
			return
		}

		rows, err := h.deps.Services.Reports.CategorySummary(r.Context(), client)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &rows)
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := common.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, constants.MsgInvalidPartID)
		return 0, false
	}
	return id, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, constants.MsgInvalidJSON)
		return false
	}
	return true
}
