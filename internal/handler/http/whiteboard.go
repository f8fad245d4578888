package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taskora/taskora-backend-go/internal/domain/whiteboard"
	"github.com/taskora/taskora-backend-go/internal/handler/http/response"
)

type WhiteboardHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Save(w http.ResponseWriter, r *http.Request)
	Autosave(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type WhiteboardHandlerImpl struct {
	whiteboardService whiteboard.WhiteboardService
}

func NewWhiteboardHandler(whiteboardService whiteboard.WhiteboardService) WhiteboardHandler {
	return &WhiteboardHandlerImpl{whiteboardService: whiteboardService}
}

func decodeSaveRequest(w http.ResponseWriter, r *http.Request) (whiteboard.SaveWhiteboardRequest, bool) {
	var req whiteboard.SaveWhiteboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return req, false
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return req, false
	}
	return req, true
}

// Create implements WhiteboardHandler.
func (h *WhiteboardHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	req, ok := decodeSaveRequest(w, r)
	if !ok {
		return
	}

	created, err := h.whiteboardService.Create(r.Context(), userID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Whiteboard created", created)
}

// Get implements WhiteboardHandler.
func (h *WhiteboardHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Whiteboard ID is required", nil)
		return
	}

	board, err := h.whiteboardService.Get(r.Context(), id, userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, board)
}

// List implements WhiteboardHandler.
func (h *WhiteboardHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	boards, err := h.whiteboardService.List(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, boards)
}

// Save implements WhiteboardHandler. Explicit save, persisted immediately.
func (h *WhiteboardHandlerImpl) Save(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Whiteboard ID is required", nil)
		return
	}

	req, ok := decodeSaveRequest(w, r)
	if !ok {
		return
	}

	saved, err := h.whiteboardService.Save(r.Context(), id, userID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, saved)
}

// Autosave implements WhiteboardHandler. Accepted immediately; the write is
// debounced server-side so stroke bursts coalesce into one save.
func (h *WhiteboardHandlerImpl) Autosave(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Whiteboard ID is required", nil)
		return
	}

	req, ok := decodeSaveRequest(w, r)
	if !ok {
		return
	}

	if err := h.whiteboardService.Autosave(r.Context(), id, userID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Autosave scheduled", nil)
}

// Delete implements WhiteboardHandler.
func (h *WhiteboardHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Whiteboard ID is required", nil)
		return
	}

	if err := h.whiteboardService.Delete(r.Context(), id, userID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Whiteboard deleted", nil)
}
