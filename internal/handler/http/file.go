package http

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/taskora/taskora-backend-go/internal/domain/file"
	"github.com/taskora/taskora-backend-go/internal/handler/http/response"
	sfile "github.com/taskora/taskora-backend-go/internal/service/file"
)

type FileHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	SignedURL(w http.ResponseWriter, r *http.Request)
	Download(w http.ResponseWriter, r *http.Request)
}

type FileHandlerImpl struct {
	fileService file.FileService
}

func NewFileHandler(fileService file.FileService) FileHandler {
	return &FileHandlerImpl{fileService: fileService}
}

// Upload implements FileHandler. Multipart form with a "file" part and an
// optional "subject" field.
func (h *FileHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, sfile.MaxUploadBytes+1024)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "file part is required", nil)
		return
	}
	defer part.Close()

	var subjectTag *string
	if subject := r.FormValue("subject"); subject != "" {
		subjectTag = &subject
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	uploaded, err := h.fileService.Upload(r.Context(), file.UploadInput{
		OwnerID:     userID,
		DisplayName: header.Filename,
		MimeType:    mimeType,
		SizeBytes:   header.Size,
		SubjectTag:  subjectTag,
		Content:     part,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "File uploaded", uploaded)
}

// List implements FileHandler.
func (h *FileHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	files, err := h.fileService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, files)
}

// Delete implements FileHandler.
func (h *FileHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "File ID is required", nil)
		return
	}

	isSuperAdmin := getRoleFromContext(r).IsSuperAdmin()
	if err := h.fileService.Delete(r.Context(), id, userID, isSuperAdmin); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "File deleted", nil)
}

// SignedURL implements FileHandler. Optional ttl query parameter in seconds.
func (h *FileHandlerImpl) SignedURL(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "File ID is required", nil)
		return
	}

	var ttl time.Duration
	if raw := r.URL.Query().Get("ttl"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			response.BadRequest(w, "ttl must be a positive number of seconds", nil)
			return
		}
		ttl = time.Duration(seconds) * time.Second
	}

	signed, err := h.fileService.SignedURL(r.Context(), id, ttl)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, signed)
}

// Download implements FileHandler. Public endpoint; the signed token in the
// query string is the whole authorization.
func (h *FileHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		response.Unauthorized(w, "Missing token")
		return
	}

	reader, record, err := h.fileService.OpenSigned(r.Context(), token)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", record.MimeType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+record.DisplayName+`"`)
	w.Header().Set("Content-Length", strconv.FormatInt(record.SizeBytes, 10))
	_, _ = io.Copy(w, reader)
}
