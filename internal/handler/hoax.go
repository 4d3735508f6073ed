package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/hoaxify/hoaxify/internal/ctxkeys"
	"github.com/hoaxify/hoaxify/internal/service"
	"github.com/hoaxify/hoaxify/internal/validation"
)

// maxAttachmentBytes caps hoax attachment uploads at 5MB
const maxAttachmentBytes = 5 << 20

type HoaxHandler struct {
	hoaxService *service.HoaxService
	fileService *service.FileService
}

func NewHoaxHandler(hoaxService *service.HoaxService, fileService *service.FileService) *HoaxHandler {
	return &HoaxHandler{
		hoaxService: hoaxService,
		fileService: fileService,
	}
}

type createHoaxRequest struct {
	Content        string  `json:"content"`
	FileAttachment *string `json:"fileAttachment"`
}

func (h *HoaxHandler) Create(w http.ResponseWriter, r *http.Request) {
	authenticated := ctxkeys.User(r.Context())
	if authenticated == nil {
		writeError(w, r, http.StatusUnauthorized, "unauthorized_hoax_submit", nil)
		return
	}

	var req createHoaxRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := validation.ValidateHoaxContent(req.Content); err != nil {
		writeError(w, r, http.StatusBadRequest, "validation_failure", map[string]string{"content": err.Error()})
		return
	}

	_, err := h.hoaxService.Create(authenticated.ID, req.Content, req.FileAttachment)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "server_failure", nil)
		return
	}

	writeMessage(w, r, http.StatusOK, "hoax_submit_success")
}

func (h *HoaxHandler) List(w http.ResponseWriter, r *http.Request) {
	page, size := pagination(r)

	result, err := h.hoaxService.List(page, size, "")
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "server_failure", nil)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *HoaxHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	page, size := pagination(r)
	userID := r.PathValue("id")

	result, err := h.hoaxService.List(page, size, userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, r, http.StatusNotFound, "user_not_found", nil)
			return
		}
		writeError(w, r, http.StatusInternalServerError, "server_failure", nil)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *HoaxHandler) Delete(w http.ResponseWriter, r *http.Request) {
	authenticated := ctxkeys.User(r.Context())
	if authenticated == nil {
		writeError(w, r, http.StatusForbidden, "unauthorized_hoax_delete", nil)
		return
	}

	err := h.hoaxService.Delete(r.PathValue("id"), authenticated.ID)
	if err != nil {
		if errors.Is(err, service.ErrHoaxDeleteForbidden) {
			writeError(w, r, http.StatusForbidden, "unauthorized_hoax_delete", nil)
			return
		}
		writeError(w, r, http.StatusInternalServerError, "server_failure", nil)
		return
	}

	writeMessage(w, r, http.StatusOK, "hoax_delete_success")
}

type uploadAttachmentResponse struct {
	ID string `json:"id"`
}

// UploadAttachment stores a file ahead of hoax submission. The returned
// id is what a later hoax submit references as fileAttachment.
func (h *HoaxHandler) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(maxAttachmentBytes)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "validation_failure", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "validation_failure", nil)
		return
	}
	defer file.Close()

	if header.Size > maxAttachmentBytes {
		writeError(w, r, http.StatusBadRequest, "attachment_size_limit", nil)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxAttachmentBytes+1))
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "server_failure", nil)
		return
	}
	if len(data) > maxAttachmentBytes {
		writeError(w, r, http.StatusBadRequest, "attachment_size_limit", nil)
		return
	}

	attachment, err := h.fileService.SaveAttachment(data)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "server_failure", nil)
		return
	}

	writeJSON(w, http.StatusOK, uploadAttachmentResponse{ID: attachment.ID})
}
