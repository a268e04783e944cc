package handler

import (
	"errors"
	"net/http"

	"docuvault/internal/domain"
	apperrors "docuvault/pkg/errors"

	"github.com/gorilla/mux"
)

// DocumentHandler exposes the document endpoints. Creation endpoints
// surface quota violations as 422 responses with the backend's message.
type DocumentHandler struct {
	documents   domain.DocumentService
	logger      domain.Logger
	maxFileSize int64
}

func NewDocumentHandler(documents domain.DocumentService, logger domain.Logger, maxFileSize int64) *DocumentHandler {
	return &DocumentHandler{
		documents:   documents,
		logger:      logger,
		maxFileSize: maxFileSize,
	}
}

func (h *DocumentHandler) writeServiceError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	switch {
	case domain.IsQuotaExceeded(err):
		// The quota message is surfaced to the end user as-is.
		appErr = apperrors.NewQuotaExceededError(err.Error(), err)
	case errors.Is(err, domain.ErrDocumentNotFound):
		appErr = apperrors.NewNotFoundError("Document not found")
	case errors.Is(err, domain.ErrDocumentTypeUnknown):
		appErr = apperrors.NewValidationError("Document type is required")
	case errors.Is(err, domain.ErrAccessDenied):
		appErr = apperrors.NewForbiddenError("Access denied")
	default:
		h.logger.Error("Document operation failed", err)
		appErr = apperrors.NewInternalError("Internal server error", err)
	}
	writeError(w, appErr.StatusCode, appErr.Message)
}

// UploadDocument creates a new document and its initial version from a
// multipart upload. Both pre-save quota checks run before each write.
func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	actor, ok := GetActorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}
	token, _ := GetTokenFromContext(r)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	label := r.FormValue("label")
	if label == "" {
		label = header.Filename
	}

	doc := &domain.Document{
		TypeID: r.FormValue("document_type_id"),
		UserID: actor.ID,
		Label:  label,
	}
	if description := r.FormValue("description"); description != "" {
		doc.Description = &description
	}

	doc, err = h.documents.Create(r.Context(), actor, doc, token)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	version := &domain.DocumentVersion{
		DocumentID: doc.ID,
		FileName:   header.Filename,
		FileSize:   header.Size,
		MimeType:   header.Header.Get("Content-Type"),
	}

	version, err = h.documents.AddVersion(r.Context(), actor, version, token)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"document": doc,
		"version":  version,
	})
}

// AddVersion appends a new version to an existing document.
func (h *DocumentHandler) AddVersion(w http.ResponseWriter, r *http.Request) {
	actor, ok := GetActorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}
	token, _ := GetTokenFromContext(r)

	vars := mux.Vars(r)
	documentID := vars["id"]

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	version := &domain.DocumentVersion{
		DocumentID: documentID,
		FileName:   header.Filename,
		FileSize:   header.Size,
		MimeType:   header.Header.Get("Content-Type"),
	}
	if comment := r.FormValue("comment"); comment != "" {
		version.Comment = &comment
	}

	version, err = h.documents.AddVersion(r.Context(), actor, version, token)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, version)
}

// GetVersions lists a document's versions.
func (h *DocumentHandler) GetVersions(w http.ResponseWriter, r *http.Request) {
	if _, ok := GetActorFromContext(r); !ok {
		writeError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}
	token, _ := GetTokenFromContext(r)

	vars := mux.Vars(r)
	versions, err := h.documents.GetVersions(r.Context(), vars["id"], token)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"versions": versions})
}

// GetDocuments lists the authenticated user's documents.
func (h *DocumentHandler) GetDocuments(w http.ResponseWriter, r *http.Request) {
	actor, ok := GetActorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}
	token, _ := GetTokenFromContext(r)

	documents, err := h.documents.GetDocumentsByUserID(r.Context(), actor.ID, token)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"documents": documents})
}

// GetDocument returns a single document.
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	if _, ok := GetActorFromContext(r); !ok {
		writeError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}
	token, _ := GetTokenFromContext(r)

	vars := mux.Vars(r)
	doc, err := h.documents.GetDocument(r.Context(), vars["id"], token)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// DeleteDocument removes a document.
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if _, ok := GetActorFromContext(r); !ok {
		writeError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}
	token, _ := GetTokenFromContext(r)

	vars := mux.Vars(r)
	if err := h.documents.DeleteDocument(r.Context(), vars["id"], token); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
