package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"alhudha-backend/internal/http/middleware"
	"alhudha-backend/internal/services"
)

// UploadHandler exposes document storage. A traveler session may only touch
// its own record; admins may touch any.
type UploadHandler struct {
	BasePath string
}

func (h UploadHandler) service(c *gin.Context) services.UploadService {
	return services.UploadService{
		BasePath:  h.BasePath,
		RequestID: middleware.GetRequestID(c),
	}
}

// uploadTarget reads doc_type and traveler_id from the form, pinning
// traveler sessions to their own id.
func (h UploadHandler) uploadTarget(c *gin.Context) (string, *int64, bool) {
	docType := c.PostForm("doc_type")
	if docType == "" {
		docType = c.PostForm("type")
	}

	var travelerID *int64
	if raw := c.PostForm("traveler_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			respondError(c, http.StatusBadRequest, "Invalid traveler_id")
			return "", nil, false
		}
		travelerID = &id
	}

	if sess, ok := middleware.TravelerSession(c); ok {
		if _, admin := middleware.AdminSession(c); !admin {
			if travelerID != nil && *travelerID != sess.TravelerID {
				respondError(c, http.StatusUnauthorized, "Authentication required")
				return "", nil, false
			}
			id := sess.TravelerID
			travelerID = &id
		}
	}
	return docType, travelerID, true
}

func (h UploadHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "No file provided")
		return
	}
	docType, travelerID, ok := h.uploadTarget(c)
	if !ok {
		return
	}
	res, err := h.service(c).Upload(fh, docType, travelerID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondCreated(c, gin.H{"file": res})
}

// UploadMultiple stores a set of files of one type; per-file failures are
// reported alongside the stored ones instead of failing the whole request.
func (h UploadHandler) UploadMultiple(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil || form == nil || len(form.File["files"]) == 0 {
		respondError(c, http.StatusBadRequest, "No files provided")
		return
	}
	docType, travelerID, ok := h.uploadTarget(c)
	if !ok {
		return
	}

	svc := h.service(c)
	var stored []services.UploadResult
	var failed []gin.H
	for _, fh := range form.File["files"] {
		res, err := svc.Upload(fh, docType, travelerID)
		if err != nil {
			failed = append(failed, gin.H{"filename": fh.Filename, "error": err.Error()})
			continue
		}
		stored = append(stored, res)
	}
	respondOK(c, gin.H{"files": stored, "failed": failed})
}

func (h UploadHandler) Delete(c *gin.Context) {
	if err := h.service(c).Delete(c.Param("filename")); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "File deleted"})
}

// TravelerSlots lists the five document slots for a traveler.
func (h UploadHandler) TravelerSlots(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	slots, err := h.service(c).ListSlots(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, gin.H{"documents": slots})
}

// Cleanup reports orphaned files; it deletes nothing.
func (h UploadHandler) Cleanup(c *gin.Context) {
	orphans, err := h.service(c).Sweep()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, gin.H{"orphans": orphans, "count": len(orphans)})
}

// Download streams a stored file by name.
func (h UploadHandler) Download(c *gin.Context) {
	path, err := h.service(c).FilePath(c.Param("filename"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.File(path)
}
