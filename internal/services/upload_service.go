package services

import (
	"database/sql"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"sort"
	"strings"

	intdb "alhudha-backend/internal/db"
	"alhudha-backend/internal/domain"
	"alhudha-backend/internal/domain/models"
	"alhudha-backend/internal/repositories"
	"alhudha-backend/internal/utils"
)

// docTypeSpec describes one recognised document type: its subdirectory, the
// permitted extensions, and the size cap in megabytes.
type docTypeSpec struct {
	Dir    string
	Exts   []string
	MaxMB  int64
	IsSlot bool
}

var docTypes = map[string]docTypeSpec{
	"passport": {Dir: "passports", Exts: []string{"jpg", "jpeg", "png", "pdf"}, MaxMB: 5, IsSlot: true},
	"aadhaar":  {Dir: "aadhaar", Exts: []string{"jpg", "jpeg", "png", "pdf"}, MaxMB: 5, IsSlot: true},
	"pan":      {Dir: "pan", Exts: []string{"jpg", "jpeg", "png", "pdf"}, MaxMB: 5, IsSlot: true},
	"vaccine":  {Dir: "vaccine", Exts: []string{"jpg", "jpeg", "png", "pdf"}, MaxMB: 5, IsSlot: true},
	"photo":    {Dir: "photos", Exts: []string{"jpg", "jpeg", "png"}, MaxMB: 2, IsSlot: true},
	"logo":     {Dir: "company", Exts: []string{"jpg", "jpeg", "png"}, MaxMB: 2},
	"backup":   {Dir: "backups", Exts: []string{"zip", "sql", "gz", "db"}, MaxMB: 10},
	"document": {Dir: "documents", Exts: []string{"jpg", "jpeg", "png", "pdf", "doc", "docx"}, MaxMB: 10},
}

// UploadResult is the payload returned to the client after a stored upload.
type UploadResult struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	DocType  string `json:"doc_type"`
	FileSize int64  `json:"file_size"`
}

// OrphanFile is one unreferenced file found by the sweep.
type OrphanFile struct {
	DocType  string `json:"doc_type"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// UploadService validates and stores uploaded documents and keeps the
// traveler document slots pointing at live files. Files are written under
// BasePath/<type dir>/ with fresh random names, so concurrent uploads never
// collide; the slot column decides which one is current.
type UploadService struct {
	BasePath  string
	Travelers repositories.TravelerRepository
	RequestID string
}

// Upload stores one file. When the type is a traveler document slot and a
// traveler is named, the matching slot is updated; the previous file is left
// on disk for an explicit delete or the orphan sweep.
func (s UploadService) Upload(fh *multipart.FileHeader, docType string, travelerID *int64) (UploadResult, error) {
	spec, ok := docTypes[docType]
	if !ok {
		return UploadResult{}, domain.ValidationError{Field: "doc_type", Msg: "unknown document type"}
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fh.Filename), "."))
	if !contains(spec.Exts, ext) {
		return UploadResult{}, domain.ValidationError{
			Field: "file",
			Msg:   fmt.Sprintf("file type not allowed, permitted: %s", strings.Join(spec.Exts, ", ")),
		}
	}
	if fh.Size > spec.MaxMB*1024*1024 {
		return UploadResult{}, domain.ValidationError{
			Field: "file",
			Msg:   fmt.Sprintf("file too large, limit is %d MB", spec.MaxMB),
		}
	}

	if spec.IsSlot && travelerID != nil {
		if _, err := s.Travelers.GetByID(*travelerID); err != nil {
			if err == sql.ErrNoRows {
				return UploadResult{}, domain.NotFoundError{Resource: "Traveler"}
			}
			return UploadResult{}, intdb.ClassifyError(err)
		}
	}

	var filename string
	if travelerID != nil {
		filename = fmt.Sprintf("%s_%d_%s.%s", docType, *travelerID, utils.RandomHex(8), ext)
	} else {
		filename = fmt.Sprintf("%s_%s.%s", docType, utils.RandomHex(32), ext)
	}

	dir := filepath.Join(s.BasePath, spec.Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return UploadResult{}, domain.InternalError{Err: err}
	}
	if err := saveAtomic(fh, filepath.Join(dir, filename)); err != nil {
		return UploadResult{}, domain.InternalError{Err: err}
	}

	if spec.IsSlot && travelerID != nil {
		if err := s.Travelers.UpdateSlot(*travelerID, models.DocumentSlots[docType], filename); err != nil {
			// do not leave a file the database will never reference
			_ = os.Remove(filepath.Join(dir, filename))
			return UploadResult{}, intdb.ClassifyError(err)
		}
	}

	utils.LogEvent(s.RequestID, "upload", "store", filename)
	return UploadResult{
		Filename: filename,
		URL:      "/uploads/" + spec.Dir + "/" + filename,
		DocType:  docType,
		FileSize: fh.Size,
	}, nil
}

// Delete removes a stored file and clears any traveler slot pointing at it.
func (s UploadService) Delete(filename string) error {
	_, spec, err := specForFilename(filename)
	if err != nil {
		return err
	}

	path := filepath.Join(s.BasePath, spec.Dir, filename)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return domain.NotFoundError{Resource: "File"}
	}

	if spec.IsSlot {
		ownerID, ownerType, err := s.Travelers.FindSlotOwner(filename)
		if err != nil && err != sql.ErrNoRows {
			return intdb.ClassifyError(err)
		}
		if err == nil {
			if err := s.Travelers.UpdateSlot(ownerID, models.DocumentSlots[ownerType], nil); err != nil {
				return intdb.ClassifyError(err)
			}
		}
	}

	if err := os.Remove(path); err != nil {
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "upload", "delete", filename)
	return nil
}

// FilePath resolves a stored filename for download. Traversal is refused.
func (s UploadService) FilePath(filename string) (string, error) {
	_, spec, err := specForFilename(filename)
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.BasePath, spec.Dir, filename)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", domain.NotFoundError{Resource: "File"}
	}
	return path, nil
}

// ListSlots returns the five document slots for a traveler with URLs for
// the filled ones.
func (s UploadService) ListSlots(travelerID int64) (map[string]any, error) {
	slots, err := s.Travelers.GetSlots(travelerID)
	if err == sql.ErrNoRows {
		return nil, domain.NotFoundError{Resource: "Traveler"}
	}
	if err != nil {
		return nil, intdb.ClassifyError(err)
	}
	out := map[string]any{}
	for docType, filename := range slots {
		if filename == "" {
			out[docType] = nil
			continue
		}
		out[docType] = map[string]string{
			"filename": filename,
			"url":      "/uploads/" + docTypes[docType].Dir + "/" + filename,
		}
	}
	return out, nil
}

// Sweep reports files in the five slot directories that no traveler slot
// references. It never deletes; cleanup stays a human decision.
func (s UploadService) Sweep() ([]OrphanFile, error) {
	referenced, err := s.Travelers.SlotFilenames()
	if err != nil {
		return nil, intdb.ClassifyError(err)
	}

	orphans := []OrphanFile{}
	for docType, spec := range docTypes {
		if !spec.IsSlot {
			continue
		}
		entries, err := os.ReadDir(filepath.Join(s.BasePath, spec.Dir))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if _, ok := referenced[e.Name()]; ok {
				continue
			}
			info, err := e.Info()
			var size int64
			if err == nil {
				size = info.Size()
			}
			orphans = append(orphans, OrphanFile{DocType: docType, Filename: e.Name(), Size: size})
		}
	}
	sort.Slice(orphans, func(i, j int) bool {
		if orphans[i].DocType != orphans[j].DocType {
			return orphans[i].DocType < orphans[j].DocType
		}
		return orphans[i].Filename < orphans[j].Filename
	})
	return orphans, nil
}

// specForFilename maps a stored filename back to its type via the
// "<type>_..." prefix, rejecting traversal attempts.
func specForFilename(filename string) (string, docTypeSpec, error) {
	if filename == "" || strings.Contains(filename, "..") ||
		strings.ContainsAny(filename, "/\\") {
		return "", docTypeSpec{}, domain.ValidationError{Field: "filename", Msg: "invalid filename"}
	}
	i := strings.IndexByte(filename, '_')
	if i <= 0 {
		return "", docTypeSpec{}, domain.NotFoundError{Resource: "File"}
	}
	docType := filename[:i]
	spec, ok := docTypes[docType]
	if !ok {
		return "", docTypeSpec{}, domain.NotFoundError{Resource: "File"}
	}
	return docType, spec, nil
}

func saveAtomic(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
