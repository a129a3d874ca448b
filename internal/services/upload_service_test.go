package services

import (
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"alhudha-backend/internal/domain"
	"alhudha-backend/internal/repositories"
)

func TestUploadRejectsUnknownType(t *testing.T) {
	svc := UploadService{BasePath: t.TempDir()}
	fh := &multipart.FileHeader{Filename: "x.jpg", Size: 100}

	_, err := svc.Upload(fh, "certificate", nil)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUploadRejectsForbiddenExtension(t *testing.T) {
	svc := UploadService{BasePath: t.TempDir()}
	fh := &multipart.FileHeader{Filename: "scan.exe", Size: 100}

	_, err := svc.Upload(fh, "passport", nil)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "jpg") {
		t.Fatalf("permitted set should be listed, got %q", err.Error())
	}
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc := UploadService{BasePath: t.TempDir()}
	fh := &multipart.FileHeader{Filename: "scan.jpg", Size: 6 << 20} // passport limit is 5 MB

	_, err := svc.Upload(fh, "passport", nil)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	fh = &multipart.FileHeader{Filename: "me.png", Size: 3 << 20} // photo limit is 2 MB
	if _, err := svc.Upload(fh, "photo", nil); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for photo, got %v", err)
	}
}

func TestDeleteRejectsTraversal(t *testing.T) {
	svc := UploadService{BasePath: t.TempDir()}
	for _, name := range []string{"../secret.jpg", "a/b.jpg", "passport_..png"} {
		if err := svc.Delete(name); !domain.IsValidation(err) {
			t.Fatalf("expected validation error for %q, got %v", name, err)
		}
	}
}

func TestDeleteMissingFileIsNotFound(t *testing.T) {
	svc := UploadService{BasePath: t.TempDir()}
	if err := svc.Delete("document_0000.pdf"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSweepReportsOnlyUnreferencedFiles(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	base := t.TempDir()
	for _, f := range []string{
		"passports/passport_1_aaaaaaaa.jpg",
		"passports/passport_9_bbbbbbbb.jpg",
		"photos/photo_1_cccccccc.png",
	} {
		path := filepath.Join(base, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	mock.ExpectQuery("SELECT passport_scan, aadhaar_scan, pan_scan, vaccine_scan, photo_scan(.|\n)*FROM travelers").
		WillReturnRows(sqlmock.NewRows([]string{"p", "a", "n", "v", "f"}).
			AddRow("passport_1_aaaaaaaa.jpg", nil, nil, nil, "photo_1_cccccccc.png"))

	svc := UploadService{
		BasePath:  base,
		Travelers: repositories.TravelerRepository{DB: db},
	}
	orphans, err := svc.Sweep()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(orphans) != 1 {
		t.Fatalf("expected one orphan, got %d: %+v", len(orphans), orphans)
	}
	if orphans[0].Filename != "passport_9_bbbbbbbb.jpg" {
		t.Fatalf("wrong orphan reported: %+v", orphans[0])
	}

	// the sweep never deletes
	if _, err := os.Stat(filepath.Join(base, "passports", "passport_9_bbbbbbbb.jpg")); err != nil {
		t.Fatalf("orphan file was removed: %v", err)
	}
}
