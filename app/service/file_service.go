package service

import (
	"context"
	"strings"
	"time"

	"thesis-management-backend/app/model"
	"thesis-management-backend/app/permission"
	"thesis-management-backend/app/repository"
	"thesis-management-backend/utils"

	"github.com/google/uuid"
)

// Tipe konten dokumen tesis yang diterima: PDF atau arsip zip.
var allowedMimetypes = map[string]bool{
	"application/pdf":              true,
	"application/zip":              true,
	"application/x-zip-compressed": true,
}

// MaxFileSize adalah batas ukuran upload dokumen (16 MB, batas dokumen BSON).
const MaxFileSize = 16 << 20

// FileService menangani upload/download dokumen tesis.
// Metadata di PostgreSQL, isi file di MongoDB.
type FileService interface {
	Upload(ctx context.Context, actor permission.Actor, filename, mimetype string, data []byte) (*model.File, error)
	Get(ctx context.Context, actor permission.Actor, fileID uuid.UUID) (*model.File, *model.FileDocument, error)
}

type fileService struct {
	store repository.Store
}

// NewFileService menghubungkan Service dengan Store.
func NewFileService(store repository.Store) FileService {
	return &fileService{store: store}
}

// Upload memvalidasi lalu menyimpan 1 dokumen.
func (s *fileService) Upload(ctx context.Context, actor permission.Actor, filename, mimetype string, data []byte) (*model.File, error) {
	if err := actor.Require(permission.ActionCreate, permission.SubjectFile, nil); err != nil {
		return nil, err
	}
	if filename == "" {
		return nil, utils.NewValidationError("Filename is required")
	}
	if !allowedMimetypes[strings.ToLower(mimetype)] {
		return nil, utils.NewValidationError("Only PDF and zip documents are accepted")
	}
	if len(data) == 0 {
		return nil, utils.NewValidationError("Uploaded file is empty")
	}
	if len(data) > MaxFileSize {
		return nil, utils.NewValidationError("Uploaded file exceeds the 16 MB limit")
	}

	pgFile := &model.File{
		Filename: filename,
		Mimetype: mimetype,
	}
	doc := &model.FileDocument{
		Filename:    filename,
		ContentType: mimetype,
		Data:        data,
		UploadedAt:  time.Now(),
	}
	if err := s.store.Files().Create(ctx, pgFile, doc); err != nil {
		return nil, err
	}
	return pgFile, nil
}

// Get mengambil metadata + blob 1 dokumen.
func (s *fileService) Get(ctx context.Context, actor permission.Actor, fileID uuid.UUID) (*model.File, *model.FileDocument, error) {
	if err := actor.Require(permission.ActionRead, permission.SubjectFile, nil); err != nil {
		return nil, nil, err
	}
	file, err := s.store.Files().FindByID(fileID)
	if err != nil {
		return nil, nil, err
	}
	doc, err := s.store.Files().FetchDocument(ctx, file.MongoFileID)
	if err != nil {
		return nil, nil, err
	}
	return file, doc, nil
}
