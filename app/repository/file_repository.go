package repository

import (
	"context"
	"errors"
	"fmt"

	"thesis-management-backend/app/model"
	"thesis-management-backend/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// FileRepository mendefinisikan operasi dokumen tesis:
// metadata di PostgreSQL, blob isinya di MongoDB.
type FileRepository interface {
	// Create menyimpan dokumen:
	// - insert blob ke MongoDB (collection: files)
	// - insert metadata + pointer _id Mongo ke PostgreSQL
	// Jika insert Postgres gagal, dokumen Mongo ikut dihapus.
	Create(ctx context.Context, pgData *model.File, mongoData *model.FileDocument) error

	// FindByID mengambil metadata file dari PostgreSQL.
	FindByID(id uuid.UUID) (*model.File, error)

	// FetchDocument mengambil blob dokumen dari MongoDB berdasarkan
	// MongoFileID (hex) milik baris metadata.
	FetchDocument(ctx context.Context, mongoID string) (*model.FileDocument, error)
}

type fileRepository struct {
	pgDB    *gorm.DB
	mongoDB *mongo.Database
}

// NewFileRepository membuat instance repository file.
func NewFileRepository(pgDB *gorm.DB, mongoDB *mongo.Database) FileRepository {
	return &fileRepository{pgDB: pgDB, mongoDB: mongoDB}
}

func (r *fileRepository) Create(ctx context.Context, pgData *model.File, mongoData *model.FileDocument) error {
	// Step 1: insert blob ke MongoDB terlebih dahulu
	insertRes, err := r.mongoDB.Collection("files").InsertOne(ctx, mongoData)
	if err != nil {
		return fmt.Errorf("mongo insert error: %w", err)
	}

	oid, ok := insertRes.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("mongo insert returned non-ObjectID")
	}

	pgData.MongoFileID = oid.Hex()

	// Step 2: insert metadata ke PostgreSQL; kompensasi delete di Mongo
	// kalau gagal, supaya tidak ada blob yatim.
	if err := r.pgDB.WithContext(ctx).Create(pgData).Error; err != nil {
		_, _ = r.mongoDB.Collection("files").DeleteOne(ctx, bson.M{"_id": oid})
		return fmt.Errorf("postgres insert error: %w", err)
	}

	return nil
}

func (r *fileRepository) FindByID(id uuid.UUID) (*model.File, error) {
	var file model.File
	err := r.pgDB.Where("id = ?", id).First(&file).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("file")
	}
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *fileRepository) FetchDocument(ctx context.Context, mongoID string) (*model.FileDocument, error) {
	objID, err := primitive.ObjectIDFromHex(mongoID)
	if err != nil {
		return nil, utils.NewNotFoundError("file document")
	}
	var doc model.FileDocument
	err = r.mongoDB.Collection("files").
		FindOne(ctx, bson.M{"_id": objID}).
		Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.NewNotFoundError("file document")
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
