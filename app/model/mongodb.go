package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FileDocument merepresentasikan 1 dokumen file di MongoDB (collection: files).
// Isi file disimpan apa adanya (opaque blob); metadata yang sering di-query
// (filename, mimetype) ikut disalin supaya dokumen bisa berdiri sendiri.
type FileDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"` // _id dokumen Mongo
	Filename    string             `bson:"filename"`      // nama file asli saat upload
	ContentType string             `bson:"contentType"`   // MIME type (pdf / arsip)
	Data        []byte             `bson:"data"`          // isi file mentah
	UploadedAt  time.Time          `bson:"uploadedAt"`    // waktu upload
}
