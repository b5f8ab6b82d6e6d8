package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/unidash/unidash/internal/infra/blob"
	"github.com/unidash/unidash/internal/modules/model"
	"github.com/unidash/unidash/internal/modules/repo"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// BlobStore keeps document contents outside the database.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

type DocumentService interface {
	List(ctx context.Context) ([]model.Document, error)
	Get(ctx context.Context, id uint) (*DocumentContent, error)
	Create(ctx context.Context, in CreateDocumentInput) (*model.Document, error)
	Delete(ctx context.Context, id uint) error
}

type documentService struct {
	r     repo.DocumentRepo
	blobs BlobStore
	log   *zap.Logger
}

// NewDocumentService stores contents inline when blobs is nil.
func NewDocumentService(r repo.DocumentRepo, blobs BlobStore, log *zap.Logger) DocumentService {
	return &documentService{r: r, blobs: blobs, log: log}
}

type CreateDocumentInput struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
	// FileData is base64, either bare or as a data URL.
	FileData string   `json:"file_data"`
	Tags     []string `json:"tags"`
}

// DocumentContent is a document with its contents as a data URL.
type DocumentContent struct {
	model.Document
	FileData string `json:"file_data"`
}

func (s *documentService) List(ctx context.Context) ([]model.Document, error) {
	docs, err := s.r.List(ctx)
	return docs, translateErr(err, "document", "")
}

func (s *documentService) Get(ctx context.Context, id uint) (*DocumentContent, error) {
	d, err := s.r.Get(ctx, id)
	if err != nil {
		return nil, translateErr(err, "document", id)
	}

	var payload string
	switch {
	case d.BlobKey != nil:
		if s.blobs == nil {
			return nil, ErrStoreUnavailable
		}
		data, err := s.blobs.Get(ctx, *d.BlobKey)
		if errors.Is(err, blob.ErrObjectNotFound) {
			return nil, notFoundErr("document content", id)
		}
		if err != nil {
			return nil, err
		}
		payload = base64.StdEncoding.EncodeToString(data)
	case d.FileData != nil:
		payload = *d.FileData
	}
	return &DocumentContent{Document: *d, FileData: "data:" + d.Type + ";base64," + payload}, nil
}

func (s *documentService) Create(ctx context.Context, in CreateDocumentInput) (*model.Document, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validationErr("document name is required")
	}
	urlType, payload := splitDataURL(in.FileData)
	if payload == "" {
		return nil, validationErr("file_data is required")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, validationErr("file_data is not valid base64")
	}

	typ := strings.TrimSpace(in.Type)
	if typ == "" {
		typ = urlType
	}
	if typ == "" {
		typ = mimetype.Detect(data).String()
	}
	size := in.Size
	if size <= 0 {
		size = int64(len(data))
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	d := &model.Document{
		Name: name,
		Type: typ,
		Size: size,
		Tags: datatypes.NewJSONType(tags),
	}
	if s.blobs != nil {
		key := blob.NewKey()
		if err := s.blobs.Put(ctx, key, typ, data); err != nil {
			return nil, err
		}
		d.BlobKey = &key
	} else {
		d.FileData = &payload
	}

	if err := s.r.Create(ctx, d); err != nil {
		if d.BlobKey != nil {
			s.releaseBlob(ctx, *d.BlobKey)
		}
		return nil, translateErr(err, "document", name)
	}
	s.log.Info("document stored", zap.Uint("document_id", d.ID), zap.String("type", typ), zap.Int64("size", size), zap.Bool("blob", d.BlobKey != nil))
	return d, nil
}

// Delete is a no-op for unknown ids.
func (s *documentService) Delete(ctx context.Context, id uint) error {
	d, err := s.r.Delete(ctx, id)
	if err != nil {
		return translateErr(err, "document", id)
	}
	if d != nil && d.BlobKey != nil {
		s.releaseBlob(ctx, *d.BlobKey)
	}
	return nil
}

func (s *documentService) releaseBlob(ctx context.Context, key string) {
	if s.blobs == nil {
		return
	}
	if err := s.blobs.Delete(ctx, key); err != nil {
		s.log.Warn("delete document blob", zap.String("key", key), zap.Error(err))
	}
}

// splitDataURL returns the media type and the base64 payload of
// "data:<type>;base64,<payload>". Anything else is taken as a bare payload.
func splitDataURL(s string) (string, string) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "data:") {
		return "", s
	}
	meta, payload, ok := strings.Cut(strings.TrimPrefix(s, "data:"), ",")
	if !ok {
		return "", ""
	}
	typ, _, _ := strings.Cut(meta, ";")
	return typ, payload
}
