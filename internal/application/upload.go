package application

import (
	"context"
	"errors"
	"time"

	"github.com/linskybing/formpilot/internal/domain/form"
	"github.com/linskybing/formpilot/internal/storage"
	"go.uber.org/zap"
)

var (
	ErrNotFileField       = errors.New("field does not accept file uploads")
	ErrUploadsUnavailable = errors.New("file uploads are not configured")
)

// UploadTicket is a presigned URL a respondent PUTs the file to.
type UploadTicket struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	Method    string    `json:"method"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type UploadService struct {
	Forms     *FormService
	Presigner storage.Presigner
	Expiry    time.Duration
	Logger    *zap.Logger
}

func NewUploadService(forms *FormService, presigner storage.Presigner, expiry time.Duration, logger *zap.Logger) *UploadService {
	return &UploadService{
		Forms:     forms,
		Presigner: presigner,
		Expiry:    expiry,
		Logger:    logger,
	}
}

// UploadURL issues a presigned PUT for a file field of a form.
func (s *UploadService) UploadURL(ctx context.Context, formID, fieldID string, input form.UploadURLDTO) (*UploadTicket, error) {
	if s.Presigner == nil {
		return nil, ErrUploadsUnavailable
	}
	f, err := s.Forms.GetForm(ctx, formID)
	if err != nil {
		return nil, err
	}
	field, ok := f.FieldByID(fieldID)
	if !ok {
		return nil, form.ErrFieldNotFound
	}
	if field.Type != form.FieldFile {
		return nil, ErrNotFileField
	}

	key := storage.UploadKey(formID, fieldID, input.FileName)
	u, err := s.Presigner.PresignUpload(ctx, key, s.Expiry)
	if err != nil {
		s.Logger.Error("presign upload failed", zap.String("form_id", formID), zap.String("key", key), zap.Error(err))
		return nil, external("presign upload", formID, err)
	}
	return &UploadTicket{
		URL:       u.String(),
		Key:       key,
		Method:    "PUT",
		ExpiresAt: time.Now().UTC().Add(s.Expiry),
	}, nil
}
