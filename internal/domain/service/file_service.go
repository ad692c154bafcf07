package service

import (
	"context"
	"io"
)

type FileUploadService interface {
	UploadFile(ctx context.Context, file io.Reader, fileType, fileName string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
	Close() error
}
