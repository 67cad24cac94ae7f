package services

import (
	"context"
	"io"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	config "github.com/notewala/gyan_notes/configs"
)

// UploadFile pushes a file to Cloudinary and returns its secure URL. The
// URL is treated as an opaque string everywhere else.
func UploadFile(file interface{}, folder, publicID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", &StorageError{Op: "init", Err: err}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       folder,
		PublicID:     publicID,
		ResourceType: "auto",
	})
	if err != nil {
		return "", &StorageError{Op: "upload", Err: err}
	}
	return result.SecureURL, nil
}

// UploadRaw stores non-image bytes (PDFs) with the raw resource type.
func UploadRaw(reader io.Reader, folder, publicID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", &StorageError{Op: "init", Err: err}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := cld.Upload.Upload(ctx, reader, uploader.UploadParams{
		Folder:       folder,
		PublicID:     publicID,
		ResourceType: "raw",
	})
	if err != nil {
		return "", &StorageError{Op: "upload", Err: err}
	}
	return result.SecureURL, nil
}
