package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path"

	"vendora_back_end/internal/database"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// UploadListingImage envoie une image d'annonce dans MinIO et renvoie
// son URL publique. Le nom est préfixé par la boutique pour éviter les
// collisions entre vendeurs.
func UploadListingImage(ctx context.Context, shopID string, file *multipart.FileHeader) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	bucket := os.Getenv("MINIO_BUCKET")
	objectName := path.Join(shopID, uuid.NewString()+path.Ext(file.Filename))

	_, err = database.MinIO.PutObject(ctx, bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	scheme := "http"
	if os.Getenv("MINIO_USE_SSL") == "true" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, os.Getenv("MINIO_ENDPOINT"), bucket, objectName), nil
}
