package util

import (
	"fmt"
	"net/url"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sunthewhat/event-cert-api/common"
)

func InitMinIO() (*minio.Client, error) {
	fs := common.Config.FileStore
	if fs.MinIoEndpoint == nil || fs.MinIoAccessKey == nil || fs.MinIoSecretKey == nil {
		return nil, fmt.Errorf("MinIO configuration is incomplete")
	}

	secure := true
	if fs.MinIoUseSSL != nil {
		secure = *fs.MinIoUseSSL
	}

	client, err := minio.New(*fs.MinIoEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(*fs.MinIoAccessKey, *fs.MinIoSecretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	common.MinIOClient = client
	return client, nil
}

// PublicFileURL is the address a stored template or id card is served from.
// kind is "certificates" or "idcards".
func PublicFileURL(kind, filename string) string {
	base := ""
	if common.Config != nil && common.Config.FileStore != nil && common.Config.FileStore.PublicBaseURL != nil {
		base = *common.Config.FileStore.PublicBaseURL
	}
	return fmt.Sprintf("%s/api/public/%s/%s", base, kind, url.PathEscape(filename))
}
