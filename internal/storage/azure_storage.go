package storage

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// AzureBlobFetcher fetches images from Azure Blob Storage. Sources use
// the form azure://container/path/to/blob.
type AzureBlobFetcher struct {
	client *azblob.Client
}

func NewAzureBlobFetcher(accountName, accountKey string) (ImageFetcher, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, err
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &AzureBlobFetcher{client: client}, nil
}

func (s *AzureBlobFetcher) FetchImage(ctx context.Context, source string) (image.Image, error) {
	parsed, err := url.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("invalid blob source: %w", err)
	}

	containerName := parsed.Host
	blobName := strings.TrimPrefix(parsed.Path, "/")
	if containerName == "" || blobName == "" {
		return nil, fmt.Errorf("blob source must be azure://container/blob, got %q", source)
	}

	downloadResponse, err := s.client.DownloadStream(ctx, containerName, blobName, nil)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}

	retryReader := downloadResponse.Body
	defer retryReader.Close()

	img, _, err := image.Decode(retryReader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode blob %q: %w", blobName, err)
	}
	return img, nil
}
