package libs

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

func newClient() (*cloudinary.Cloudinary, error) {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		cldURL := os.Getenv("CLOUDINARY_URL")
		if cldURL == "" {
			return nil, fmt.Errorf("cloudinary environment variables not set")
		}
		return cloudinary.NewFromURL(cldURL)
	}

	return cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
}

// UploadToCloudinary pushes a staged local file to the products folder and
// removes the local copy.
func UploadToCloudinary(localPath string) (string, error) {
	if _, err := os.Stat(localPath); os.IsNotExist(err) {
		return "", fmt.Errorf("file not found: %s", localPath)
	}

	cld, err := newClient()
	if err != nil {
		return "", fmt.Errorf("cloudinary init failed: %v", err)
	}

	resp, err := cld.Upload.Upload(context.Background(), localPath, uploader.UploadParams{
		PublicID: fmt.Sprintf("product_%d", time.Now().UnixNano()),
		Folder:   "products",
	})

	os.Remove(localPath)

	if err != nil {
		return "", err
	}
	if resp == nil || (resp.SecureURL == "" && resp.URL == "") {
		return "", fmt.Errorf("cloudinary returned no URL")
	}

	if resp.SecureURL != "" {
		return resp.SecureURL, nil
	}
	return resp.URL, nil
}

// ExtractPublicID recovers the public id from a Cloudinary delivery URL so a
// stored image can be deleted. Returns "" for URLs that are not Cloudinary
// uploads.
func ExtractPublicID(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	parts := strings.Split(rawURL, "/")
	uploadIndex := -1
	for i, part := range parts {
		if part == "upload" {
			uploadIndex = i
			break
		}
	}
	if uploadIndex == -1 || uploadIndex >= len(parts)-1 {
		return ""
	}

	idParts := parts[uploadIndex+1:]
	// Skip the version segment (v<digits>) Cloudinary inserts before the
	// public id.
	if len(idParts) > 1 && isVersionSegment(idParts[0]) {
		idParts = idParts[1:]
	}

	publicID := strings.Join(idParts, "/")
	if qIndex := strings.Index(publicID, "?"); qIndex != -1 {
		publicID = publicID[:qIndex]
	}
	if dotIndex := strings.LastIndex(publicID, "."); dotIndex != -1 {
		publicID = publicID[:dotIndex]
	}
	return publicID
}

func isVersionSegment(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func DeleteFromCloudinary(publicID string) error {
	cld, err := newClient()
	if err != nil {
		return fmt.Errorf("cloudinary init failed: %v", err)
	}

	result, err := cld.Upload.Destroy(context.Background(), uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete from Cloudinary: %v", err)
	}
	if result.Result != "ok" {
		return fmt.Errorf("cloudinary deletion failed: %s", result.Result)
	}
	return nil
}
