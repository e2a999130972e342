package utils

import (
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"
)

var validImageExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// ValidateImage checks an uploaded avatar's size and extension.
func ValidateImage(fileHeader *multipart.FileHeader, maxSizeInMegabytes int64) error {
	if fileHeader == nil {
		return errors.New("file is missing")
	}

	if fileHeader.Size > maxSizeInMegabytes<<20 {
		return fmt.Errorf("file size %d exceeds the maximum limit", fileHeader.Size)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	for _, valid := range validImageExtensions {
		if ext == valid {
			return nil
		}
	}
	return errors.New("invalid file format")
}

// ImageContentType prefers the part's declared type and falls back to the file extension.
func ImageContentType(fileHeader *multipart.FileHeader) string {
	if contentType := fileHeader.Header.Get("Content-Type"); contentType != "" && contentType != "application/octet-stream" {
		return contentType
	}
	return mime.TypeByExtension(strings.ToLower(filepath.Ext(fileHeader.Filename)))
}
