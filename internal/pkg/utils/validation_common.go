package utils

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"
)

func ValidateImage(fileHeader *multipart.FileHeader, maxSizeInMegabytes int64) error {
	if fileHeader == nil {
		return errors.New("no file attached")
	}

	if fileHeader.Size > maxSizeInMegabytes*1024*1024 {
		return errors.New("file size exceeds the maximum limit")
	}

	validExtensions := []string{".jpg", ".jpeg", ".png"}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	for _, valid := range validExtensions {
		if ext == valid {
			return nil
		}
	}
	return errors.New("invalid file format")
}

func ValidateUrlParamID(param string) error {
	if param == "" {
		return errors.New("parameter is missing from url path")
	}
	return nil
}
