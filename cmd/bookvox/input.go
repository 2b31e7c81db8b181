package main

import (
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/bookvox"
)

// readText returns the content of path, or of stdin when path is "-".
func readText(stdin io.Reader, path string) (string, error) {
	var data []byte
	var err error
	if path == "" || path == "-" {
		if stdin == nil {
			return "", bookvox.Errorf(bookvox.EINVALID, "no input on stdin")
		}
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", bookvox.Errorf(bookvox.EINVALID, "text required")
	}
	return string(data), nil
}

// readImage loads a page photograph, taking its media type from the file
// extension or, failing that, from its content.
func readImage(path string, isDoublePage bool) (*bookvox.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, bookvox.Errorf(bookvox.EINVALID, "image required")
	}
	mediaType, _, _ := mime.ParseMediaType(mime.TypeByExtension(strings.ToLower(filepath.Ext(path))))
	if !strings.HasPrefix(mediaType, "image/") {
		mediaType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return nil, bookvox.Errorf(bookvox.EINVALID, "%s is not an image", path)
	}
	return &bookvox.Image{Data: data, MIMEType: mediaType, IsDoublePage: isDoublePage}, nil
}

// outputName derives an output base name from an input path.
func outputName(path, fallback string) string {
	if path == "" || path == "-" {
		return fallback
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
