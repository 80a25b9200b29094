// Package object stores generated files under a per-user namespace.
package object

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"
)

// DocxMimeType is the content type of a WordprocessingML document.
const DocxMimeType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// ErrInvalidKey is returned for file names or storage keys that escape the store.
var ErrInvalidKey = errors.New("invalid storage key")

// ObjectStore defines the contract for saving and retrieving binary objects.
type ObjectStore interface {
	Save(ctx context.Context, userID string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}

// NewKey builds "<hashed user>/<random>_<file name>" for a new object.
func NewKey(userID, fileName string) (string, error) {
	name, err := sanitizeFileName(fileName)
	if err != nil {
		return "", err
	}
	return path.Join(HashUserKey(userID), randomID()+"_"+name), nil
}

// HashUserKey returns a path-safe identifier for a user ID.
func HashUserKey(userID string) string {
	sum := sha256.Sum256([]byte(userID))
	return hex.EncodeToString(sum[:])
}

// ContentType reports the mime type of an object. Office documents are zip
// archives, so their type comes from the extension rather than the bytes.
func ContentType(fileName string, head []byte) string {
	switch strings.ToLower(path.Ext(fileName)) {
	case ".docx":
		return DocxMimeType
	}
	return http.DetectContentType(head)
}

// Sniff reads the first bytes of r for ContentType and returns a reader that
// still yields the whole stream.
func Sniff(r io.Reader) ([]byte, io.Reader, error) {
	var head [512]byte
	n, err := io.ReadFull(r, head[:])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, nil, fmt.Errorf("read sniff: %w", err)
	}
	sniffed := append([]byte(nil), head[:n]...)
	return sniffed, io.MultiReader(bytes.NewReader(sniffed), r), nil
}

func sanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, name)
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "" {
		return "", fmt.Errorf("%w: empty file name", ErrInvalidKey)
	}
	return s, nil
}

func randomID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
