package s3

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"resume-generator/internal/shared/storage/object"
)

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "user/resume.docx", want: "user/resume.docx"},
		{name: "simple prefix", prefix: "generated", key: "user/resume.docx", want: "generated/user/resume.docx"},
		{name: "prefix trailing slash", prefix: "generated/", key: "user/resume.docx", want: "generated/user/resume.docx"},
		{name: "prefix and key slashes", prefix: "/generated/", key: "/user/resume.docx", want: "generated/user/resume.docx"},
		{name: "nested prefix", prefix: "generated/v1", key: "user/resume.docx", want: "generated/v1/user/resume.docx"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

type fakeClient struct {
	objects map[string][]byte
	puts    []*s3.PutObjectInput
}

func (f *fakeClient) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = body
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeClient) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(f.objects[aws.ToString(in.Key)]))}, nil
}

func TestStoreSaveAndOpen(t *testing.T) {
	client := &fakeClient{objects: map[string][]byte{}}
	store := NewWithClient(client, "bucket", "/generated/", "")
	payload := append([]byte("PK\x03\x04"), bytes.Repeat([]byte("x"), 1024)...)

	key, size, mimeType, err := store.Save(context.Background(), "user-1", "resume.docx", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if size != int64(len(payload)) || mimeType != object.DocxMimeType {
		t.Fatalf("size=%d mime=%q", size, mimeType)
	}
	if !strings.HasPrefix(key, object.HashUserKey("user-1")+"/") {
		t.Fatalf("key %q is outside the user namespace", key)
	}

	put := client.puts[0]
	if got := aws.ToString(put.Key); got != "generated/"+key {
		t.Fatalf("object key = %q", got)
	}
	if put.ServerSideEncryption != s3types.ServerSideEncryptionAes256 {
		t.Fatalf("expected AES256 encryption, got %q", put.ServerSideEncryption)
	}
	if got := aws.ToString(put.ContentDisposition); got != `attachment; filename="resume.docx"` {
		t.Fatalf("content disposition = %q", got)
	}

	rc, err := store.Open(context.Background(), key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	got, _ := io.ReadAll(rc)
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch")
	}
}

func TestStoreSaveUsesKMSKey(t *testing.T) {
	client := &fakeClient{objects: map[string][]byte{}}
	store := NewWithClient(client, "bucket", "", " kms-key ")

	if _, _, _, err := store.Save(context.Background(), "user-1", "resume.docx", strings.NewReader("doc")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	put := client.puts[0]
	if put.ServerSideEncryption != s3types.ServerSideEncryptionAwsKms || aws.ToString(put.SSEKMSKeyId) != "kms-key" {
		t.Fatalf("expected kms encryption, got %q %q", put.ServerSideEncryption, aws.ToString(put.SSEKMSKeyId))
	}
}
