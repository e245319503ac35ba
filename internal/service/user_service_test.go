package service

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"alignai-be/internal/dto"
	"alignai-be/internal/entity"
	"alignai-be/internal/pkg/logger"
	"alignai-be/internal/pkg/serverutils"
	"alignai-be/pkg/events"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeader builds the header a parsed multipart form would hand over.
func fileHeader(t *testing.T, name, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["file"][0]
}

func newUserFixture(t *testing.T) (IUserService, *memDB, *recordingQueue, *recordingPublisher, string, *entity.User) {
	t.Helper()
	db := newMemDB()
	user := &entity.User{Id: uuid.New(), Email: "ada@example.com", Username: "ada", IsActive: true}
	db.users[user.Id] = user

	dir := t.TempDir()
	queue := &recordingQueue{}
	pub := &recordingPublisher{}
	svc := NewUserService(db, queue, pub, ResumeStorage{Dir: dir, MaxFileSize: 1024}, logger.NewNopLogger())
	return svc, db, queue, pub, dir, user
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _, _, _, user := newUserFixture(t)

	resp, err := svc.UpdateProfile(context.Background(), user.Id, &dto.UpdateProfileRequest{FullName: "  Ada Lovelace "})
	require.NoError(t, err)
	require.NotNil(t, resp.FullName)
	assert.Equal(t, "Ada Lovelace", *resp.FullName)

	_, err = svc.GetProfile(context.Background(), uuid.New())
	assert.Equal(t, fiber.StatusNotFound, serverutils.StatusOf(err))
}

func TestUploadResumeAccepted(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		content     []byte
		ext         string
	}{
		{"pdf", "application/pdf", []byte("%PDF-1.4\n%fake resume"), ".pdf"},
		{"plain text", "text/plain; charset=utf-8", []byte("Ada Lovelace\nAnalyst"), ".txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, db, queue, pub, dir, user := newUserFixture(t)

			resp, err := svc.UploadResume(context.Background(), user.Id, fileHeader(t, "cv"+tt.ext, tt.contentType, tt.content))
			require.NoError(t, err)
			assert.Equal(t, "pending", resp.Status)
			assert.Equal(t, filepath.Join(dir, "resumes"), filepath.Dir(resp.FilePath))
			assert.True(t, strings.HasPrefix(filepath.Base(resp.FilePath), "resume_"+user.Id.String()+"_"))
			assert.Equal(t, tt.ext, filepath.Ext(resp.FilePath))

			saved, err := os.ReadFile(resp.FilePath)
			require.NoError(t, err)
			assert.Equal(t, tt.content, saved)

			stored := db.resumes[resp.ResumeId]
			require.NotNil(t, stored)
			assert.JSONEq(t, "[]", string(stored.Skills))

			require.Len(t, queue.payloads, 1)
			var msg dto.ResumeUploadedMessage
			require.NoError(t, json.Unmarshal(queue.payloads[0], &msg))
			assert.Equal(t, resp.ResumeId, msg.ResumeId)
			assert.Equal(t, []string{events.TypeResumeUploaded}, pub.types())
		})
	}
}

func TestUploadResumeSameSecondKeepsBothFiles(t *testing.T) {
	svc, db, _, _, _, user := newUserFixture(t)

	first, err := svc.UploadResume(context.Background(), user.Id, fileHeader(t, "cv.txt", "text/plain", []byte("first draft")))
	require.NoError(t, err)
	second, err := svc.UploadResume(context.Background(), user.Id, fileHeader(t, "cv.txt", "text/plain", []byte("second draft")))
	require.NoError(t, err)

	assert.NotEqual(t, first.FilePath, second.FilePath)
	assert.Contains(t, filepath.Base(first.FilePath), first.ResumeId.String())
	assert.Equal(t, first.FilePath, db.resumes[first.ResumeId].FilePath)

	for path, want := range map[string]string{first.FilePath: "first draft", second.FilePath: "second draft"} {
		saved, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, want, string(saved))
	}
}

func TestUploadResumeRejected(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		content     []byte
	}{
		{"unsupported type", "image/png", []byte("\x89PNG\r\n\x1a\n")},
		{"pdf header mismatch", "application/pdf", []byte("just some text")},
		{"text that is really a pdf", "text/plain", []byte("%PDF-1.4\n")},
		{"too large", "text/plain", bytes.Repeat([]byte("a"), 2048)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, db, queue, _, dir, user := newUserFixture(t)

			_, err := svc.UploadResume(context.Background(), user.Id, fileHeader(t, "cv", tt.contentType, tt.content))
			require.Error(t, err)
			assert.Equal(t, fiber.StatusBadRequest, serverutils.StatusOf(err))
			assert.Empty(t, db.resumes)
			assert.Empty(t, queue.payloads)
			_, statErr := os.Stat(filepath.Join(dir, "resumes"))
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestGetResumesOwnerScoped(t *testing.T) {
	svc, db, _, _, _, user := newUserFixture(t)
	db.resumes[uuid.New()] = &entity.Resume{Id: uuid.New(), UserId: uuid.New(), Status: entity.ResumeStatusPending}

	_, err := svc.UploadResume(context.Background(), user.Id, fileHeader(t, "cv.txt", "text/plain", []byte("hello")))
	require.NoError(t, err)

	resp, err := svc.GetResumes(context.Background(), user.Id)
	require.NoError(t, err)
	assert.Len(t, resp.Resumes, 1)
}
