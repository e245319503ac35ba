package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"alignai-be/internal/dto"
	"alignai-be/internal/entity"
	"alignai-be/internal/pkg/logger"
	"alignai-be/internal/pkg/serverutils"
	"alignai-be/internal/repository/specification"
	"alignai-be/internal/repository/unitofwork"
	"alignai-be/pkg/events"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	UploadResume(ctx context.Context, userId uuid.UUID, file *multipart.FileHeader) (*dto.UploadResumeResponse, error)
	GetResumes(ctx context.Context, userId uuid.UUID) (*dto.ResumesResponse, error)
}

type ResumeStorage struct {
	Dir         string // resumes are written under Dir/resumes
	MaxFileSize int64
}

type userService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   EventPublisher
	storage          ResumeStorage
	logger           logger.ILogger
}

func NewUserService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher EventPublisher,
	storage ResumeStorage,
	log logger.ILogger,
) IUserService {
	return &userService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		storage:          storage,
		logger:           log,
	}
}

// resumeTypes maps accepted declared content types to the stored extension.
var resumeTypes = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"text/plain": ".txt",
}

// sniffedAs lists the detected MIME types each declared type may carry.
var sniffedAs = map[string][]string{
	"application/pdf":    {"application/pdf"},
	"application/msword": {"application/msword", "application/x-ole-storage"},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/zip",
	},
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, serverutils.Internal("Failed to load profile", err)
	}
	if user == nil {
		return nil, serverutils.NotFound("User not found")
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.UserRepository().UpdateFullName(ctx, userId, strings.TrimSpace(req.FullName)); err != nil {
		return nil, serverutils.Internal("Failed to update profile", err)
	}
	return s.GetProfile(ctx, userId)
}

// sniff checks the file's magic bytes against its declared type. Plain text has
// no signature, so it only has to not look like a known binary format.
func sniff(declared string, header []byte) error {
	kind, _ := filetype.Match(header)
	if declared == "text/plain" {
		if kind != filetype.Unknown {
			return fmt.Errorf("file content looks like %s", kind.MIME.Value)
		}
		return nil
	}
	for _, allowed := range sniffedAs[declared] {
		if kind.MIME.Value == allowed {
			return nil
		}
	}
	return fmt.Errorf("file content does not match %s", declared)
}

func (s *userService) UploadResume(ctx context.Context, userId uuid.UUID, file *multipart.FileHeader) (*dto.UploadResumeResponse, error) {
	if file == nil {
		return nil, serverutils.Validation("File is required")
	}
	if s.storage.MaxFileSize > 0 && file.Size > s.storage.MaxFileSize {
		return nil, serverutils.Validation(fmt.Sprintf("File too large. Maximum size is %d MB", s.storage.MaxFileSize/(1024*1024)))
	}

	declared := strings.TrimSpace(strings.Split(file.Header.Get("Content-Type"), ";")[0])
	ext, ok := resumeTypes[declared]
	if !ok {
		return nil, serverutils.Validation("Invalid file type. Please upload PDF, DOC, DOCX, or TXT files.")
	}

	src, err := file.Open()
	if err != nil {
		return nil, serverutils.Internal("Failed to read upload", err)
	}
	defer src.Close()

	header := make([]byte, 261)
	n, err := io.ReadFull(src, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, serverutils.Internal("Failed to read upload", err)
	}
	if err := sniff(declared, header[:n]); err != nil {
		return nil, serverutils.Validation("Invalid file type. Please upload PDF, DOC, DOCX, or TXT files.")
	}

	dir := filepath.Join(s.storage.Dir, "resumes")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, serverutils.Internal("Failed to prepare upload directory", err)
	}

	now := time.Now().UTC()
	resumeId := uuid.New()
	path := filepath.Join(dir, fmt.Sprintf("resume_%s_%s_%s%s", userId, now.Format("20060102_150405"), resumeId, ext))
	if err := writeUpload(path, header[:n], src); err != nil {
		return nil, serverutils.Internal("Failed to save upload", err)
	}

	resume := &entity.Resume{
		Id:          resumeId,
		UserId:      userId,
		FilePath:    path,
		ContentType: declared,
		Skills:      json.RawMessage("[]"),
		Experience:  json.RawMessage("[]"),
		Education:   json.RawMessage("[]"),
		Status:      entity.ResumeStatusPending,
		CreatedAt:   now,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ResumeRepository().Create(ctx, resume); err != nil {
		os.Remove(path)
		return nil, serverutils.Internal("Failed to save resume", err)
	}

	payload, _ := json.Marshal(dto.ResumeUploadedMessage{ResumeId: resume.Id, UserId: userId})
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		// row stays pending; processing can be retried
		s.logger.Error("UserService", "Failed to queue resume processing", map[string]interface{}{"resume_id": resume.Id, "error": err.Error()})
	}
	publishEvent(ctx, s.eventPublisher, s.logger, events.TypeResumeUploaded, map[string]interface{}{
		"resume_id": resume.Id,
		"user_id":   userId,
	})

	return &dto.UploadResumeResponse{
		ResumeId: resume.Id,
		FilePath: path,
		Status:   string(resume.Status),
	}, nil
}

func writeUpload(path string, head []byte, rest io.Reader) error {
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := dst.Write(head); err != nil {
		dst.Close()
		os.Remove(path)
		return err
	}
	if _, err := io.Copy(dst, rest); err != nil {
		dst.Close()
		os.Remove(path)
		return err
	}
	return dst.Close()
}

func (s *userService) GetResumes(ctx context.Context, userId uuid.UUID) (*dto.ResumesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	resumes, err := uow.ResumeRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, serverutils.Internal("Failed to load resumes", err)
	}

	resp := &dto.ResumesResponse{Resumes: make([]dto.ResumeResponse, 0, len(resumes))}
	for _, r := range resumes {
		resp.Resumes = append(resp.Resumes, dto.ResumeResponse{
			Id:         r.Id,
			FilePath:   r.FilePath,
			Status:     string(r.Status),
			Skills:     r.Skills,
			Experience: r.Experience,
			Education:  r.Education,
			CreatedAt:  r.CreatedAt,
		})
	}
	return resp, nil
}
