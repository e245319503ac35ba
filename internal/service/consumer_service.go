package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"alignai-be/internal/dto"
	"alignai-be/internal/entity"
	"alignai-be/internal/pkg/logger"
	"alignai-be/internal/repository/specification"
	"alignai-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
)

// ResumeTopic is the in-process queue resume uploads are processed from.
const ResumeTopic = "resume_uploaded"

const maxExtractedText = 64 * 1024

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewConsumerService(subscriber message.Subscriber, topicName string, uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ResumeUploadedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("Consumer", "Dropping unreadable message", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	resume, err := uow.ResumeRepository().FindOne(ctx, specification.ByID{ID: payload.ResumeId})
	if err != nil {
		cs.logger.Error("Consumer", "Failed to load resume", map[string]interface{}{"resume_id": payload.ResumeId, "error": err.Error()})
		msg.Nack()
		return
	}
	if resume == nil || resume.Status == entity.ResumeStatusProcessed {
		msg.Ack()
		return
	}

	content, err := extractContent(resume)
	if err != nil {
		cs.logger.Warn("Consumer", "Resume text extraction failed", map[string]interface{}{"resume_id": resume.Id, "error": err.Error()})
	}

	if err := uow.ResumeRepository().MarkProcessed(ctx, resume.Id, content); err != nil {
		cs.logger.Error("Consumer", "Failed to mark resume processed", map[string]interface{}{"resume_id": resume.Id, "error": err.Error()})
		msg.Nack()
		return
	}

	cs.logger.Info("Consumer", "Resume processed", map[string]interface{}{"resume_id": resume.Id, "user_id": resume.UserId})
	msg.Ack()
}

// extractContent copies plain text verbatim. Binary formats get a summary line;
// structured fields are left as empty lists.
func extractContent(resume *entity.Resume) (*string, error) {
	summary := fmt.Sprintf("Resume uploaded on %s", resume.CreatedAt.UTC().Format(time.DateOnly))
	if resume.ContentType != "text/plain" {
		return &summary, nil
	}

	f, err := os.Open(resume.FilePath)
	if err != nil {
		return &summary, err
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, maxExtractedText))
	if err != nil {
		return &summary, err
	}
	text := strings.TrimSpace(strings.ToValidUTF8(string(raw), ""))
	if text == "" {
		return &summary, nil
	}
	return &text, nil
}
