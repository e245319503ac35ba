package openai

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"alignai-be/pkg/voice"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type Backend struct {
	client openai.Client
	model  string
}

var _ voice.Backend = &Backend{}

func NewBackend(apiKey, model, baseURL string) *Backend {
	opts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if model == "" {
		model = string(openai.SpeechModelTTS1)
	}
	return &Backend{client: openai.NewClient(opts...), model: model}
}

func (b *Backend) Render(ctx context.Context, text string, voiceName string, w io.Writer) error {
	resp, err := b.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(b.model),
		Input:          text,
		Voice:          openai.AudioSpeechNewParamsVoice(voiceName),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("speech request failed: status %d", resp.StatusCode)
	}
	_, err = io.Copy(w, resp.Body)
	return err
}
