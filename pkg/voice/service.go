package voice

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"alignai-be/internal/pkg/logger"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

type Profile string

const (
	ProfileFemale Profile = "female"
	ProfileMale   Profile = "male"
)

// ParseProfile maps anything unrecognised to the female voice.
func ParseProfile(s string) Profile {
	if Profile(strings.ToLower(strings.TrimSpace(s))) == ProfileMale {
		return ProfileMale
	}
	return ProfileFemale
}

// DefaultVoice is the backend voice used for each profile.
func (p Profile) DefaultVoice() string {
	if p == ProfileMale {
		return "echo"
	}
	return "alloy"
}

// AvailableVoices lists every backend voice per profile.
func AvailableVoices() map[Profile][]string {
	return map[Profile][]string{
		ProfileFemale: {"alloy", "nova", "shimmer"},
		ProfileMale:   {"echo", "fable", "onyx"},
	}
}

// Backend renders speech. Implementations write the audio to w.
type Backend interface {
	Render(ctx context.Context, text string, voice string, w io.Writer) error
}

type Config struct {
	Provider     string // "openai", "none", or "mock" for local development (no files written)
	CacheDir     string
	PublicPrefix string // URL prefix the cache dir is served under
	MaxAge       time.Duration
}

// Service turns text into an audio reference. A nil reference means "no audio"
// and is never an error for the caller.
type Service struct {
	cfg     Config
	backend Backend
	cache   *cache.Cache
	logger  logger.ILogger

	// one render per fingerprint at a time
	inflight singleflight.Group
}

func NewService(cfg Config, backend Backend, log logger.ILogger) (*Service, error) {
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = 24 * time.Hour
	}
	if cfg.PublicPrefix == "" {
		cfg.PublicPrefix = "/api/voice"
	}
	cfg.PublicPrefix = strings.TrimRight(cfg.PublicPrefix, "/")
	if log == nil {
		log = logger.NewNopLogger()
	}
	if cfg.Provider == "openai" {
		if backend == nil {
			return nil, fmt.Errorf("openai voice provider needs a backend")
		}
		if err := os.MkdirAll(cfg.CacheDir, 0o755); err != nil {
			return nil, fmt.Errorf("create voice cache dir: %w", err)
		}
	}

	return &Service{
		cfg:     cfg,
		backend: backend,
		cache:   cache.New(cfg.MaxAge, 10*time.Minute),
		logger:  log,
	}, nil
}

func Fingerprint(text string, profile Profile) string {
	sum := sha256.Sum256([]byte(string(profile) + "\x00" + text))
	return hex.EncodeToString(sum[:])[:16]
}

func fileName(profile Profile, fp string) string {
	return fmt.Sprintf("audio_%s_%s.mp3", profile, fp)
}

func (s *Service) reference(name string) string {
	return s.cfg.PublicPrefix + "/" + name
}

func (s *Service) Synthesize(ctx context.Context, text string, profile Profile) *string {
	text = strings.TrimSpace(text)
	if text == "" || s.cfg.Provider == "none" || s.cfg.Provider == "" {
		return nil
	}

	fp := Fingerprint(text, profile)
	if ref, ok := s.cache.Get(fp); ok {
		r := ref.(string)
		return &r
	}

	name := fileName(profile, fp)
	if s.cfg.Provider == "mock" {
		ref := s.reference(name)
		s.cache.SetDefault(fp, ref)
		return &ref
	}

	v, _, _ := s.inflight.Do(fp, func() (interface{}, error) {
		if ref, ok := s.cache.Get(fp); ok {
			return ref.(string), nil
		}

		path := filepath.Join(s.cfg.CacheDir, name)
		if _, err := os.Stat(path); err != nil {
			if err := s.render(ctx, text, profile, path); err != nil {
				s.logger.Warn("Voice", "Speech synthesis failed, sending text only", map[string]interface{}{"error": err.Error(), "profile": profile})
				return "", nil
			}
		}

		ref := s.reference(name)
		s.cache.SetDefault(fp, ref)
		return ref, nil
	})

	ref := v.(string)
	if ref == "" {
		return nil
	}
	return &ref
}

func (s *Service) render(ctx context.Context, text string, profile Profile, path string) error {
	tmp, err := os.CreateTemp(s.cfg.CacheDir, "tts-*.part")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := s.backend.Render(ctx, text, profile.DefaultVoice(), tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Sweep deletes cached audio older than maxAge and forgets its fingerprint.
func (s *Service) Sweep(maxAge time.Duration) (int, error) {
	if s.cfg.CacheDir == "" {
		return 0, nil
	}
	entries, err := os.ReadDir(s.cfg.CacheDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), "audio_") || !strings.HasSuffix(e.Name(), ".mp3") {
			continue
		}
		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.cfg.CacheDir, e.Name())); err != nil {
			s.logger.Warn("Voice", "Failed to remove cached audio", map[string]interface{}{"file": e.Name(), "error": err.Error()})
			continue
		}
		s.cache.Delete(fingerprintOf(e.Name()))
		removed++
	}
	return removed, nil
}

// fingerprintOf pulls the fingerprint back out of audio_<profile>_<fp>.mp3.
func fingerprintOf(name string) string {
	base := strings.TrimSuffix(name, ".mp3")
	if i := strings.LastIndex(base, "_"); i >= 0 {
		return base[i+1:]
	}
	return base
}

// StartSweeper runs Sweep every interval until ctx is done.
func (s *Service) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := s.Sweep(s.cfg.MaxAge)
				if err != nil {
					s.logger.Error("Voice", "Audio cache sweep failed", map[string]interface{}{"error": err.Error()})
					continue
				}
				if n > 0 {
					s.logger.Info("Voice", "Audio cache swept", map[string]interface{}{"removed": n})
				}
			}
		}
	}()
}
