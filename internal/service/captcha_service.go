package service

import (
	"strings"
	"time"

	"github.com/cartloom/cartloom/internal/config"

	"github.com/mojocn/base64Captcha"
)

// CaptchaImageChallenge is one image challenge handed to the login form.
type CaptchaImageChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaService issues and checks image captchas for the admin login.
type CaptchaService struct {
	cfg   config.CaptchaConfig
	store base64Captcha.Store
}

// NewCaptchaService creates a captcha service.
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	maxStore := cfg.MaxStore
	if maxStore <= 0 {
		maxStore = base64Captcha.GCLimitNumber
	}
	expire := time.Duration(cfg.ExpireSeconds) * time.Second
	if expire <= 0 {
		expire = 5 * time.Minute
	}
	return &CaptchaService{
		cfg:   cfg,
		store: base64Captcha.NewMemoryStore(maxStore, expire),
	}
}

// Enabled reports whether the admin login requires a captcha.
func (s *CaptchaService) Enabled() bool {
	return s != nil && s.cfg.Enabled
}

// GenerateImageChallenge mints a digit captcha.
func (s *CaptchaService) GenerateImageChallenge() (*CaptchaImageChallenge, error) {
	length := s.cfg.Length
	if length <= 0 {
		length = 5
	}
	width := s.cfg.Width
	if width <= 0 {
		width = 240
	}
	height := s.cfg.Height
	if height <= 0 {
		height = 80
	}
	driver := base64Captcha.NewDriverDigit(height, width, length, 0.7, 80)
	captcha := base64Captcha.NewCaptcha(driver, s.store)
	id, b64, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaImageChallenge{
		CaptchaID:   id,
		ImageBase64: b64,
	}, nil
}

// Verify checks a captcha answer, consuming the challenge.
func (s *CaptchaService) Verify(captchaID, code string) error {
	if !s.Enabled() {
		return nil
	}
	captchaID = strings.TrimSpace(captchaID)
	code = strings.TrimSpace(code)
	if captchaID == "" || code == "" {
		return ErrCaptchaInvalid
	}
	if !s.store.Verify(captchaID, code, true) {
		return ErrCaptchaInvalid
	}
	return nil
}
