package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/elisiyan/internal/config"
	"github.com/elisiyan/internal/constants"
)

func TestCaptchaServiceDisabledProvider(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{Provider: "turnstile", Scenes: config.CaptchaSceneConfig{Login: true}})
	if svc.Provider() != constants.CaptchaProviderNone {
		t.Fatalf("unknown provider should fall back to none, got %s", svc.Provider())
	}
	if svc.IsSceneEnabled(constants.CaptchaSceneLogin) {
		t.Fatalf("scene must be off without image provider")
	}
	if err := svc.Verify(constants.CaptchaSceneLogin, CaptchaVerifyPayload{}); err != nil {
		t.Fatalf("disabled captcha should pass, got %v", err)
	}
	if _, err := svc.GenerateImageChallenge(); !errors.Is(err, ErrCaptchaConfigInvalid) {
		t.Fatalf("generate without provider want ErrCaptchaConfigInvalid got %v", err)
	}
}

func TestCaptchaServiceImageFlow(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{
		Provider: "Image",
		Scenes:   config.CaptchaSceneConfig{Login: true},
	})
	if !svc.IsSceneEnabled("LOGIN") || svc.IsSceneEnabled(constants.CaptchaSceneRegister) {
		t.Fatalf("scene switches not honoured")
	}
	if err := svc.Verify(constants.CaptchaSceneRegister, CaptchaVerifyPayload{}); err != nil {
		t.Fatalf("register scene is off and should pass, got %v", err)
	}
	if err := svc.Verify(constants.CaptchaSceneLogin, CaptchaVerifyPayload{CaptchaID: "x"}); !errors.Is(err, ErrCaptchaRequired) {
		t.Fatalf("missing code want ErrCaptchaRequired got %v", err)
	}

	challenge, err := svc.GenerateImageChallenge()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if challenge.CaptchaID == "" || challenge.ImageBase64 == "" {
		t.Fatalf("unexpected challenge %+v", challenge)
	}
	answer := svc.imageStore().Get(challenge.CaptchaID, false)
	if answer == "" {
		t.Fatalf("answer should be stored")
	}

	if err := svc.Verify(constants.CaptchaSceneLogin, CaptchaVerifyPayload{CaptchaID: challenge.CaptchaID, CaptchaCode: strings.ToUpper(answer)}); err != nil {
		t.Fatalf("upper-case answer should pass, got %v", err)
	}
	if err := svc.Verify(constants.CaptchaSceneLogin, CaptchaVerifyPayload{CaptchaID: challenge.CaptchaID, CaptchaCode: answer}); !errors.Is(err, ErrCaptchaInvalid) {
		t.Fatalf("answer is single use, want ErrCaptchaInvalid got %v", err)
	}
}
