package service

import (
	"bytes"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/elisiyan/internal/config"

	"github.com/google/uuid"
)

// outgoingMail 一封待投递的纯文本邮件
type outgoingMail struct {
	From    string
	To      string
	Raw     []byte
	Subject string
}

// mailTransport 邮件投递通道
type mailTransport interface {
	Deliver(mail outgoingMail) error
}

// EmailService 账号相关通知邮件
type EmailService struct {
	cfg       *config.EmailConfig
	transport mailTransport
}

// NewEmailService 创建邮件服务，默认经 SMTP 投递
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	svc := &EmailService{cfg: cfg}
	if cfg != nil {
		svc.transport = &smtpTransport{cfg: cfg}
	}
	return svc
}

// Enabled 邮件服务是否可用
func (s *EmailService) Enabled() bool {
	return s != nil && s.cfg != nil && s.cfg.Enabled
}

// SendActivationEmail 发送账号激活邮件
func (s *EmailService) SendActivationEmail(toEmail, username, link string) error {
	subject, body := buildActivationContent(username, link)
	return s.send(toEmail, subject, body)
}

// SendWelcomeEmail 发送激活成功欢迎邮件
func (s *EmailService) SendWelcomeEmail(toEmail, username string) error {
	subject, body := buildWelcomeContent(username)
	return s.send(toEmail, subject, body)
}

func (s *EmailService) send(toEmail, subject, body string) error {
	if !s.Enabled() {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" || s.transport == nil {
		return ErrEmailServiceNotConfigured
	}
	recipient, err := mail.ParseAddress(strings.TrimSpace(toEmail))
	if err != nil {
		return ErrInvalidEmail
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	raw := buildEmailMessage(from, recipient.Address, subject, body)
	err = s.transport.Deliver(outgoingMail{
		From:    s.cfg.From,
		To:      recipient.Address,
		Raw:     []byte(raw),
		Subject: subject,
	})
	return normalizeEmailSendError(err)
}

func greetingName(username string) string {
	if name := strings.TrimSpace(username); name != "" {
		return name
	}
	return "there"
}

func buildActivationContent(username, link string) (string, string) {
	body := fmt.Sprintf("Hi %s,\n\nPlease click the link below to confirm your email and activate your account:\n\n%s\n\nIf you did not sign up, you can ignore this email.",
		greetingName(username), strings.TrimSpace(link))
	return "Activate your account", body
}

func buildWelcomeContent(username string) (string, string) {
	body := fmt.Sprintf("Hi %s,\n\nYour account is now active. You can sign in and start building your wishlist.", greetingName(username))
	return "Welcome aboard", body
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	return (&mail.Address{Name: name, Address: from}).String()
}

// buildEmailMessage 组装 RFC 5322 报文，Message-ID 取发件域名
func buildEmailMessage(from, to, subject, body string) string {
	domain := "localhost"
	if parsed, err := mail.ParseAddress(from); err == nil {
		if at := strings.LastIndex(parsed.Address, "@"); at >= 0 && at < len(parsed.Address)-1 {
			domain = parsed.Address[at+1:]
		}
	}
	headers := []struct{ key, value string }{
		{"From", from},
		{"To", to},
		{"Subject", mime.QEncoding.Encode("UTF-8", subject)},
		{"Date", time.Now().Format(time.RFC1123Z)},
		{"Message-ID", fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/plain; charset=UTF-8"},
	}
	var buf bytes.Buffer
	for _, h := range headers {
		buf.WriteString(h.key + ": " + h.value + "\r\n")
	}
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

// smtpTransport 按 use_ssl（隐式 TLS）/ use_tls（STARTTLS）/ 明文三种方式投递
type smtpTransport struct {
	cfg *config.EmailConfig
}

func (t *smtpTransport) Deliver(m outgoingMail) error {
	addr := net.JoinHostPort(t.cfg.Host, strconv.Itoa(t.cfg.Port))
	tlsConfig := &tls.Config{ServerName: t.cfg.Host}

	var client *smtp.Client
	if t.cfg.UseSSL {
		conn, err := tls.Dial("tcp", addr, tlsConfig)
		if err != nil {
			return err
		}
		if client, err = smtp.NewClient(conn, t.cfg.Host); err != nil {
			conn.Close()
			return err
		}
	} else {
		var err error
		if client, err = smtp.Dial(addr); err != nil {
			return err
		}
		if t.cfg.UseTLS {
			if err := client.StartTLS(tlsConfig); err != nil {
				client.Close()
				return err
			}
		}
	}
	defer client.Close()

	if t.cfg.Username != "" || t.cfg.Password != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(smtp.PlainAuth("", t.cfg.Username, t.cfg.Password, t.cfg.Host)); err != nil {
				return err
			}
		}
	}
	if err := client.Mail(m.From); err != nil {
		return err
	}
	if err := client.Rcpt(m.To); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(m.Raw); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func normalizeEmailSendError(err error) error {
	if err == nil {
		return nil
	}
	if isEmailRecipientRejected(err) {
		return fmt.Errorf("%w: %v", ErrEmailRecipientRejected, err)
	}
	return err
}

var recipientRejectedHints = []string{
	"no such recipient",
	"no such user",
	"recipient not found",
	"recipient address rejected",
	"invalid recipient",
	"user unknown",
	"unknown user",
	"mailbox unavailable",
}

// isEmailRecipientRejected 优先按 SMTP 响应码判断（550/551/553），其次匹配常见文案
func isEmailRecipientRejected(err error) bool {
	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		switch protoErr.Code {
		case 550, 551, 553:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	for _, hint := range recipientRejectedHints {
		if strings.Contains(message, hint) {
			return true
		}
	}
	if strings.Contains(message, "550") {
		for _, hint := range []string{"recipient", "user", "mailbox", "rcpt"} {
			if strings.Contains(message, hint) {
				return true
			}
		}
	}
	return false
}
