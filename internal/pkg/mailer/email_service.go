package mailer

import (
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendWelcome(toEmail, username string) error
	SendInterviewReport(toEmail string, report InterviewReport) error
}

type InterviewReport struct {
	Title    string
	Category string
	Feedback string
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
	clientURL   string
}

// NewEmailService returns a no-op sender when host is empty.
func NewEmailService(host string, port int, username, password, senderEmail, senderName, clientURL string) IEmailService {
	if host == "" {
		return noopEmailService{}
	}
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
		senderName:  senderName,
		clientURL:   strings.TrimRight(clientURL, "/"),
	}
}

func (s *emailService) message(to, subject, body string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	return m
}

func (s *emailService) SendWelcome(toEmail, username string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Welcome to AlignAI, %s!</h2>
			<p>Pick a template and start your first mock interview:</p>
			<a href="%s/interviews" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Browse interviews</a>
		</div>
	`, html.EscapeString(username), s.clientURL)

	if err := s.dialer.DialAndSend(s.message(toEmail, "Welcome to AlignAI", body)); err != nil {
		return fmt.Errorf("send welcome to %s: %w", toEmail, err)
	}
	return nil
}

func (s *emailService) SendInterviewReport(toEmail string, report InterviewReport) error {
	feedback := strings.ReplaceAll(html.EscapeString(report.Feedback), "\n", "<br>")
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Your %s interview report</h2>
			<p><strong>Category:</strong> %s</p>
			<div style="border-left: 4px solid #4CAF50; padding-left: 12px;">%s</div>
			<p><a href="%s/history">See all your interviews</a></p>
		</div>
	`, html.EscapeString(report.Title), html.EscapeString(report.Category), feedback, s.clientURL)

	subject := fmt.Sprintf("Interview report: %s", report.Title)
	if err := s.dialer.DialAndSend(s.message(toEmail, subject, body)); err != nil {
		return fmt.Errorf("send report to %s: %w", toEmail, err)
	}
	return nil
}

type noopEmailService struct{}

func (noopEmailService) SendWelcome(string, string) error                    { return nil }
func (noopEmailService) SendInterviewReport(string, InterviewReport) error { return nil }
