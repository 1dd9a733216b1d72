package notification

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dealflow/pkg/logger"

	"github.com/pobyzaarif/goshortcute"
)

type MailjetConfig struct {
	BaseURL           string
	BasicAuthUsername string
	BasicAuthPassword string
	SenderEmail       string
	SenderName        string
}

type MailjetRepository struct {
	cfg MailjetConfig
}

func NewMailjetRepository(cfg MailjetConfig) *MailjetRepository {
	return &MailjetRepository{
		cfg: cfg,
	}
}

type payloadSendEmail struct {
	Messages []mailjetMessage `json:"Messages"`
}

type mailjetParty struct {
	Email string `json:"Email"`
	Name  string `json:"Name"`
}

type mailjetMessage struct {
	From     mailjetParty   `json:"From"`
	To       []mailjetParty `json:"To"`
	Subject  string         `json:"Subject"`
	TextPart string         `json:"TextPart"`
	HTMLPart string         `json:"HTMLPart"`
}

func (r *MailjetRepository) SendEmail(toName, toEmail, subject, message string) (err error) {
	url := r.cfg.BaseURL + "/v3.1/send"

	payload := payloadSendEmail{
		Messages: []mailjetMessage{{
			From: mailjetParty{
				Email: r.cfg.SenderEmail,
				Name:  r.cfg.SenderName,
			},
			To:       []mailjetParty{{Email: toEmail, Name: toName}},
			Subject:  subject,
			TextPart: message,
			HTMLPart: message,
		}},
	}

	payloadByte, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal json payload: %w", err)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(string(payloadByte)))
	if err != nil {
		return err
	}

	buildBasicAuth := goshortcute.StringtoBase64Encode(r.cfg.BasicAuthUsername + ":" + r.cfg.BasicAuthPassword)
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Authorization", "Basic "+buildBasicAuth)

	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode <= 299 {
		return nil
	}

	bodyBytes, _ := io.ReadAll(res.Body)
	logger.Error("Mailjet returned non-2xx", "status", res.StatusCode, "body", string(bodyBytes))

	return fmt.Errorf("mailer service return negative response %v", res.StatusCode)
}
