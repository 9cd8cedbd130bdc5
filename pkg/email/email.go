package email

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sangkips/salespoint-api/internal/domain/entity"
	"github.com/sangkips/salespoint-api/pkg/utils"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// Enabled reports whether SMTP is configured. Receipt delivery is skipped
// silently when it is not.
func (s *EmailService) Enabled() bool {
	return s.config.SMTPHost != "" && s.config.FromEmail != ""
}

// SendReceiptEmail sends a digital copy of a receipt to a member customer,
// with the PDF attached.
func (s *EmailService) SendReceiptEmail(toEmail string, receipt *entity.Receipt, pdf []byte) error {
	htmlContent, err := s.renderReceiptEmail(receipt)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Your Receipt %s - %s", receipt.InvoiceNo, receipt.Header.StoreName)
	message := s.buildHTMLEmailWithAttachment(toEmail, subject, htmlContent, receipt.InvoiceNo+".pdf", pdf)

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmailWithAttachment builds a multipart message with an HTML body
// and a single base64-encoded PDF attachment.
func (s *EmailService) buildHTMLEmailWithAttachment(to, subject, htmlBody, filename string, attachment []byte) []byte {
	const boundary = "salespoint-receipt-boundary"

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	buf.WriteString(htmlBody)
	buf.WriteString("\r\n")

	if len(attachment) > 0 {
		fmt.Fprintf(&buf, "--%s\r\n", boundary)
		buf.WriteString("Content-Type: application/pdf\r\n")
		buf.WriteString("Content-Transfer-Encoding: base64\r\n")
		fmt.Fprintf(&buf, "Content-Disposition: attachment; filename=%q\r\n\r\n", filename)
		buf.WriteString(encodeBase64Wrapped(attachment))
		buf.WriteString("\r\n")
	}

	fmt.Fprintf(&buf, "--%s--\r\n", boundary)
	return buf.Bytes()
}

// encodeBase64Wrapped base64-encodes data with 76-character lines per RFC 2045.
func encodeBase64Wrapped(data []byte) string {
	encoded := base64.StdEncoding.EncodeToString(data)

	var buf bytes.Buffer
	for len(encoded) > 76 {
		buf.WriteString(encoded[:76])
		buf.WriteString("\r\n")
		encoded = encoded[76:]
	}
	buf.WriteString(encoded)
	return buf.String()
}

// renderReceiptEmail renders the receipt email template
func (s *EmailService) renderReceiptEmail(receipt *entity.Receipt) (string, error) {
	tmpl, err := template.New("receipt").Funcs(template.FuncMap{
		"idr": utils.FormatIDR,
	}).Parse(receiptTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, receipt); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// receiptTemplate is the HTML template for receipt emails
const receiptTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.InvoiceNo}}</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 40px 0;">
                <table role="presentation" style="max-width: 480px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);">
                    <tr>
                        <td style="background: linear-gradient(135deg, #0ea5e9 0%, #2563eb 100%); padding: 30px; text-align: center;">
                            <h1 style="color: #ffffff; margin: 0; font-size: 24px; font-weight: 600;">{{.Header.StoreName}}</h1>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 30px;">
                            <p style="color: #4a5568; font-size: 14px; margin: 0 0 6px 0;">Invoice <strong>{{.InvoiceNo}}</strong></p>
                            <p style="color: #718096; font-size: 13px; margin: 0 0 20px 0;">{{.Date}}</p>

                            <table role="presentation" style="width: 100%; border-collapse: collapse; font-size: 14px; color: #4a5568;">
                                {{range .Items}}
                                <tr>
                                    <td style="padding: 4px 0;">{{.Name}} x{{.Quantity}}</td>
                                    <td style="padding: 4px 0; text-align: right;">{{idr .Total}}</td>
                                </tr>
                                {{end}}
                                <tr><td colspan="2" style="border-top: 1px solid #e2e8f0; padding-top: 8px;"></td></tr>
                                <tr>
                                    <td style="padding: 2px 0;">Subtotal</td>
                                    <td style="padding: 2px 0; text-align: right;">{{idr .Subtotal}}</td>
                                </tr>
                                {{if gt .Discount 0}}
                                <tr>
                                    <td style="padding: 2px 0;">Discount</td>
                                    <td style="padding: 2px 0; text-align: right;">-{{idr .Discount}}</td>
                                </tr>
                                {{end}}
                                <tr>
                                    <td style="padding: 2px 0;">Tax</td>
                                    <td style="padding: 2px 0; text-align: right;">{{idr .Tax}}</td>
                                </tr>
                                <tr style="font-weight: 600; color: #1a1a2e;">
                                    <td style="padding: 6px 0;">Total</td>
                                    <td style="padding: 6px 0; text-align: right;">{{idr .Total}}</td>
                                </tr>
                                {{if gt .PointsEarned 0}}
                                <tr style="color: #16a34a;">
                                    <td style="padding: 2px 0;">Points earned</td>
                                    <td style="padding: 2px 0; text-align: right;">+{{.PointsEarned}}</td>
                                </tr>
                                {{end}}
                            </table>
                        </td>
                    </tr>
                    <tr>
                        <td style="background-color: #f8fafc; padding: 20px; text-align: center; border-top: 1px solid #e2e8f0;">
                            <p style="color: #a0aec0; font-size: 13px; margin: 0;">
                                Thank you for shopping with {{.Header.StoreName}}.
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`
