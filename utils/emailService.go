package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"lms/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Pathways Learning Centre <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1B3A4B; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B3A4B; line-height: 1.6; }
			.content h2 { color: #1B3A4B; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #5B8C5A; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>PATHWAYS LEARNING CENTRE</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Pathways Learning Centre. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendEnrollmentReceivedEmail confirms that an admissions request was
// recorded and is awaiting review.
func SendEnrollmentReceivedEmail(email, name, courseTitle, reference string) {
	subject := "Enrollment Request Received: " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We have received your enrollment request for <strong>%s</strong>.</p>
		<p>Your request is now pending review by our admissions team. You will hear from us once a decision has been made.</p>
		<div class="info-box">
			<strong>Reference:</strong> %s
		</div>
		<p>Please note that payment is handled separately by e-transfer after acceptance.</p>
	`, name, courseTitle, reference)

	SendEmail([]string{email}, subject, getEmailTemplate("Request Received", body))
}

// SendEnrollmentDecisionEmail notifies the applicant of an accept/reject
// decision.
func SendEnrollmentDecisionEmail(email, name, courseTitle string, accepted bool, notes string) {
	var subject, headline, body string

	if accepted {
		subject = "Enrollment Confirmed: " + courseTitle
		headline = "Welcome Aboard!"
		body = fmt.Sprintf(`
			<p>Dear %s,</p>
			<p>Your enrollment request for <strong>%s</strong> has been <strong>accepted</strong>.</p>
			<p>Your seat is reserved. Course details and start dates are available on your profile.</p>
		`, name, courseTitle)
	} else {
		subject = "Enrollment Update: " + courseTitle
		headline = "Request Not Approved"
		body = fmt.Sprintf(`
			<p>Dear %s,</p>
			<p>Unfortunately your enrollment request for <strong>%s</strong> was not approved at this time.</p>
			<p>You are welcome to apply for another program or reach out to our admissions team for guidance.</p>
		`, name, courseTitle)
	}

	if notes != "" {
		body += fmt.Sprintf(`<div class="info-box"><strong>Note from admissions:</strong> %s</div>`, notes)
	}

	SendEmail([]string{email}, subject, getEmailTemplate(headline, body))
}
