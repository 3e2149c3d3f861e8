// Package notifications defines the capability interface the catalogue uses
// to report outcomes, plus two channel-styled implementations. Real delivery
// transport is out of scope; both implementations format human-readable text
// to the process log. Content differs per channel, the contract is identical.
package notifications

import (
	"log"
	"strings"
)

// Notifier receives outcome reports from the catalogue. Calls are
// fire-and-forget: implementations must not fail and return nothing.
type Notifier interface {
	NotifySuccess(message string)
	NotifyFailure(message string)
	NotifyDuplicate(message string)
}

// ForChannel selects an implementation by config value ("email" or "sms").
// Unknown values fall back to email.
func ForChannel(channel string) Notifier {
	if strings.EqualFold(channel, "sms") {
		return &SMSNotifier{}
	}
	return &EmailNotifier{}
}

// EmailNotifier formats long-form, email-style notifications.
type EmailNotifier struct{}

func (n *EmailNotifier) NotifySuccess(message string) {
	log.Printf("[INFO] email notification:\nHello,\nThe following data has been successfully processed: %s.\nIf you have any queries or feedback, please contact our support team at support@library.com.", message)
}

func (n *EmailNotifier) NotifyFailure(message string) {
	log.Printf("[WARN] email notification:\nWe encountered an issue processing the following data: '%s'.\nPlease review the input data.\nFor more help, visit our FAQ at library.com/faq.", message)
}

func (n *EmailNotifier) NotifyDuplicate(message string) {
	log.Printf("[WARN] email notification:\nAlert: The following data already exists: %s.\nPlease review the details.", message)
}

// SMSNotifier formats terse, SMS-style notifications.
type SMSNotifier struct{}

func (n *SMSNotifier) NotifySuccess(message string) {
	log.Printf("[INFO] sms notification: Success! '%s'. Thank you!", message)
}

func (n *SMSNotifier) NotifyFailure(message string) {
	log.Printf("[WARN] sms notification: Error: '%s'. Please email support@library.com for assistance.", message)
}

func (n *SMSNotifier) NotifyDuplicate(message string) {
	log.Printf("[WARN] sms notification: Duplicate entry: '%s'. Please check your input.", message)
}
