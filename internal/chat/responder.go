// Package chat implements the scripted support responder: keyword-matched
// canned replies with a randomized typing delay. Cosmetic, not domain logic.
package chat

import (
	"math/rand"
	"strings"
	"time"
)

const BotName = "Dr. Support Bot"

// keywordReplies are checked in order; the first keyword contained in the
// message wins.
var keywordReplies = []struct {
	keyword string
	reply   string
}{
	{"appointment", `To book an appointment, please go to the "Book Appointment" section and select your preferred doctor and time.`},
	{"payment", `For payment inquiries, please visit the "Payment Capture" section. You can also generate receipts for previous payments.`},
	{"hours", "Our clinic is open Monday through Friday from 8:00 AM to 6:00 PM, and Saturdays from 9:00 AM to 2:00 PM."},
	{"emergency", "If this is a medical emergency, please call 911 immediately. For urgent care, call our emergency line at 555-EMERGENCY."},
	{"contact", "You can reach us at 555-CLINIC or email us at support@medcare.com. Our address is 123 Healthcare Ave, Medical District."},
	{"insurance", "We accept most major insurance plans. Please contact our billing department at 555-BILLING for specific coverage questions."},
	{"prescription", "For prescription refills, please contact your doctor directly or use our patient portal."},
	{"covid", "We follow all CDC guidelines for COVID-19 safety. Masks are required, and we offer telehealth appointments when appropriate."},
}

var fallbackReplies = []string{
	"Thank you for your message. I understand your concern. Could you please provide more specific details so I can assist you better?",
	"I appreciate you reaching out. Let me help you with that. Could you clarify what specific information you need?",
	"Thank you for contacting MedCare Clinic support. I'm here to help! Could you please provide more context about your inquiry?",
	"I understand your question. To provide you with the most accurate assistance, could you share a bit more detail?",
	"Thank you for your message. I want to make sure I give you the right information. Could you please elaborate on your question?",
}

type Responder struct {
	minDelay time.Duration
	maxDelay time.Duration
}

// NewResponder builds a responder whose typing delay is drawn uniformly from
// [minDelay, maxDelay]. Zero delays make replies immediate, which tests use.
func NewResponder(minDelay, maxDelay time.Duration) *Responder {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &Responder{
		minDelay: minDelay,
		maxDelay: maxDelay,
	}
}

// Reply picks the scripted answer for a user message.
func (r *Responder) Reply(message string) string {
	msg := strings.ToLower(message)

	for _, kr := range keywordReplies {
		if strings.Contains(msg, kr.keyword) {
			return kr.reply
		}
	}

	switch {
	case strings.Contains(msg, "thank"):
		return "You're very welcome! Is there anything else I can help you with today?"
	case strings.Contains(msg, "bye"):
		return "Thank you for chatting with us! Have a great day and take care of your health!"
	case strings.Contains(msg, "hello"), strings.Contains(msg, "hi"):
		return "Hello! How can I assist you today? I'm here to help with any questions about appointments, payments, or general inquiries."
	}

	return fallbackReplies[rand.Intn(len(fallbackReplies))]
}

// Delay returns the simulated typing delay for the next reply.
func (r *Responder) Delay() time.Duration {
	span := r.maxDelay - r.minDelay
	if span <= 0 {
		return r.minDelay
	}
	return r.minDelay + time.Duration(rand.Int63n(int64(span)+1))
}
