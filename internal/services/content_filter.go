package services

import (
	"regexp"
)

// Profile text is public, so members may not use it to share contact details
// before an interest is accepted.
const (
	ReasonURL         = "url_not_allowed"
	ReasonContactInfo = "contact_info_not_allowed"
	ReasonSpam        = "spam_detected"
)

// maxRepeat is the longest run of one character accepted before text is
// treated as spam.
const maxRepeat = 5

type ContentFilter struct {
	urlPattern   *regexp.Regexp
	emailPattern *regexp.Regexp
	phonePattern *regexp.Regexp
}

func NewContentFilter() *ContentFilter {
	return &ContentFilter{
		urlPattern:   regexp.MustCompile(`(?i)(https?://\S+|www\.\S+\.\S+)`),
		emailPattern: regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		// Pakistani mobiles (03xx-xxxxxxx, +92 3xx xxxxxxx) and generic 10+ digit runs.
		phonePattern: regexp.MustCompile(`(\+?92[\s-]?|0)3\d{2}[\s-]?\d{7}|\d[\d\s-]{9,}\d`),
	}
}

// Check returns ok=false and a reason code when text is not allowed.
func (f *ContentFilter) Check(text string) (bool, string) {
	if text == "" {
		return true, ""
	}
	if f.urlPattern.MatchString(text) {
		return false, ReasonURL
	}
	if f.emailPattern.MatchString(text) || f.phonePattern.MatchString(text) {
		return false, ReasonContactInfo
	}
	if longestRun(text) > maxRepeat {
		return false, ReasonSpam
	}
	return true, ""
}

func longestRun(text string) int {
	longest, run := 0, 0
	var prev rune
	for i, r := range text {
		if i > 0 && r == prev {
			run++
		} else {
			run = 1
		}
		prev = r
		if run > longest {
			longest = run
		}
	}
	return longest
}

func (f *ContentFilter) RejectionMessage(reason string) string {
	messages := map[string]string{
		ReasonURL:         "Links are not allowed in your profile.",
		ReasonContactInfo: "Please do not share phone numbers or email addresses in your profile.",
		ReasonSpam:        "Your text appears to be spam.",
	}
	if msg, ok := messages[reason]; ok {
		return msg
	}
	return "Your text does not meet our profile guidelines."
}
