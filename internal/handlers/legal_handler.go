package handlers

import (
	"html"

	"github.com/gofiber/fiber/v2"
)

const legalStyle = `<meta name="viewport" content="width=device-width, initial-scale=1">
<style>body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:800px;margin:0 auto;padding:20px;color:#333}h1{color:#1a1a1a}h2{color:#444;margin-top:30px}</style>`

type LegalHandler struct {
	siteName     string
	contactEmail string
}

func NewLegalHandler(siteName, contactEmail string) *LegalHandler {
	return &LegalHandler{siteName: html.EscapeString(siteName), contactEmail: html.EscapeString(contactEmail)}
}

func (h *LegalHandler) contact() string {
	if h.contactEmail == "" {
		return "through the contact form on our website"
	}
	return "at " + h.contactEmail
}

func (h *LegalHandler) PrivacyPolicy(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Privacy Policy - ` + h.siteName + `</title>
` + legalStyle + `
</head><body>
<h1>Privacy Policy</h1>
<p>Last updated: October 2026</p>
<h2>Information We Collect</h2>
<p>We collect the details you provide in your profile (name, gender, date of birth, city, profession, education, marital status and photos), your contact details, and records of the profiles you view and the interests you send.</p>
<h2>How We Use Your Information</h2>
<p>Your profile is shown to other members to help find a suitable match. Contact details are never shown on your public profile; they are shared only when both families agree.</p>
<h2>Payments</h2>
<p>Payments are processed by PayFast. We store the amount, package and transaction reference, never your card details.</p>
<h2>Data Storage</h2>
<p>Your data and photos are stored on encrypted servers. We do not sell your personal information to third parties.</p>
<h2>Account Deletion</h2>
<p>You may ask us to delete your account. Your profile, photos, views and interests are removed; payment records are kept as required for accounting.</p>
<h2>Contact</h2>
<p>For questions about this policy, contact us ` + h.contact() + `.</p>
</body></html>`)
}

func (h *LegalHandler) TermsOfService(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Terms of Service - ` + h.siteName + `</title>
` + legalStyle + `
</head><body>
<h1>Terms of Service</h1>
<p>Last updated: October 2026</p>
<h2>Acceptance</h2>
<p>By using ` + h.siteName + `, you agree to these terms.</p>
<h2>Eligibility</h2>
<p>Members must be at least 18 years old and seeking marriage. Profiles may be created by the member or by a parent or guardian with their consent.</p>
<h2>Member Conduct</h2>
<p>Information in your profile must be truthful. Sharing phone numbers, email addresses or links in public profile text is not allowed. We may edit or remove profiles that break these rules.</p>
<h2>Packages</h2>
<p>Packages add a number of profile views to your account. Views do not expire, and buying a package starts a fresh viewing window. Payments are non-refundable once views have been credited.</p>
<h2>Events</h2>
<p>Event registrations are confirmed once payment is received. Fees cover the listed adults and children.</p>
<h2>Termination</h2>
<p>We may suspend or remove accounts that violate these terms.</p>
<h2>Contact</h2>
<p>For questions, contact us ` + h.contact() + `.</p>
</body></html>`)
}
