// Package seo builds the schema.org JSON-LD documents embedded by the
// public pages.
package seo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/packages"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/services"
)

var ErrUnknownPage = errors.New("unknown page")

// Pages lists the pages that have structured data.
var Pages = []string{"home", "pricing", "events", "contact"}

// Setting keys read from site_settings.
const (
	KeyEventName  = "event_name"
	KeyEventDate  = "event_date"
	KeyEventVenue = "event_venue"
	KeyEventCity  = "event_city"
	KeyPhone      = "contact_phone"
	KeyEmail      = "contact_email"
)

type Document map[string]any

type Builder struct {
	SiteName string
	SiteURL  string
	Currency string
}

// Page returns the JSON-LD for page. settings may be nil.
func (b Builder) Page(page string, settings map[string]string) (Document, error) {
	switch strings.ToLower(page) {
	case "home":
		return b.home(settings), nil
	case "pricing":
		return b.pricing(), nil
	case "events":
		return b.events(settings), nil
	case "contact":
		return b.contact(settings), nil
	}
	return nil, ErrUnknownPage
}

func (b Builder) url(path string) string {
	return strings.TrimRight(b.SiteURL, "/") + path
}

func (b Builder) organization(settings map[string]string) Document {
	org := Document{
		"@type": "Organization",
		"name":  b.SiteName,
		"url":   b.url("/"),
	}
	if phone := settings[KeyPhone]; phone != "" {
		org["contactPoint"] = Document{
			"@type":       "ContactPoint",
			"telephone":   phone,
			"contactType": "customer service",
			"areaServed":  "PK",
		}
	}
	return org
}

func (b Builder) home(settings map[string]string) Document {
	return Document{
		"@context": "https://schema.org",
		"@graph": []Document{
			b.organization(settings),
			{
				"@type": "WebSite",
				"name":  b.SiteName,
				"url":   b.url("/"),
				"potentialAction": Document{
					"@type":       "SearchAction",
					"target":      b.url("/search?q={search_term_string}"),
					"query-input": "required name=search_term_string",
				},
			},
		},
	}
}

func (b Builder) pricing() Document {
	var offers []Document
	for _, tier := range packages.Catalog() {
		for _, price := range tier.Prices {
			offers = append(offers, Document{
				"@type":         "Offer",
				"name":          tier.Name,
				"price":         price.StringFixed(2),
				"priceCurrency": b.Currency,
				"description":   viewsLabel(tier.Views),
				"url":           b.url("/pricing"),
			})
		}
	}
	return Document{
		"@context":    "https://schema.org",
		"@type":       "Product",
		"name":        b.SiteName + " membership",
		"description": "Profile view packages",
		"offers":      offers,
	}
}

func viewsLabel(views int) string {
	return fmt.Sprintf("%d profile views", views)
}

func (b Builder) events(settings map[string]string) Document {
	name := settings[KeyEventName]
	if name == "" {
		name = b.SiteName + " matchmaking event"
	}
	doc := Document{
		"@context":            "https://schema.org",
		"@type":               "Event",
		"name":                name,
		"eventStatus":         "https://schema.org/EventScheduled",
		"eventAttendanceMode": "https://schema.org/OfflineEventAttendanceMode",
		"organizer":           b.organization(settings),
		"url":                 b.url("/events"),
		"offers": []Document{
			{"@type": "Offer", "name": "Adult", "price": services.AdultPrice.StringFixed(2), "priceCurrency": b.Currency},
			{"@type": "Offer", "name": "Child", "price": services.ChildPrice.StringFixed(2), "priceCurrency": b.Currency},
		},
	}
	if date := settings[KeyEventDate]; date != "" {
		doc["startDate"] = date
	}
	if venue := settings[KeyEventVenue]; venue != "" {
		doc["location"] = Document{
			"@type": "Place",
			"name":  venue,
			"address": Document{
				"@type":           "PostalAddress",
				"addressLocality": settings[KeyEventCity],
				"addressCountry":  "PK",
			},
		}
	}
	return doc
}

func (b Builder) contact(settings map[string]string) Document {
	doc := Document{
		"@context": "https://schema.org",
		"@type":    "ContactPage",
		"name":     "Contact " + b.SiteName,
		"url":      b.url("/contact"),
		"about":    b.organization(settings),
	}
	if email := settings[KeyEmail]; email != "" {
		doc["email"] = email
	}
	return doc
}
