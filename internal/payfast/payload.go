package payfast

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Payload is a gateway callback as received: field names differ between the
// server-to-server notification, the browser redirect and our own pages, so
// values are looked up through alias lists.
type Payload map[string]any

var (
	userIDKeys         = []string{"user_id", "userId", "custom_field_1"}
	amountKeys         = []string{"amount", "transaction_amount", "txnamt", "TXNAMT", "amount_gross"}
	transactionIDKeys  = []string{"transaction_id", "transactionId", "pf_payment_id"}
	addOnKeys          = []string{"addon", "add_on", "addOn", "custom_field_2"}
	basketIDKeys       = []string{"basket_id", "BASKET_ID", "basketId"}
	registrationIDKeys = []string{"registration_id", "registrationId", "basket_id", "BASKET_ID"}
)

// String returns the first non-empty value among keys, stringified.
func (p Payload) String(keys ...string) string {
	for _, k := range keys {
		v, ok := p[k]
		if !ok || v == nil {
			continue
		}
		var s string
		switch x := v.(type) {
		case string:
			s = x
		case json.Number:
			s = x.String()
		case float64:
			s = strconv.FormatFloat(x, 'f', -1, 64)
		default:
			s = fmt.Sprint(x)
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

// Value returns the first present raw value among keys.
func (p Payload) Value(keys ...string) any {
	for _, k := range keys {
		if v, ok := p[k]; ok && v != nil {
			if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
				continue
			}
			return v
		}
	}
	return nil
}

func (p Payload) UserID() string         { return p.String(userIDKeys...) }
func (p Payload) Amount() any            { return p.Value(amountKeys...) }
func (p Payload) TransactionID() string  { return p.String(transactionIDKeys...) }
func (p Payload) AddOn() string          { return p.String(addOnKeys...) }
func (p Payload) BasketID() string       { return p.String(basketIDKeys...) }
func (p Payload) RegistrationID() string { return p.String(registrationIDKeys...) }
func (p Payload) ErrCode() string        { return p.String("err_code", "errCode") }
func (p Payload) ValidationHash() string { return p.String("validation_hash", "validationHash") }

// JSON serializes the payload for the audit table.
func (p Payload) JSON() []byte {
	b, err := json.Marshal(p)
	if err != nil {
		return []byte("{}")
	}
	return b
}

// ValidationHash computes the hash PayFast attaches to its notifications:
// sha256 of "basket_id|secured_key|merchant_id|err_code", hex encoded.
func ValidationHash(basketID, securedKey, merchantID, errCode string) string {
	sum := sha256.Sum256([]byte(basketID + "|" + securedKey + "|" + merchantID + "|" + errCode))
	return hex.EncodeToString(sum[:])
}

// CheckHash reports whether the payload carries a validation hash that
// matches. ok is false when there is nothing to check.
func CheckHash(p Payload, securedKey, merchantID string) (valid bool, ok bool) {
	got := p.ValidationHash()
	if got == "" || securedKey == "" {
		return false, false
	}
	want := ValidationHash(p.BasketID(), securedKey, merchantID, p.ErrCode())
	return subtle.ConstantTimeCompare([]byte(strings.ToLower(got)), []byte(want)) == 1, true
}
