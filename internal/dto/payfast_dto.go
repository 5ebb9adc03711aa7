package dto

// PaymentResult reports each step of a package purchase callback.
// Partial success is a normal outcome.
type PaymentResult struct {
	OK                  bool   `json:"ok"`
	AuditStored         bool   `json:"auditStored"`
	PaymentStored       bool   `json:"paymentStored"`
	SubscriptionUpdated bool   `json:"subscriptionUpdated"`
	ViewsReset          bool   `json:"viewsReset"`
	AddOnApplied        bool   `json:"addOnApplied,omitempty"`
	ViewsAdded          int    `json:"viewsAdded"`
	PackageType         string `json:"packageType"`
	UserID              string `json:"userId,omitempty"`
	Error               string `json:"error,omitempty"`
}

type RegistrationPaymentResult struct {
	OK             bool   `json:"ok"`
	AuditStored    bool   `json:"auditStored"`
	RegistrationID string `json:"registrationId"`
	PaymentStatus  string `json:"paymentStatus"`
}

type SyncError struct {
	UserID string `json:"userId"`
	Error  string `json:"error"`
}

type SyncResult struct {
	Processed int         `json:"processed"`
	Updated   int         `json:"updated"`
	Errors    []SyncError `json:"errors"`
}
