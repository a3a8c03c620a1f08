package paymethod

import (
	"fmt"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/coachdesk/core"
)

// Providers known to the settings screen. Any other provider is accepted.
const (
	ProviderStripe   = "stripe"
	ProviderRazorpay = "razorpay"
	ProviderPaypal   = "paypal"
)

// Method is a coach's payment gateway configuration.
// The API key is only ever held sealed; it never leaves the package in JSON or log output.
type Method struct {
	ID         int         `db:"id" json:"id"`
	CoachID    int         `db:"coach_id" json:"coach_id"`
	MethodType null.String `db:"method_type" json:"method_type"`
	Provider   null.String `db:"provider" json:"provider"`
	SealedKey  string      `db:"api_key" json:"-"`
	KeyLast4   string      `db:"api_key_last4" json:"-"`
	IsActive   bool        `db:"is_active" json:"is_active"`
	CreatedAt  time.Time   `db:"created_at" json:"created_at"` // UTC
}

// MaskedKey returns a display-safe hint of the API key, e.g. "••••1234".
func (m Method) MaskedKey() string {
	if m.KeyLast4 == "" {
		return ""
	}
	return "••••" + m.KeyLast4
}

func (m Method) String() string {
	return fmt.Sprintf("payment method #%d (%s/%s, key %s, active=%t)",
		m.ID, m.MethodType.String, m.Provider.String, m.MaskedKey(), m.IsActive)
}

func (m Method) GoString() string { return m.String() }

// SavePaymentMethod creates (ID == 0) or fully replaces a payment method.
// On update, a blank APIKey keeps the stored key.
type SavePaymentMethod struct {
	ID         int    `json:"id" validate:"gte=0"`
	MethodType string `json:"method_type" validate:"required"`
	Provider   string `json:"provider" validate:"required"`
	APIKey     string `json:"api_key" validate:"required_without=ID"`
	IsActive   *bool  `json:"is_active"`
}

func (sp *SavePaymentMethod) Validate() error {
	sp.MethodType = core.CleanString(sp.MethodType, true /* lower */)
	sp.Provider = core.CleanString(sp.Provider, true /* lower */)
	sp.APIKey = core.CleanString(sp.APIKey)
	return core.ValidateStruct(sp)
}

func (sp SavePaymentMethod) isActive() bool {
	if sp.IsActive == nil {
		return true
	}
	return *sp.IsActive
}

func last4(key string) string {
	runes := []rune(key)
	if len(runes) <= 4 {
		return ""
	}
	return string(runes[len(runes)-4:])
}
