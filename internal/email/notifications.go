package email

import (
	"fmt"
	"log"
)

const grantSubject = "Your account has been unlocked"

const grantBodyTemplate = `Hi,

Thanks for your purchase! Pro access is now active for %s.

Log in with this email address and your leads dashboard will be unlocked.

If you did not make this purchase, reply to this email and we'll sort it out.
`

// NotifyEntitlementGranted sends the unlock confirmation for a freshly
// granted entitlement. Fire and forget: a failed send is logged, never
// surfaced, so notification acknowledgment does not wait on SMTP.
func (s *Service) NotifyEntitlementGranted(customerEmail string) {
	if !s.enabled {
		return
	}

	go func() {
		body := fmt.Sprintf(grantBodyTemplate, customerEmail)
		if err := s.SendEmail([]string{customerEmail}, grantSubject, body); err != nil {
			log.Printf("Failed to send grant confirmation to %s: %v", customerEmail, err)
		} else {
			log.Printf("Grant confirmation sent to %s", customerEmail)
		}
	}()
}
