package domain

import "time"

// ShortLinkTTL is the advisory lifetime of a short-link entry.
const ShortLinkTTL = 30 * 24 * time.Hour

// ShortLink is a temporary alias resolving to a provisioning code.
type ShortLink struct {
	ShortID          string
	ProvisioningCode string
	CreatedAt        time.Time
}
