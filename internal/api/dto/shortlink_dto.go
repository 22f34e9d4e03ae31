package dto

// CreateShortLinkRequest payload for new short links.
type CreateShortLinkRequest struct {
	ProvisioningCode string `json:"lpaCode"`
}

// ShortLinkResponse is returned after creating a short link.
type ShortLinkResponse struct {
	ShortID          string `json:"shortId"`
	ShortURL         string `json:"shortUrl"`
	ProvisioningCode string `json:"lpaCode"`
}

// ResolvedShortLinkResponse is returned when dereferencing a short id.
type ResolvedShortLinkResponse struct {
	ProvisioningCode string `json:"lpaCode"`
	ActivationURL    string `json:"activationUrl"`
}
