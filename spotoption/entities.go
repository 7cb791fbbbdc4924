package spotoption

// Campaign types accepted by the Campaign view filter.
const (
	CampaignTypeCPA = "CPA"
	CampaignTypeCPL = "CPL"
)

type (
	// Country as listed by the Country module. ID is the value AddCustomerRequest.Country expects.
	Country struct {
		ID     int64   `json:"id"`
		Name   string  `json:"name"`
		ISO    *string `json:"iso,omitempty"`
		Prefix *string `json:"prefix,omitempty"`
	}

	// Campaign as listed by the Campaign module.
	Campaign struct {
		ID       int64   `json:"id"`
		Name     string  `json:"name"`
		Type     *string `json:"type,omitempty"`
		Currency *string `json:"currency,omitempty"`
	}
)
