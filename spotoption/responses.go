package spotoption

import (
	"encoding/json"

	"github.com/healthimation/go-glitch/glitch"
)

// Envelope data areas and their fields.
const (
	dataCustomer = "Customer"
	dataCountry  = "Country"
	dataCampaign = "Campaign"

	fieldID             = "id"
	fieldName           = "name"
	fieldAuthKey        = "authKey"
	fieldAccountBalance = "accountBalance"
	fieldCurrency       = "currency"
	fieldCampaignID     = "campaignId"
	fieldSubCampaignID  = "subCampaignId"
	fieldISO            = "iso"
	fieldPrefix         = "prefix"
	fieldType           = "type"
)

// ValidateCustomerResponse is the result of Customer/validate.
type ValidateCustomerResponse struct {
	envelopeFields
	id      int64
	authKey *string
	balance *float64
}

// NewValidateCustomerResponse maps a Customer/validate payload.
func NewValidateCustomerResponse(p *Payload) (*ValidateCustomerResponse, glitch.DataError) {
	env, err := decodeEnvelope(p)
	if err != nil {
		return nil, err
	}
	id, err := p.RequiredInt(dataCustomer + "." + fieldID)
	if err != nil {
		return nil, err
	}
	authKey, err := p.OptionalString(dataCustomer + "." + fieldAuthKey)
	if err != nil {
		return nil, err
	}
	balance, err := p.OptionalFloat(dataCustomer + "." + fieldAccountBalance)
	if err != nil {
		return nil, err
	}
	return &ValidateCustomerResponse{envelopeFields: envelopeFields{env: env}, id: id, authKey: authKey, balance: balance}, nil
}

// ID returns the SpotOption customer ID.
func (r *ValidateCustomerResponse) ID() int64 {
	return r.id
}

// AuthKey returns the customer's auth key, used for auto-login links.
func (r *ValidateCustomerResponse) AuthKey() (string, bool) {
	return deref(r.authKey)
}

func (r *ValidateCustomerResponse) AccountBalance() (float64, bool) {
	return deref(r.balance)
}

func (r *ValidateCustomerResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		envelopeJSON
		ID             int64    `json:"id"`
		AuthKey        *string  `json:"authKey"`
		AccountBalance *float64 `json:"accountBalance"`
	}{r.env.toJSON(), r.id, r.authKey, r.balance})
}

// AddCustomerResponse is the result of Customer/add.
type AddCustomerResponse struct {
	envelopeFields
	id            int64
	currency      *string
	campaignID    *int64
	subCampaignID *int64
}

// NewAddCustomerResponse maps a Customer/add payload.
func NewAddCustomerResponse(p *Payload) (*AddCustomerResponse, glitch.DataError) {
	env, err := decodeEnvelope(p)
	if err != nil {
		return nil, err
	}
	r := &AddCustomerResponse{envelopeFields: envelopeFields{env: env}}
	if r.id, err = p.RequiredInt(dataCustomer + "." + fieldID); err != nil {
		return nil, err
	}
	if r.currency, err = p.OptionalString(dataCustomer + "." + fieldCurrency); err != nil {
		return nil, err
	}
	if r.campaignID, err = p.OptionalInt(dataCustomer + "." + fieldCampaignID); err != nil {
		return nil, err
	}
	if r.subCampaignID, err = p.OptionalInt(dataCustomer + "." + fieldSubCampaignID); err != nil {
		return nil, err
	}
	return r, nil
}

// ID returns the ID of the created customer.
func (r *AddCustomerResponse) ID() int64 {
	return r.id
}

func (r *AddCustomerResponse) Currency() (string, bool) {
	return deref(r.currency)
}

func (r *AddCustomerResponse) CampaignID() (int64, bool) {
	return deref(r.campaignID)
}

func (r *AddCustomerResponse) SubCampaignID() (int64, bool) {
	return deref(r.subCampaignID)
}

func (r *AddCustomerResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		envelopeJSON
		ID            int64   `json:"id"`
		Currency      *string `json:"currency"`
		CampaignID    *int64  `json:"campaignId"`
		SubCampaignID *int64  `json:"subCampaignId"`
	}{r.env.toJSON(), r.id, r.currency, r.campaignID, r.subCampaignID})
}

// GetCountriesResponse is the result of Country/view.
type GetCountriesResponse struct {
	envelopeFields
	countries []Country
}

// NewGetCountriesResponse maps a Country/view payload.
func NewGetCountriesResponse(p *Payload) (*GetCountriesResponse, glitch.DataError) {
	env, err := decodeEnvelope(p)
	if err != nil {
		return nil, err
	}
	items, err := p.Collection(dataCountry)
	if err != nil {
		return nil, err
	}

	countries := make([]Country, 0, len(items))
	for _, item := range items {
		var c Country
		if c.ID, err = item.RequiredInt(fieldID); err != nil {
			return nil, err
		}
		if c.Name, err = item.RequiredString(fieldName); err != nil {
			return nil, err
		}
		if c.ISO, err = item.OptionalString(fieldISO); err != nil {
			return nil, err
		}
		if c.Prefix, err = item.OptionalString(fieldPrefix); err != nil {
			return nil, err
		}
		countries = append(countries, c)
	}
	return &GetCountriesResponse{envelopeFields: envelopeFields{env: env}, countries: countries}, nil
}

// Countries returns a copy of the listed countries.
func (r *GetCountriesResponse) Countries() []Country {
	out := make([]Country, len(r.countries))
	for i, c := range r.countries {
		c.ISO = cloneString(c.ISO)
		c.Prefix = cloneString(c.Prefix)
		out[i] = c
	}
	return out
}

func (r *GetCountriesResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		envelopeJSON
		Countries []Country `json:"countries"`
	}{r.env.toJSON(), r.countries})
}

// GetCampaignsResponse is the result of Campaign/view.
type GetCampaignsResponse struct {
	envelopeFields
	campaigns []Campaign
}

// NewGetCampaignsResponse maps a Campaign/view payload.
func NewGetCampaignsResponse(p *Payload) (*GetCampaignsResponse, glitch.DataError) {
	env, err := decodeEnvelope(p)
	if err != nil {
		return nil, err
	}
	items, err := p.Collection(dataCampaign)
	if err != nil {
		return nil, err
	}

	campaigns := make([]Campaign, 0, len(items))
	for _, item := range items {
		var c Campaign
		if c.ID, err = item.RequiredInt(fieldID); err != nil {
			return nil, err
		}
		if c.Name, err = item.RequiredString(fieldName); err != nil {
			return nil, err
		}
		if c.Type, err = item.OptionalString(fieldType); err != nil {
			return nil, err
		}
		if c.Currency, err = item.OptionalString(fieldCurrency); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return &GetCampaignsResponse{envelopeFields: envelopeFields{env: env}, campaigns: campaigns}, nil
}

// Campaigns returns a copy of the listed campaigns.
func (r *GetCampaignsResponse) Campaigns() []Campaign {
	out := make([]Campaign, len(r.campaigns))
	for i, c := range r.campaigns {
		c.Type = cloneString(c.Type)
		c.Currency = cloneString(c.Currency)
		out[i] = c
	}
	return out
}

func (r *GetCampaignsResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		envelopeJSON
		Campaigns []Campaign `json:"campaigns"`
	}{r.env.toJSON(), r.campaigns})
}

type envelopeJSON struct {
	ConnectionStatus *string  `json:"connectionStatus,omitempty"`
	OperationStatus  *string  `json:"operationStatus,omitempty"`
	Errors           []string `json:"errors,omitempty"`
}

func (e Envelope) toJSON() envelopeJSON {
	return envelopeJSON{ConnectionStatus: e.connectionStatus, OperationStatus: e.operationStatus, Errors: e.errors}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
