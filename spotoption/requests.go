package spotoption

import (
	"fmt"
	"net/url"
	"strconv"
)

// Protocol fields present on every request.
const (
	FieldModule  = "MODULE"
	FieldCommand = "COMMAND"
	FieldFilter  = "FILTER"

	moduleCountry  = "Country"
	moduleCampaign = "Campaign"
	moduleCustomer = "Customer"

	commandView     = "view"
	commandAdd      = "add"
	commandValidate = "validate"

	birthdayLayout = "2006-01-02"
)

// CountriesFields returns the request fields of Country/view.
func CountriesFields() url.Values {
	return operation(moduleCountry, commandView)
}

// Fields returns the request fields of Campaign/view.
func (r *GetCampaignsRequest) Fields() url.Values {
	campaignType := CampaignTypeCPA
	if r != nil && r.Type != "" {
		campaignType = r.Type
	}

	v := operation(moduleCampaign, commandView)
	setGroup(v, FieldFilter, map[string]string{"type": campaignType})
	return v
}

// Fields returns the request fields of Customer/validate. A nil request
// yields empty credentials.
func (r *ValidateCustomerRequest) Fields() url.Values {
	if r == nil {
		r = &ValidateCustomerRequest{}
	}
	v := operation(moduleCustomer, commandValidate)
	setGroup(v, FieldFilter, map[string]string{
		"email":    r.Email,
		"password": r.Password,
	})
	return v
}

// Fields returns the request fields of Customer/add. A nil request is
// encoded as the zero request.
func (r *AddCustomerRequest) Fields() url.Values {
	if r == nil {
		r = &AddCustomerRequest{}
	}
	v := operation(moduleCustomer, commandAdd)
	v.Set("FirstName", r.FirstName)
	v.Set("LastName", r.LastName)
	v.Set("email", r.Email)
	v.Set("Phone", r.Phone)
	v.Set("Country", strconv.FormatInt(r.Country, 10))
	v.Set("password", r.Password)
	v.Set("currency", r.Currency)
	v.Set("campaignId", strconv.FormatInt(r.CampaignID, 10))
	v.Set("regIP", r.RegistrationIPAddress)

	setOptional(v, "gender", r.Gender)
	setOptional(v, "subCampaign", r.SubCampaign)
	setOptional(v, "subCampaignId", r.SubCampaignID)
	setOptional(v, "referLink", r.ReferLink)
	setOptional(v, "a_aid", r.AAID)
	setOptional(v, "a_bid", r.ABID)
	setOptional(v, "a_cid", r.ACID)
	if r.Birthday != nil {
		v.Set("birthday", r.Birthday.Format(birthdayLayout))
	}

	setOptional(v, "regulateStatus", r.RegulateStatus)
	setOptional(v, "regulateType", r.RegulateType)
	return v
}

func operation(module, command string) url.Values {
	v := url.Values{}
	v.Set(FieldModule, module)
	v.Set(FieldCommand, command)
	return v
}

// setGroup flattens a nested group the way the vendor expects it: GROUP[key]=value.
func setGroup(v url.Values, group string, fields map[string]string) {
	for k, val := range fields {
		v.Set(fmt.Sprintf("%s[%s]", group, k), val)
	}
}

func setOptional(v url.Values, key string, val *string) {
	if val != nil {
		v.Set(key, *val)
	}
}
