package spotoption

import "time"

type (
	// AddCustomerRequest holds the fields of Customer/add. Pointer fields are
	// optional and left out of the request when nil.
	AddCustomerRequest struct {
		FirstName             string
		LastName              string
		Gender                *string
		Email                 string
		Phone                 string
		Country               int64
		Password              string
		Currency              string
		CampaignID            int64
		SubCampaign           *string
		SubCampaignID         *string
		Birthday              *time.Time
		ReferLink             *string
		AAID                  *string
		ABID                  *string
		ACID                  *string
		RegistrationIPAddress string
		RegulateStatus        *string
		RegulateType          *string
	}
	ValidateCustomerRequest struct {
		Email    string
		Password string
	}
	// GetCampaignsRequest filters Campaign/view by campaign type. An empty Type means CampaignTypeCPA.
	GetCampaignsRequest struct {
		Type string
	}
)
