package spotoption

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnit_NewValidateCustomerResponse(t *testing.T) {

	type testcase struct {
		name            string
		data            map[string]interface{}
		expectedErrCode string
		expectedID      int64
		expectedAuthKey *string
		expectedBalance *float64
	}

	testcases := []testcase{
		{
			name:            "id and auth key",
			data:            map[string]interface{}{"Customer": map[string]interface{}{"id": "42", "authKey": "abc"}},
			expectedID:      42,
			expectedAuthKey: makeStringPtr("abc"),
		},
		{
			name:       "numeric id",
			data:       map[string]interface{}{"Customer": map[string]interface{}{"id": 42}},
			expectedID: 42,
		},
		{
			name:       "float id",
			data:       map[string]interface{}{"Customer": map[string]interface{}{"id": float64(42)}},
			expectedID: 42,
		},
		{
			name:            "balance",
			data:            map[string]interface{}{"Customer": map[string]interface{}{"id": "7", "accountBalance": "150.50"}},
			expectedID:      7,
			expectedBalance: makeFloat64Ptr(150.5),
		},
		{
			name:            "auth key kept verbatim",
			data:            map[string]interface{}{"Customer": map[string]interface{}{"id": "1", "authKey": " 0a B "}},
			expectedID:      1,
			expectedAuthKey: makeStringPtr(" 0a B "),
		},
		{
			name:            "missing id",
			data:            map[string]interface{}{"Customer": map[string]interface{}{"authKey": "abc"}},
			expectedErrCode: ErrorMissingField,
		},
		{
			name:            "missing customer",
			data:            map[string]interface{}{"operation_status": "failed"},
			expectedErrCode: ErrorMissingField,
		},
		{
			name:            "non numeric id",
			data:            map[string]interface{}{"Customer": map[string]interface{}{"id": "notanumber"}},
			expectedErrCode: ErrorTypeMismatch,
		},
		{
			name:            "non numeric balance",
			data:            map[string]interface{}{"Customer": map[string]interface{}{"id": "42", "accountBalance": "lots"}},
			expectedErrCode: ErrorTypeMismatch,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			ret, err := NewValidateCustomerResponse(NewPayload(tc.data))
			if tc.expectedErrCode != "" {
				require.NotNil(t, err)
				require.Nil(t, ret)
				require.Equal(t, tc.expectedErrCode, err.Code())
				return
			}
			require.Nil(t, err)
			require.Equal(t, tc.expectedID, ret.ID())

			authKey, ok := ret.AuthKey()
			require.Equal(t, tc.expectedAuthKey != nil, ok)
			if tc.expectedAuthKey != nil {
				require.Equal(t, *tc.expectedAuthKey, authKey)
			}

			balance, ok := ret.AccountBalance()
			require.Equal(t, tc.expectedBalance != nil, ok)
			if tc.expectedBalance != nil {
				require.Equal(t, *tc.expectedBalance, balance)
			}
		})
	}
}

func TestUnit_NewAddCustomerResponse(t *testing.T) {
	p, err := ParsePayload([]byte(`<status>
	<connection_status>successful</connection_status>
	<operation_status>successful</operation_status>
	<Customer><id>1001</id><currency>EUR</currency><campaignId>12</campaignId></Customer>
</status>`))
	require.Nil(t, err)

	ret, err := NewAddCustomerResponse(p)
	require.Nil(t, err)
	require.EqualValues(t, 1001, ret.ID())
	require.True(t, ret.Succeeded())

	currency, ok := ret.Currency()
	require.True(t, ok)
	require.Equal(t, "EUR", currency)

	campaignID, ok := ret.CampaignID()
	require.True(t, ok)
	require.EqualValues(t, 12, campaignID)

	_, ok = ret.SubCampaignID()
	require.False(t, ok)

	_, err = NewAddCustomerResponse(NewPayload(map[string]interface{}{
		"Customer": map[string]interface{}{"id": "5", "campaignId": "abc"},
	}))
	require.NotNil(t, err)
	require.Equal(t, ErrorTypeMismatch, err.Code())
}

func TestUnit_NewGetCountriesResponse(t *testing.T) {
	p, err := ParsePayload([]byte(`<status>
	<operation_status>successful</operation_status>
	<Country>
		<data_1><id>2</id><name>Albania</name><iso>AL</iso><prefix>355</prefix></data_1>
		<data_0><id>1</id><name>Afghanistan</name><iso>AF</iso></data_0>
	</Country>
</status>`))
	require.Nil(t, err)

	ret, err := NewGetCountriesResponse(p)
	require.Nil(t, err)

	countries := ret.Countries()
	require.Len(t, countries, 2)
	require.EqualValues(t, 1, countries[0].ID)
	require.Equal(t, "Afghanistan", countries[0].Name)
	require.Equal(t, "AF", *countries[0].ISO)
	require.Nil(t, countries[0].Prefix)
	require.EqualValues(t, 2, countries[1].ID)
	require.Equal(t, "355", *countries[1].Prefix)

	*countries[1].Prefix = "0"
	require.Equal(t, "355", *ret.Countries()[1].Prefix)

	empty, err := NewGetCountriesResponse(NewPayload(map[string]interface{}{"Country": ""}))
	require.Nil(t, err)
	require.NotNil(t, empty.Countries())
	require.Empty(t, empty.Countries())

	_, err = NewGetCountriesResponse(NewPayload(map[string]interface{}{"Country": map[string]interface{}{
		"data_0": map[string]interface{}{"id": "1"},
	}}))
	require.NotNil(t, err)
	require.Equal(t, ErrorMissingField, err.Code())
}

func TestUnit_NewGetCampaignsResponse(t *testing.T) {
	p, err := ParsePayload([]byte(`{"status":{"operation_status":"successful","Campaign":[
		{"id":"10","name":"Spring","type":"CPA","currency":"USD"},
		{"id":11,"name":"Summer"}
	]}}`))
	require.Nil(t, err)

	ret, err := NewGetCampaignsResponse(p)
	require.Nil(t, err)

	campaigns := ret.Campaigns()
	require.Len(t, campaigns, 2)
	require.EqualValues(t, 10, campaigns[0].ID)
	require.Equal(t, CampaignTypeCPA, *campaigns[0].Type)
	require.Equal(t, "USD", *campaigns[0].Currency)
	require.EqualValues(t, 11, campaigns[1].ID)
	require.Nil(t, campaigns[1].Type)

	_, err = NewGetCampaignsResponse(NewPayload(map[string]interface{}{"Campaign": []interface{}{
		map[string]interface{}{"id": "x", "name": "Broken"},
	}}))
	require.NotNil(t, err)
	require.Equal(t, ErrorTypeMismatch, err.Code())
}

func TestUnit_EnvelopeStatus(t *testing.T) {
	p, err := ParsePayload([]byte(`<status>
	<connection_status>successful</connection_status>
	<operation_status>failed</operation_status>
	<errors><error>noResults</error><error>invalidFilter</error></errors>
</status>`))
	require.Nil(t, err)

	ret, err := NewGetCampaignsResponse(p)
	require.Nil(t, err)
	require.False(t, ret.Succeeded())
	require.Empty(t, ret.Campaigns())

	status, ok := ret.ConnectionStatus()
	require.True(t, ok)
	require.Equal(t, StatusSuccessful, status)

	status, ok = ret.OperationStatus()
	require.True(t, ok)
	require.Equal(t, "failed", status)
	require.Equal(t, []string{"noResults", "invalidFilter"}, ret.VendorErrors())

	env := ret.Envelope()
	require.Equal(t, ret.VendorErrors(), env.VendorErrors())
	require.False(t, env.Succeeded())

	errs := ret.VendorErrors()
	errs[0] = "changed"
	require.Equal(t, "noResults", ret.VendorErrors()[0])
	require.Equal(t, "noResults", env.VendorErrors()[0])
}

func TestUnit_ResponseJSON(t *testing.T) {
	ret, err := NewValidateCustomerResponse(NewPayload(map[string]interface{}{
		"operation_status": "successful",
		"Customer":         map[string]interface{}{"id": "42"},
	}))
	require.Nil(t, err)

	by, jErr := json.Marshal(ret)
	require.NoError(t, jErr)
	require.JSONEq(t, `{"operationStatus":"successful","id":42,"authKey":null,"accountBalance":null}`, string(by))
}

func makeFloat64Ptr(v float64) *float64 {
	return &v
}
