package twilio

import "encoding/json"

// messageResponse covers both the success and the error payload of the
// Messages endpoint; Twilio uses the same shape with different fields set.
type messageResponse struct {
	SID     string `json:"sid"`
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func parseMessageResponse(body []byte) (*messageResponse, error) {
	var result messageResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
