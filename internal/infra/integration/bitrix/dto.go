package bitrix

type CreateLeadInput struct {
	Name     string
	Phone    string
	Comments string // free-form origin tag shown to the sales team
}

type CreateLeadResult struct {
	LeadID int
	// Raw is the verbatim response body; it is persisted as crm_response.
	Raw []byte
}

type createLeadRequest struct {
	Fields leadFields `json:"fields"`
}

type leadFields struct {
	Title    string       `json:"TITLE"`
	Name     string       `json:"NAME"`
	Phone    []phoneField `json:"PHONE"`
	SourceID string       `json:"SOURCE_ID"`
	Comments string       `json:"COMMENTS,omitempty"`
}

type phoneField struct {
	Value     string `json:"VALUE"`
	ValueType string `json:"VALUE_TYPE"`
}

type createLeadResponse struct {
	Result           int    `json:"result"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}
