package servicenow

import "encoding/json"

// Reference is a ServiceNow record reference. The table API returns these
// as {"value": "...", "link": "..."} when set, and as an empty string when
// not, so unmarshalling tolerates both shapes.
type Reference struct {
	Value string `json:"value"`
}

func (r *Reference) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		r.Value = s
		return nil
	}
	var obj struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	r.Value = obj.Value
	return nil
}

// RequestItem is a catalog request item (sc_req_item) record. The table
// API renders scalars as strings, including booleans.
type RequestItem struct {
	SysID    string    `json:"sys_id"`
	Number   string    `json:"number"`
	Active   string    `json:"active"`
	ClosedAt string    `json:"closed_at"`
	ClosedBy Reference `json:"closed_by"`
}

// Closed reports whether the item is inactive.
func (ri *RequestItem) Closed() bool {
	return ri.Active == "false"
}

// LabelEntry is one label_entry record attached to a ticket.
type LabelEntry struct {
	Label Reference `json:"label"`
}

// UserRecord is a sys_user record.
type UserRecord struct {
	UserName string `json:"user_name"`
}

type requestItemEnvelope struct {
	Result []RequestItem `json:"result"`
}

type labelEntryEnvelope struct {
	Result []LabelEntry `json:"result"`
}

type userEnvelope struct {
	Result []UserRecord `json:"result"`
}
