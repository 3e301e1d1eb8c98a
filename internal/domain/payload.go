package domain

// Payload is the JSON document shared by the remote source and the override store.
// Categories is a pointer so a document without the key can be told apart
// from one with an empty list.
type Payload struct {
	Categories *[]RawCategory `json:"categories"`
}

type RawCategory struct {
	Name      string        `json:"name"`
	Questions []RawQuestion `json:"questions"`
}

type RawQuestion struct {
	ID          string            `json:"id,omitempty"`
	Question    string            `json:"question"`
	Options     map[string]string `json:"options,omitempty"`
	Answer      string            `json:"answer"`
	Explanation string            `json:"explanation,omitempty"`
}

// NewPayload wraps categories into a document ready to marshal.
func NewPayload(categories []RawCategory) Payload {
	if categories == nil {
		categories = []RawCategory{}
	}
	return Payload{Categories: &categories}
}
