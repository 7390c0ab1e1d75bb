package domain

// Domain contains core models shared across packages.

// Statement is one fetched financial statement for a symbol. Data holds the
// remote payload exactly as decoded; its shape is owned by the upstream API.
type Statement struct {
	Symbol   string         `json:"symbol"`
	Function string         `json:"function"`
	Data     map[string]any `json:"data"`
}
