package models

// Example is a ready-made contract users can open in the playground
type Example struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Code        string `json:"code"`
}

// SampleContract is an entry of the saved contracts list
type SampleContract struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	LastModified string `json:"last_modified"` // YYYY-MM-DD
}
