package domain

// Setting is a single application setting with its JSON encoded value
type Setting struct {
	Key       string
	UpdatedAt int64
	Value     []byte
}
