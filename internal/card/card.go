package card

// Data carries the payment instrument for a single charge attempt. It is
// ephemeral and never persisted. Either the full card fields or Token must
// be present, not both.
type Data struct {
	HolderName string `json:"holderName"`
	Number     string `json:"number"`
	Expiration string `json:"expiration"` // MM/YYYY
	CVV        string `json:"cvv"`
	Token      string `json:"token,omitempty"`
}

func (d Data) HasToken() bool {
	return d.Token != ""
}
