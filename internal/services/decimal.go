package services

import "encoding/json"

// Decimal accepts either a JSON number or a JSON string and preserves the
// exact textual form, so scale validation can distinguish 9.99 from 9.9.
type Decimal string

func (d *Decimal) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*d = Decimal(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*d = Decimal(s)
	return nil
}

func (d Decimal) String() string {
	return string(d)
}
