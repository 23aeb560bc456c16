// Package openrosa parses the acknowledgement body the remote authority
// returns for an accepted submission.
package openrosa

import (
	"encoding/xml"
	"strings"
)

type Response struct {
	XMLName xml.Name `xml:"OpenRosaResponse"`
	Message *Message `xml:"message"`
}

type Message struct {
	Nature string `xml:"nature,attr"`
	Text   string `xml:",chardata"`
}

// ParseResponseMessage extracts the human-readable message from an
// acknowledgement body. Malformed or empty bodies yield an empty string; the
// submission is already accepted at this point, so parse failures are not
// errors.
func ParseResponseMessage(body string) string {
	if body == "" {
		return ""
	}

	var resp Response
	if err := xml.Unmarshal([]byte(body), &resp); err != nil {
		return ""
	}
	if resp.Message == nil {
		return ""
	}
	return strings.TrimSpace(resp.Message.Text)
}
