package openrosa

import (
	"testing"
)

func TestParseResponseMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "plain message",
			body: `<OpenRosaResponse><message>Thanks for submitting</message></OpenRosaResponse>`,
			want: "Thanks for submitting",
		},
		{
			name: "message with nature attribute",
			body: `<OpenRosaResponse xmlns="http://openrosa.org/http/response"><message nature="submit_success">   √   </message></OpenRosaResponse>`,
			want: "√",
		},
		{
			name: "no message element",
			body: `<OpenRosaResponse></OpenRosaResponse>`,
			want: "",
		},
		{
			name: "empty body",
			body: "",
			want: "",
		},
		{
			name: "malformed xml",
			body: `<OpenRosaResponse><message>unterminated`,
			want: "",
		},
		{
			name: "not xml at all",
			body: `{"status": "ok"}`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseResponseMessage(tt.body)
			if got != tt.want {
				t.Errorf("ParseResponseMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
