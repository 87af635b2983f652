package stylist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUserQuery(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    ParsedQuery
	}{
		{
			name:    "brand color category",
			message: "red crop top from Zara",
			want:    ParsedQuery{Brand: "Zara", Color: "red", Category: "top"},
		},
		{
			name:    "ampersand brand",
			message: "black jeans from H&M",
			want:    ParsedQuery{Brand: "H&M", Color: "black", Category: "jeans"},
		},
		{
			name:    "spelled out brand",
			message: "a hoodie from h and m please",
			want:    ParsedQuery{Brand: "H&M", Category: "hoodie"},
		},
		{
			name:    "longer synonym wins over substring",
			message: "white t shirt",
			want:    ParsedQuery{Color: "white", Category: "top"},
		},
		{
			name:    "color only",
			message: "something navy",
			want:    ParsedQuery{Color: "navy"},
		},
		{
			name:    "no match",
			message: "surprise me",
			want:    ParsedQuery{},
		},
		{
			name:    "word boundary respected",
			message: "scrapbook supplies", // contains "cap" and "rap" as substrings only
			want:    ParsedQuery{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseUserQuery(tt.message))
		})
	}
}

func TestJoinQueryTerms(t *testing.T) {
	assert.Equal(t, "Zara red top", JoinQueryTerms("Zara", "red", "top"))
	assert.Equal(t, "red top", JoinQueryTerms("", "red", "", "top"))
	assert.Equal(t, "", JoinQueryTerms("", "  ", ""))
}
