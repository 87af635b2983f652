package utils

import (
	"crypto/rand"
	"fmt"
	"strings"
)

func AddToLogMessage(logMessagesBuilder *strings.Builder, strToAdd string) {

	if logMessagesBuilder.Len() == logMessagesBuilder.Cap() {

		logMessagesBuilder.Grow(len(strToAdd))
	}

	logMessagesBuilder.WriteString(strToAdd)
	logMessagesBuilder.WriteString(";")
	logMessagesBuilder.WriteString("\n")
}

// GenerateOTP returns a 6 digit numeric one-time password
func GenerateOTP() string {
	var sb strings.Builder
	b := make([]byte, 6)
	rand.Read(b)
	for i := 0; i < 6; i++ {
		sb.WriteString(fmt.Sprintf("%d", int(b[i])%10))
	}
	return sb.String()
}
