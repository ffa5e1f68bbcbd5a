package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// GeneratePaymentReference returns a globally unique charge reference,
// e.g. PAY-1714139065123-9F2C01AB.
func GeneratePaymentReference() string {
	buf := make([]byte, 4)
	rand.Read(buf)
	randomString := strings.ToUpper(hex.EncodeToString(buf))
	timestamp := time.Now().UnixMilli()
	return fmt.Sprintf("PAY-%d-%s", timestamp, randomString)
}

func FullName(firstName, lastName string) string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", firstName, lastName))
}
