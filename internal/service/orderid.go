package service

import (
	"crypto/rand"
	"fmt"
)

const (
	orderIDPrefix   = "OD-"
	orderIDLength   = 8
	orderIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// newOrderID generates a human-readable order id like OD-7K2M9QAZ.
func newOrderID() (string, error) {
	buf := make([]byte, orderIDLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate order id: %w", err)
	}

	for i, b := range buf {
		buf[i] = orderIDAlphabet[int(b)%len(orderIDAlphabet)]
	}

	return orderIDPrefix + string(buf), nil
}
