package youdao

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"unicode/utf8"
)

// SignType is the signature scheme version sent with every request.
const SignType = "v3"

// Truncate reduces input to the form the vendor signs: inputs of up to 20
// characters are kept, longer ones become first 10 + length + last 10.
// Lengths count characters (runes), not bytes.
func Truncate(input string) string {
	size := utf8.RuneCountInString(input)
	if size <= 20 {
		return input
	}
	runes := []rune(input)
	return string(runes[:10]) + strconv.Itoa(size) + string(runes[size-10:])
}

// Sign returns the hex SHA-256 of appKey + Truncate(input) + salt + curtime + appSecret.
func Sign(input, appKey, salt, curtime, appSecret string) string {
	sum := sha256.Sum256([]byte(appKey + Truncate(input) + salt + curtime + appSecret))
	return hex.EncodeToString(sum[:])
}
