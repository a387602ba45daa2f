package cache

import "strings"

// KeySeparator joins the parts of a pair key.
const KeySeparator = "-"

// PairKey encodes two key parts as left + "-" + right.
//
// The right part must not contain the separator, which makes the encoding
// reversible by splitting on the last separator: distinct pairs always
// produce distinct keys. The left part may contain anything ValidateKey accepts.
func PairKey(left, right string) (string, error) {
	if left == "" || right == "" {
		return "", ErrInvalidKey
	}
	if strings.Contains(right, KeySeparator) {
		return "", ErrAmbiguousKey
	}
	key := left + KeySeparator + right
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return key, nil
}

// SplitPairKey reverses PairKey.
func SplitPairKey(key string) (left, right string, ok bool) {
	i := strings.LastIndex(key, KeySeparator)
	if i <= 0 || i == len(key)-len(KeySeparator) {
		return "", "", false
	}
	return key[:i], key[i+len(KeySeparator):], true
}
