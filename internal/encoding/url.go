package encoding

import "github.com/multiformats/go-multibase"

const (
	agentURLPrefix = "hcak"
	holohostDomain = ".holohost.net"
)

// HolohostName returns the hcak host label of key: "hcak" followed by the
// base32 multibase form of key || location.
func HolohostName(key []byte) (string, error) {
	body, err := withLocation(key)
	if err != nil {
		return "", err
	}
	mb, err := multibase.Encode(multibase.Base32, body)
	if err != nil {
		return "", err
	}
	return agentURLPrefix + mb, nil
}

// HolohostURL returns the https URL a host with key is reachable at.
func HolohostURL(key []byte) (string, error) {
	name, err := HolohostName(key)
	if err != nil {
		return "", err
	}
	return "https://" + name + holohostDomain, nil
}
