package utils

import (
	"net"
	"strings"
)

const localhostLabel = "localhost"

// ExtractSubdomain derives the tenant label from a Host header value.
//
//	acme.localhost:3000 -> acme
//	acme.example.com    -> acme
//	example.com         -> ""
//	localhost           -> ""
//
// The returned label is lower-cased. IP literals never carry a subdomain.
func ExtractSubdomain(host string) string {
	host = strings.TrimSpace(host)
	if host == "" || strings.HasPrefix(host, "[") {
		return ""
	}

	if i := strings.LastIndex(host, ":"); i >= 0 {
		host = host[:i]
	}
	host = strings.ToLower(strings.TrimSuffix(host, "."))

	if net.ParseIP(host) != nil {
		return ""
	}

	labels := strings.Split(host, ".")
	var subdomain string
	switch {
	case labels[len(labels)-1] == localhostLabel && len(labels) >= 2:
		subdomain = labels[0]
	case len(labels) >= 3:
		subdomain = labels[0]
	}

	return subdomain
}
