package net

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
)

// LinkScheme prefixes share links handed to viewers.
const LinkScheme = "sketchboard"

// Link formats the share link for a host.
func Link(ip string, port int) string {
	return fmt.Sprintf("%s://%s", LinkScheme, net.JoinHostPort(ip, strconv.Itoa(port)))
}

// ParseLink returns the host:port a share link points at.
func ParseLink(link string) (string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("parse link %q: %w", link, err)
	}
	if u.Scheme != LinkScheme {
		return "", fmt.Errorf("link %q: scheme must be %s", link, LinkScheme)
	}
	if u.Hostname() == "" || u.Port() == "" {
		return "", fmt.Errorf("link %q: want %s://host:port", link, LinkScheme)
	}
	return u.Host, nil
}
