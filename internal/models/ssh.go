package models

import "fmt"

// SSHHost is a single alias entry parsed from an SSH config file.
type SSHHost struct {
	Host         string // alias as written in the config
	Hostname     string
	User         string
	Port         int
	IdentityFile string
}

// ResolvedHost is a deduplicated physical endpoint that one or more
// aliases point to. Aliases keep their first-seen order.
type ResolvedHost struct {
	Hostname     string
	User         string
	Port         int
	IdentityFile string
	Aliases      []string
}

// Primary returns the first-seen alias for this endpoint.
func (h *ResolvedHost) Primary() string {
	if len(h.Aliases) == 0 {
		return ""
	}
	return h.Aliases[0]
}

// Endpoint renders the user@hostname:port form used as the dedup key.
func (h *ResolvedHost) Endpoint() string {
	port := h.Port
	if port == 0 {
		port = 22
	}
	return fmt.Sprintf("%s@%s:%d", h.User, h.Hostname, port)
}
