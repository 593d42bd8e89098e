// Package sshconf reads SSH client config host entries and collapses
// aliases that point at the same physical endpoint.
package sshconf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"projman/internal/models"

	"github.com/kevinburke/ssh_config"
)

// Parser reads host entries from an SSH config file, caching the parsed
// result until the file's modification time changes.
type Parser struct {
	path    string
	cached  []models.SSHHost
	loaded  bool
	modTime time.Time
}

// NewParser creates a parser for the given config file, or the default
// ~/.ssh/config when path is empty.
func NewParser(path string) *Parser {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	return &Parser{path: path}
}

// DefaultPath returns the standard SSH client config location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".ssh", "config")
}

// Hosts returns the parsed host entries. A missing or unreadable config
// yields an empty list. The cache refreshes when the file changes.
func (p *Parser) Hosts() []models.SSHHost {
	info, err := os.Stat(p.path)
	if err != nil {
		p.cached = nil
		p.loaded = true
		return nil
	}
	if p.loaded && info.ModTime().Equal(p.modTime) {
		return p.cached
	}

	f, err := os.Open(p.path)
	if err != nil {
		p.cached = nil
		p.loaded = true
		return nil
	}
	defer f.Close()

	hosts, err := Parse(f)
	if err != nil {
		hosts = nil
	}
	p.cached = hosts
	p.loaded = true
	p.modTime = info.ModTime()
	return p.cached
}

// Parse reads SSH config host entries from r. A Host line can list
// several aliases; each becomes its own entry carrying the block's
// settings. Wildcard patterns are dropped.
func Parse(r io.Reader) ([]models.SSHHost, error) {
	cfg, err := ssh_config.Decode(r)
	if err != nil {
		return nil, err
	}

	var hosts []models.SSHHost
	for _, block := range cfg.Hosts {
		var aliases []string
		for _, pattern := range block.Patterns {
			alias := pattern.String()
			if strings.ContainsAny(alias, "*?!") {
				continue
			}
			aliases = append(aliases, alias)
		}
		if len(aliases) == 0 {
			continue
		}

		var hostname, user, identityFile string
		port := 0
		for _, node := range block.Nodes {
			kv, ok := node.(*ssh_config.KV)
			if !ok {
				continue
			}
			switch strings.ToLower(kv.Key) {
			case "hostname":
				hostname = kv.Value
			case "user":
				user = kv.Value
			case "port":
				if n, err := strconv.Atoi(kv.Value); err == nil {
					port = n
				}
			case "identityfile":
				identityFile = kv.Value
			}
		}

		for _, alias := range aliases {
			hosts = append(hosts, models.SSHHost{
				Host:         alias,
				Hostname:     hostname,
				User:         user,
				Port:         port,
				IdentityFile: identityFile,
			})
		}
	}
	return hosts, nil
}

// Dedup collapses host entries that resolve to the same endpoint. The
// key is user@hostname:port, with the alias standing in for a missing
// hostname and 22 for a missing port. Resolved hosts keep the
// first-occurrence order of their key; aliases keep first-seen order.
func Dedup(hosts []models.SSHHost) []models.ResolvedHost {
	index := make(map[string]int)
	var resolved []models.ResolvedHost

	for _, h := range hosts {
		hostname := h.Hostname
		if hostname == "" {
			hostname = h.Host
		}
		port := h.Port
		if port == 0 {
			port = 22
		}
		key := fmt.Sprintf("%s@%s:%d", h.User, hostname, port)

		if i, ok := index[key]; ok {
			resolved[i].Aliases = append(resolved[i].Aliases, h.Host)
			continue
		}
		index[key] = len(resolved)
		resolved = append(resolved, models.ResolvedHost{
			Hostname:     hostname,
			User:         h.User,
			Port:         h.Port,
			IdentityFile: h.IdentityFile,
			Aliases:      []string{h.Host},
		})
	}
	return resolved
}
