package dsn

import (
	"maps"
	"net"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Scheme is a recognised connection URI scheme.
type Scheme string

const (
	SchemeRedis    Scheme = "redis"
	SchemeRedisTLS Scheme = "rediss"
	SchemeSentinel Scheme = "redis+sentinel"
	SchemeCluster  Scheme = "redis+cluster"
)

const (
	// DefaultPort is used for standalone and cluster hosts without an explicit port.
	DefaultPort = 6379
	// DefaultSentinelPort is used for sentinel hosts without an explicit port.
	DefaultSentinelPort = 26379
)

func parseScheme(s string) (Scheme, bool) {
	switch Scheme(strings.ToLower(s)) {
	case SchemeRedis:
		return SchemeRedis, true
	case SchemeRedisTLS:
		return SchemeRedisTLS, true
	case SchemeSentinel:
		return SchemeSentinel, true
	case SchemeCluster:
		return SchemeCluster, true
	}
	return "", false
}

// DefaultPort returns the port assumed for hosts listed without one.
func (s Scheme) DefaultPort() int {
	if s == SchemeSentinel {
		return DefaultSentinelPort
	}
	return DefaultPort
}

// Credentials is the user info of a connection URI.
// Username may be empty for password-only auth.
type Credentials struct {
	Username string
	Password string
}

// HostPort is a single endpoint of the host list.
type HostPort struct {
	Host string
	Port int
}

// String returns the endpoint in dialable form, bracketing IPv6 literals.
func (h HostPort) String() string {
	return net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
}

// Options holds the query parameters of a connection URI.
// Keys are not interpreted by the parser.
type Options map[string]string

// Get returns the value for key and whether it was set.
func (o Options) Get(key string) (string, bool) {
	v, ok := o[key]
	return v, ok
}

// Clone returns an independent copy. A nil receiver yields an empty map.
func (o Options) Clone() Options {
	out := make(Options, len(o))
	maps.Copy(out, o)
	return out
}

// Redacted returns a copy with the values of secret-bearing keys masked.
func (o Options) Redacted() Options {
	out := o.Clone()
	for k := range out {
		if isSecretOption(k) {
			out[k] = redactedMark
		}
	}
	return out
}

// Descriptor is the topology-agnostic result of parsing a connection URI.
type Descriptor struct {
	Scheme      Scheme
	Credentials *Credentials
	Hosts       []HostPort
	// Path is the first path segment: a database index or a sentinel service name.
	Path string
	// SubPath is everything after the first path segment, without the separating slash.
	SubPath string
	Options Options
}

// Addrs returns the host list in dialable form, preserving order.
func (d *Descriptor) Addrs() []string {
	return addrs(d.Hosts)
}

// Redacted renders the descriptor back into URI form with the password and any
// secret-bearing query values masked. Query keys are sorted.
func (d *Descriptor) Redacted() string {
	var b strings.Builder
	b.WriteString(string(d.Scheme))
	b.WriteString("://")

	if d.Credentials != nil {
		b.WriteString(url.User(d.Credentials.Username).String())
		b.WriteString(":" + redactedMark + "@")
	}

	b.WriteString(strings.Join(d.Addrs(), ","))

	if d.Path != "" {
		b.WriteString("/" + url.PathEscape(d.Path))
		if d.SubPath != "" {
			b.WriteString("/" + d.SubPath)
		}
	}

	if len(d.Options) > 0 {
		opts := d.Options.Redacted()
		q := make(url.Values, len(opts))
		for _, k := range slices.Sorted(maps.Keys(opts)) {
			q.Set(k, opts[k])
		}
		b.WriteString("?" + q.Encode())
	}

	return b.String()
}

const redactedMark = "xxxxx"

func isSecretOption(key string) bool {
	return strings.Contains(strings.ToLower(key), "password")
}

func addrs(hosts []HostPort) []string {
	out := make([]string, len(hosts))
	for i, h := range hosts {
		out[i] = h.String()
	}
	return out
}
