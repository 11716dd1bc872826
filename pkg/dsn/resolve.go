package dsn

import (
	"slices"
	"strconv"
	"strings"
)

// Query keys that switch on TLS for sentinel and cluster URIs.
// Standalone URIs select TLS with the rediss scheme instead.
var tlsOptionKeys = []string{"ssl", "tls"}

// Resolve maps a Descriptor onto a Topology, enforcing the invariants of each
// variant. Rules are checked in order and the first failure is returned.
// The returned Topology owns copies of the descriptor's slices and options.
func Resolve(d *Descriptor) (Topology, error) {
	switch d.Scheme {
	case SchemeRedis, SchemeRedisTLS:
		return resolveStandalone(d)
	case SchemeSentinel:
		return resolveSentinel(d)
	case SchemeCluster:
		return resolveCluster(d)
	default:
		return nil, schemeErr(string(d.Scheme))
	}
}

// ParseTopology parses raw and resolves its topology in one step.
func ParseTopology(raw string) (Topology, error) {
	d, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return Resolve(d)
}

func resolveStandalone(d *Descriptor) (Topology, error) {
	if len(d.Hosts) != 1 {
		return nil, topologyErr(strings.Join(d.Addrs(), ","), "standalone accepts exactly one host")
	}

	db, err := databaseIndex(d.Path)
	if err != nil {
		return nil, err
	}
	if d.SubPath != "" {
		return nil, topologyErr(d.Path+"/"+d.SubPath, "standalone accepts a single path segment")
	}

	for _, k := range tlsOptionKeys {
		if _, ok := d.Options[k]; ok {
			return nil, topologyErr(k, "standalone TLS is selected by the rediss scheme, not a query option")
		}
	}

	return Standalone{
		Addr:        d.Hosts[0],
		DB:          db,
		SSL:         d.Scheme == SchemeRedisTLS,
		Credentials: cloneCredentials(d.Credentials),
		Options:     d.Options.Clone(),
	}, nil
}

func resolveSentinel(d *Descriptor) (Topology, error) {
	if len(d.Hosts) == 0 {
		return nil, topologyErr("", "sentinel requires at least one sentinel host")
	}
	if d.Path == "" {
		return nil, &Error{Kind: ErrMissingServiceName, Reason: "add the monitored master name as the first path segment"}
	}

	if strings.Contains(d.SubPath, "/") {
		return nil, topologyErr(d.SubPath, "sentinel accepts a service name and an optional database index")
	}
	db, err := databaseIndex(d.SubPath)
	if err != nil {
		return nil, err
	}

	opts := d.Options.Clone()
	ssl, err := takeTLSOption(opts)
	if err != nil {
		return nil, err
	}

	return Sentinel{
		Sentinels:   slices.Clone(d.Hosts),
		ServiceName: d.Path,
		DB:          db,
		SSL:         ssl,
		Credentials: cloneCredentials(d.Credentials),
		Options:     opts,
	}, nil
}

func resolveCluster(d *Descriptor) (Topology, error) {
	if len(d.Hosts) == 0 {
		return nil, topologyErr("", "cluster requires at least one seed host")
	}
	if d.Path != "" || d.SubPath != "" {
		return nil, topologyErr("/"+d.Path, "cluster mode does not support database selection")
	}

	opts := d.Options.Clone()
	ssl, err := takeTLSOption(opts)
	if err != nil {
		return nil, err
	}

	return Cluster{
		Seeds:       slices.Clone(d.Hosts),
		SSL:         ssl,
		Credentials: cloneCredentials(d.Credentials),
		Options:     opts,
	}, nil
}

// databaseIndex returns nil for an empty segment.
func databaseIndex(segment string) (*int, error) {
	if segment == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(segment)
	if err != nil || n < 0 {
		return nil, topologyErr(segment, "database index must be a non-negative integer")
	}
	return &n, nil
}

// takeTLSOption removes the TLS switches from opts and reports whether TLS is on.
// Either key enables TLS when true.
func takeTLSOption(opts Options) (bool, error) {
	enabled := false
	for _, k := range tlsOptionKeys {
		v, ok := opts[k]
		if !ok {
			continue
		}
		delete(opts, k)

		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, formatErr(k+"="+v, "expected a boolean")
		}
		enabled = enabled || b
	}
	return enabled, nil
}

func cloneCredentials(c *Credentials) *Credentials {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
