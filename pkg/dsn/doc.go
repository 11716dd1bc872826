// Package dsn parses Redis connection URIs and resolves them into a deployment topology.
//
// Parsing and resolution are separate steps. [Parse] turns a string into a
// topology-agnostic [Descriptor]; [Resolve] maps the descriptor onto one of the
// [Topology] variants ([Standalone], [Sentinel], [Cluster]) and checks the
// invariants of that variant. [ParseTopology] chains both. Neither step performs
// I/O and neither keeps state between calls.
//
// # URI Format
//
//	redis://[[user][:password]@]host[:port][/db][?options]
//	rediss://[[user][:password]@]host[:port][/db][?options]
//	redis+sentinel://[[user][:password]@]host[:port][,host[:port]...]/service[/db][?options]
//	redis+cluster://[[user][:password]@]host[:port][,host[:port]...][?options]
//
// Hosts without a port default to 6379, or 26379 for the sentinel scheme.
// Sentinel and cluster URIs enable TLS with the ssl=true (or tls=true) query option.
// All other query options are kept verbatim in [Options] for the client builder.
//
// # Usage
//
//	topo, err := dsn.ParseTopology("redis+sentinel://s1:26379,s2:26379/mymaster")
//	if err != nil {
//		return err
//	}
//	switch t := topo.(type) {
//	case dsn.Sentinel:
//		fmt.Println(t.ServiceName, t.Addrs())
//	}
//
// # Error Handling
//
// Every error wraps one of the sentinel errors and can be inspected with [errors.As]
// as an [*Error] to get the rejected fragment. Passwords are never included.
//
//   - [ErrURIFormat] - malformed syntax: bad port, empty host list, bad escape
//   - [ErrScheme] - unrecognised scheme token
//   - [ErrTopologyValidation] - host count or path segment does not fit the topology
//   - [ErrMissingServiceName] - sentinel URI without a service name
package dsn
