package dsn

// Kind tags a Topology variant.
type Kind int

const (
	KindStandalone Kind = iota + 1
	KindSentinel
	KindCluster
)

func (k Kind) String() string {
	switch k {
	case KindStandalone:
		return "standalone"
	case KindSentinel:
		return "sentinel"
	case KindCluster:
		return "cluster"
	default:
		return "unknown"
	}
}

// Topology is the resolved deployment shape of a connection URI.
// It is implemented by Standalone, Sentinel and Cluster only.
//
//sumtype:decl
type Topology interface {
	Kind() Kind
	// TLS reports whether connections to data nodes use TLS.
	TLS() bool
	// Auth returns the data node credentials, nil when no auth is configured.
	Auth() *Credentials
	// Params returns the pass-through query options.
	Params() Options
	// Addrs returns the configured endpoints in dialable form.
	Addrs() []string

	isTopology()
}

// Standalone is a single Redis server.
type Standalone struct {
	Addr        HostPort
	DB          *int
	SSL         bool
	Credentials *Credentials
	Options     Options
}

func (Standalone) Kind() Kind { return KindStandalone }
func (t Standalone) TLS() bool { return t.SSL }
func (t Standalone) Auth() *Credentials { return t.Credentials }
func (t Standalone) Params() Options { return t.Options }
func (t Standalone) Addrs() []string { return []string{t.Addr.String()} }
func (Standalone) isTopology() {}

// Sentinel is a primary/replica set whose current primary is reported by
// the listed sentinels under ServiceName. Credentials, SSL and DB apply to
// the primary, not to the sentinels. Sentinels discovered at runtime that are
// not in the list are dialed with SSL when it is set.
type Sentinel struct {
	Sentinels   []HostPort
	ServiceName string
	DB          *int
	SSL         bool
	Credentials *Credentials
	Options     Options
}

func (Sentinel) Kind() Kind { return KindSentinel }
func (t Sentinel) TLS() bool { return t.SSL }
func (t Sentinel) Auth() *Credentials { return t.Credentials }
func (t Sentinel) Params() Options { return t.Options }
func (t Sentinel) Addrs() []string { return addrs(t.Sentinels) }
func (Sentinel) isTopology() {}

// Cluster is a sharded Redis Cluster reached through its seed nodes.
// It has a single logical keyspace, so there is no database index.
type Cluster struct {
	Seeds       []HostPort
	SSL         bool
	Credentials *Credentials
	Options     Options
}

func (Cluster) Kind() Kind { return KindCluster }
func (t Cluster) TLS() bool { return t.SSL }
func (t Cluster) Auth() *Credentials { return t.Credentials }
func (t Cluster) Params() Options { return t.Options }
func (t Cluster) Addrs() []string { return addrs(t.Seeds) }
func (Cluster) isTopology() {}

var (
	_ Topology = Standalone{}
	_ Topology = Sentinel{}
	_ Topology = Cluster{}
)
