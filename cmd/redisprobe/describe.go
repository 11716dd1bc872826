package main

import (
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/redisfactory/pkg/dsn"
)

// report is the YAML view of one resolved URI. It never carries secrets.
type report struct {
	URI         string            `yaml:"uri"`
	Topology    string            `yaml:"topology,omitempty"`
	Addrs       []string          `yaml:"addrs,omitempty"`
	ServiceName string            `yaml:"service_name,omitempty"`
	DB          *int              `yaml:"db,omitempty"`
	TLS         bool              `yaml:"tls"`
	Username    string            `yaml:"username,omitempty"`
	Password    bool              `yaml:"password"`
	Options     map[string]string `yaml:"options,omitempty"`
	Error       string            `yaml:"error,omitempty"`
}

// invalidURI stands in for URIs that fail to parse, which may hold a password
// in an unexpected position.
const invalidURI = "<invalid>"

func describeURI(raw string) report {
	d, err := dsn.Parse(raw)
	if err != nil {
		return report{URI: invalidURI, Error: err.Error()}
	}

	r := report{URI: d.Redacted()}
	topo, err := dsn.Resolve(d)
	if err != nil {
		r.Error = err.Error()
		return r
	}

	r.Topology = topo.Kind().String()
	r.Addrs = topo.Addrs()
	r.TLS = topo.TLS()
	if c := topo.Auth(); c != nil {
		r.Username = c.Username
		r.Password = c.Password != ""
	}
	if len(topo.Params()) > 0 {
		r.Options = topo.Params().Redacted()
	}

	switch t := topo.(type) {
	case dsn.Standalone:
		r.DB = t.DB
	case dsn.Sentinel:
		r.ServiceName = t.ServiceName
		r.DB = t.DB
	case dsn.Cluster:
	}
	return r
}

var errInvalidURIs = errors.New("redisprobe: one or more URIs are invalid")

// describe writes one YAML document per URI and reports whether all resolved.
func describe(w io.Writer, uris []string) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	failed := false
	for _, uri := range uris {
		r := describeURI(uri)
		if r.Error != "" {
			failed = true
		}
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	if err := enc.Close(); err != nil {
		return err
	}

	if failed {
		return errInvalidURIs
	}
	return nil
}
