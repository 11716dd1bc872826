package dsn

import (
	"net/url"
	"strconv"
	"strings"
)

// Parse splits a connection URI into a Descriptor.
//
// Accepted form:
//
//	scheme://[[username][:password]@]host[:port][,host[:port]...][/path[/subpath]][?key=value&...]
//
// The scheme is checked before anything else, so an unknown scheme always fails
// with ErrScheme. Reserved characters in credentials must be percent-encoded.
// Parse knows nothing about topologies; see Resolve.
func Parse(raw string) (*Descriptor, error) {
	schemeToken, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return nil, formatErr("", "missing \"://\" after scheme")
	}

	scheme, ok := parseScheme(schemeToken)
	if !ok {
		return nil, schemeErr(schemeToken)
	}

	authority := rest
	tail := ""
	if i := strings.IndexAny(rest, "/?"); i >= 0 {
		authority, tail = rest[:i], rest[i:]
	}

	pathPart, query, hasQuery := strings.Cut(tail, "?")
	if strings.Contains(pathPart, "@") || (!strings.Contains(authority, "@") && strings.Contains(query, "@")) {
		// Most likely an unescaped "/" or "?" in the password; don't echo it.
		return nil, misplacedAtErr()
	}

	d := &Descriptor{Scheme: scheme}

	hostList := authority
	if i := strings.LastIndexByte(authority, '@'); i >= 0 {
		creds, err := parseCredentials(authority[:i])
		if err != nil {
			return nil, err
		}
		d.Credentials = creds
		hostList = authority[i+1:]
	}

	hosts, err := parseHostList(hostList, scheme.DefaultPort())
	if err != nil {
		return nil, err
	}
	d.Hosts = hosts

	if d.Path, d.SubPath, err = parsePath(pathPart); err != nil {
		return nil, err
	}

	d.Options = Options{}
	if hasQuery {
		if d.Options, err = parseQuery(query); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// misplacedAtErr carries no fragment. A query value holding "@" must be
// written as %40 when the URI has no credentials.
func misplacedAtErr() error {
	return formatErr("", "\"@\" after the host list; percent-encode reserved characters in credentials")
}

// parseCredentials never echoes the password back in errors.
func parseCredentials(userinfo string) (*Credentials, error) {
	rawUser, rawPass, _ := strings.Cut(userinfo, ":")

	user, err := url.PathUnescape(rawUser)
	if err != nil {
		return nil, formatErr(rawUser, "invalid escape in username")
	}
	pass, err := url.PathUnescape(rawPass)
	if err != nil {
		return nil, formatErr("", "invalid escape in password")
	}

	// A username alone does not authenticate.
	if pass == "" {
		return nil, nil
	}
	return &Credentials{Username: user, Password: pass}, nil
}

func parseHostList(list string, defaultPort int) ([]HostPort, error) {
	if strings.TrimSpace(list) == "" {
		return nil, formatErr("", "empty host list")
	}

	tokens := strings.Split(list, ",")
	hosts := make([]HostPort, 0, len(tokens))
	for _, tok := range tokens {
		hp, err := parseHostPort(strings.TrimSpace(tok), defaultPort)
		if err != nil {
			return nil, err
		}
		hosts = append(hosts, hp)
	}
	return hosts, nil
}

func parseHostPort(tok string, defaultPort int) (HostPort, error) {
	if tok == "" {
		return HostPort{}, formatErr("", "empty entry in host list")
	}

	host, portStr := tok, ""
	hasPort := false

	if strings.HasPrefix(tok, "[") {
		end := strings.IndexByte(tok, ']')
		if end < 0 {
			return HostPort{}, formatErr(tok, "unterminated IPv6 literal")
		}
		host = tok[1:end]
		switch after := tok[end+1:]; {
		case after == "":
		case strings.HasPrefix(after, ":"):
			portStr, hasPort = after[1:], true
		default:
			return HostPort{}, formatErr(tok, "unexpected text after IPv6 literal")
		}
	} else if i := strings.LastIndexByte(tok, ':'); i >= 0 {
		host, portStr, hasPort = tok[:i], tok[i+1:], true
		if strings.Contains(host, ":") {
			return HostPort{}, formatErr(tok, "IPv6 addresses must be enclosed in brackets")
		}
	}

	if host == "" {
		return HostPort{}, formatErr(tok, "missing host name")
	}

	port := defaultPort
	if hasPort {
		p, err := strconv.Atoi(portStr)
		if err != nil || p < 1 || p > 65535 {
			return HostPort{}, formatErr(tok, "port must be a number between 1 and 65535")
		}
		port = p
	}

	return HostPort{Host: host, Port: port}, nil
}

func parsePath(p string) (first, rest string, err error) {
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return "", "", nil
	}

	rawFirst, rawRest, _ := strings.Cut(p, "/")
	if rawFirst == "" && rawRest != "" {
		return "", "", formatErr("/"+p, "empty path segment")
	}

	if first, err = url.PathUnescape(rawFirst); err != nil {
		return "", "", formatErr(rawFirst, "invalid escape in path")
	}
	if rest, err = url.PathUnescape(rawRest); err != nil {
		return "", "", formatErr(rawRest, "invalid escape in path")
	}
	return first, rest, nil
}

func parseQuery(q string) (Options, error) {
	values, err := url.ParseQuery(q)
	if err != nil {
		return nil, formatErr("", "invalid query string")
	}

	opts := make(Options, len(values))
	for k, v := range values {
		if len(v) > 0 {
			opts[k] = v[0]
		}
	}
	return opts, nil
}
