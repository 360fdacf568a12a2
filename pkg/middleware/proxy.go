package middleware

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// Proxies lists the networks whose forwarding headers are believed.
type Proxies []netip.Prefix

// ParseProxies parses CIDR prefixes such as "10.0.0.0/8". A bare address is
// treated as a single-host prefix.
func ParseProxies(values []string) (Proxies, error) {
	proxies := make(Proxies, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if !strings.Contains(v, "/") {
			addr, err := netip.ParseAddr(v)
			if err != nil {
				return nil, fmt.Errorf("invalid proxy address %q: %w", v, err)
			}
			proxies = append(proxies, netip.PrefixFrom(addr.Unmap(), addr.Unmap().BitLen()))
			continue
		}
		prefix, err := netip.ParsePrefix(v)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy prefix %q: %w", v, err)
		}
		proxies = append(proxies, prefix.Masked())
	}
	return proxies, nil
}

// ClientIP returns the client address of r. X-Forwarded-For and X-Real-IP
// are consulted only when the connection comes from a trusted proxy; the
// client is then the rightmost forwarded hop outside the trusted networks.
func (p Proxies) ClientIP(r *http.Request) string {
	remote := remoteIP(r)
	addr, err := netip.ParseAddr(remote)
	if err != nil || !p.trusts(addr) {
		return remote
	}

	if xff := strings.Join(r.Header.Values("X-Forwarded-For"), ","); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
			if err != nil {
				return remote
			}
			if !p.trusts(hop) {
				return hop.Unmap().String()
			}
		}
		return remote
	}

	if xrip, err := netip.ParseAddr(r.Header.Get("X-Real-IP")); err == nil {
		return xrip.Unmap().String()
	}
	return remote
}

func (p Proxies) trusts(addr netip.Addr) bool {
	addr = addr.Unmap()
	for _, prefix := range p {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

func remoteIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
